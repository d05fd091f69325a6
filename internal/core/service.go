package core

import (
	"context"
	"errors"
	"time"

	"github.com/JonMunkholm/leadsite/internal/logging"
	"github.com/JonMunkholm/leadsite/internal/metrics"
)

// ApplicationStore is the persistence the submission flow needs.
type ApplicationStore interface {
	Insert(ctx context.Context, in NewApplication) (Application, error)
}

// FallbackWriter mirrors an accepted application somewhere outside the store.
type FallbackWriter interface {
	Append(app Application) error
}

// Service runs the lead submission flow: validate, insert, mirror.
type Service struct {
	store    ApplicationStore
	fallback FallbackWriter
	metrics  *metrics.SiteMetrics
}

// NewService creates a Service. fallback and m may be nil: without a
// fallback writer no text mirror is kept, without metrics nothing is counted.
func NewService(store ApplicationStore, fallback FallbackWriter, m *metrics.SiteMetrics) *Service {
	if store == nil {
		panic("core: service requires a store")
	}
	return &Service{
		store:    store,
		fallback: fallback,
		metrics:  m,
	}
}

// Submit validates s and stores it.
//
// Returns ValidationErrors when s is rejected (nothing is written), a
// *StorageError when the insert fails (nothing is mirrored), or the stored
// Application. A failed fallback append is logged and otherwise ignored.
func (svc *Service) Submit(ctx context.Context, s Submission) (Application, error) {
	logger := logging.FromContext(ctx)

	if s.HoneypotFilled() {
		svc.metrics.ObserveHoneypot()
		logger.Warn("honeypot field filled",
			"client_ip", ClientIPFromContext(ctx),
			"user_agent", UserAgentFromContext(ctx),
		)
	}

	if errs := Validate(s); len(errs) > 0 {
		svc.metrics.ObserveSubmission(metrics.OutcomeRejected)
		logger.Info("application rejected", "errors", errs.Messages())
		return Application{}, errs
	}

	in := Normalize(s)

	start := time.Now()
	app, err := svc.store.Insert(ctx, in)
	svc.metrics.ObserveInsertLatency(time.Since(start).Seconds())
	if err != nil {
		var se *StorageError
		if !errors.As(err, &se) {
			se = NewStorageError("insert application", err)
		}
		svc.metrics.ObserveSubmission(metrics.OutcomeStorageFailed)
		svc.metrics.ObserveStorageFailure(se.Code.Code)
		logger.Error("failed to store application",
			"code", se.Code.Code,
			"reason", se.Code.Description,
			"error", se.Err,
		)
		return Application{}, se
	}

	if svc.fallback != nil {
		if err := svc.fallback.Append(app); err != nil {
			svc.metrics.ObserveFallbackFailure()
			logger.Warn("failed to append fallback log",
				"application_id", app.ID,
				"error", err,
			)
		}
	}

	svc.metrics.ObserveSubmission(metrics.OutcomeAccepted)
	logger.Info("application stored",
		"application_id", app.ID,
		"client_ip", ClientIPFromContext(ctx),
		"user_agent", UserAgentFromContext(ctx),
	)
	return app, nil
}
