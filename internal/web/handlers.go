package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"time"

	"github.com/JonMunkholm/leadsite/internal/core"
	"github.com/JonMunkholm/leadsite/internal/logging"
	"github.com/JonMunkholm/leadsite/internal/web/templates"
)

// healthTimeout bounds the store ping behind /health.
const healthTimeout = 2 * time.Second

// Form field names.
const (
	fieldName    = "name"
	fieldPhone   = "phone"
	fieldEmail   = "email"
	fieldFormat  = "format"
	fieldDate    = "date"
	fieldMessage = "message"
)

// errBodyTooLarge is reported when the body exceeds the configured limit.
var errBodyTooLarge = errors.New("request body is too large")

// handleSubmit accepts the lead form.
//
// Success redirects to the thank-you page with 303 so a browser reload does
// not resubmit. Rejected input gets 400 and the list of problems; a store
// failure gets 500 with a generic message.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxFormBytes)

	sub, err := parseSubmission(r, s.cfg.Server.MaxFormBytes)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, errBodyTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		logging.FromContext(r.Context()).Info("unparseable submission", "error", err)
		respondSubmitErrors(w, r, status, []string{err.Error()})
		return
	}

	ctx := WithRequestMetadata(r.Context(), r)

	_, err = s.service.Submit(ctx, sub)

	var verrs core.ValidationErrors
	switch {
	case err == nil:
		http.Redirect(w, r, s.cfg.Site.ThankYouPath, http.StatusSeeOther)
	case errors.As(err, &verrs):
		respondSubmitErrors(w, r, http.StatusBadRequest, verrs.Messages())
	default:
		respondSubmitErrors(w, r, http.StatusInternalServerError, []string{core.StorageFailureMessage})
	}
}

// parseSubmission reads a urlencoded, multipart or JSON body into a
// Submission. Fields absent from the body stay nil.
func parseSubmission(r *http.Request, maxBytes int64) (core.Submission, error) {
	mediaType := ""
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return core.Submission{}, fmt.Errorf("invalid content type: %w", err)
		}
		mediaType = mt
	}

	switch mediaType {
	case "application/json":
		return parseJSONSubmission(r)

	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			return core.Submission{}, formError(err)
		}
		return formSubmission(r.PostForm), nil

	default:
		if err := r.ParseForm(); err != nil {
			return core.Submission{}, formError(err)
		}
		return formSubmission(r.PostForm), nil
	}
}

func parseJSONSubmission(r *http.Request) (core.Submission, error) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return core.Submission{}, errBodyTooLarge
		}
		return core.Submission{}, errors.New("request body is not a JSON object")
	}

	// JSON null stays nil and reads as missing.
	return core.Submission{
		Name:     body[fieldName],
		Phone:    body[fieldPhone],
		Email:    body[fieldEmail],
		Format:   body[fieldFormat],
		Date:     body[fieldDate],
		Message:  body[fieldMessage],
		Honeypot: body[templates.HoneypotField],
	}, nil
}

func formSubmission(form url.Values) core.Submission {
	return core.Submission{
		Name:     formValue(form, fieldName),
		Phone:    formValue(form, fieldPhone),
		Email:    formValue(form, fieldEmail),
		Format:   formValue(form, fieldFormat),
		Date:     formValue(form, fieldDate),
		Message:  formValue(form, fieldMessage),
		Honeypot: formValue(form, templates.HoneypotField),
	}
}

// formValue returns the first value of key, or nil when the form lacks it.
func formValue(form url.Values, key string) any {
	if vs, ok := form[key]; ok && len(vs) > 0 {
		return vs[0]
	}
	return nil
}

func formError(err error) error {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return errBodyTooLarge
	}
	return errors.New("request body could not be parsed")
}

// handleHealth reports 200 when the store answers a ping, 503 otherwise.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")

	if s.health != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		if err := s.health.Ping(ctx); err != nil {
			logging.FromContext(r.Context()).Warn("health check failed", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("store unavailable\n"))
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK\n"))
}
