package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// PhoneInputPattern mirrors the server-side phone rule for the browser's
// own validation. The server check is authoritative.
const PhoneInputPattern = `[0-9\s\-+\(\)]{5,}`

// HoneypotField is the hidden input real visitors leave empty.
const HoneypotField = "website"

// OrderPage renders the lead form. It posts to /submit.
func OrderPage(site string) templ.Component {
	return Layout(Page{SiteName: site, Title: "Leave a request", Path: "/order"}, orderForm())
}

func orderForm() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		h.raw(`<section><h1>Leave a request</h1>`)
		h.raw(`<p>Only your name and phone are required. We will call back to discuss the details.</p>`)
		h.raw(`<form class="order-form" method="post" action="/submit">`)

		h.raw(`<label>Name *<input type="text" name="name" required autocomplete="name"></label>`)
		h.raw(`<label>Phone *<input type="tel" name="phone" required autocomplete="tel" pattern="`)
		h.text(PhoneInputPattern)
		h.raw(`" title="At least 5 characters: digits, spaces, +, -, ( or )"></label>`)
		h.raw(`<label>Email<input type="email" name="email" autocomplete="email"></label>`)

		h.raw(`<label>Format<select name="format"><option value="">Choose a format</option>`)
		for _, f := range EventFormats {
			h.raw(`<option value="`)
			h.text(f)
			h.raw(`">`)
			h.text(f)
			h.raw(`</option>`)
		}
		h.raw(`</select></label>`)

		h.raw(`<label>Date<input type="date" name="date"></label>`)
		h.raw(`<label>Message<textarea name="message" rows="5"></textarea></label>`)

		h.raw(`<div class="hp" aria-hidden="true"><label>Website<input type="text" name="`)
		h.text(HoneypotField)
		h.raw(`" tabindex="-1" autocomplete="off"></label></div>`)

		h.raw(`<button class="button" type="submit">Send request</button>`)
		h.raw(`</form></section>`)

		return h.err
	})
}
