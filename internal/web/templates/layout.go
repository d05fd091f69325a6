// Package templates renders the public pages as templ components.
package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Page carries what the shared layout needs to know about the current page.
type Page struct {
	SiteName string
	Title    string
	Path     string
}

type navItem struct {
	Path  string
	Label string
}

var navItems = []navItem{
	{"/", "Home"},
	{"/formats", "Formats"},
	{"/how-it-works", "How it works"},
	{"/cases", "Cases"},
	{"/reviews", "Reviews"},
	{"/faq", "FAQ"},
	{"/contacts", "Contacts"},
}

// htmlWriter stops writing after the first error so components can be
// written as a straight sequence of calls.
type htmlWriter struct {
	w   io.Writer
	err error
}

// raw writes trusted markup.
func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// text writes s HTML-escaped.
func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) component(ctx context.Context, c templ.Component) {
	if h.err != nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

// Layout wraps body in the site chrome: head, navigation with the burger
// toggle, and footer.
func Layout(p Page, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(p.Title)
		h.raw(` | `)
		h.text(p.SiteName)
		h.raw(`</title><link rel="stylesheet" href="/static/css/site.css">`)
		h.raw(`<script src="/static/js/menu.js" defer></script></head><body>`)

		h.raw(`<header class="site-header"><a class="logo" href="/">`)
		h.text(p.SiteName)
		h.raw(`</a><button class="burger-menu" type="button" aria-label="Menu" aria-controls="main-nav" aria-expanded="false"><span></span><span></span><span></span></button>`)
		h.raw(`<nav id="main-nav" class="main-nav"><ul>`)
		for _, item := range navItems {
			h.raw(`<li><a href="`)
			h.text(item.Path)
			h.raw(`"`)
			if item.Path == p.Path {
				h.raw(` class="active" aria-current="page"`)
			}
			h.raw(`>`)
			h.text(item.Label)
			h.raw(`</a></li>`)
		}
		h.raw(`</ul></nav><a class="button cta" href="/order">Request an event</a></header>`)

		h.raw(`<main>`)
		h.component(ctx, body)
		h.raw(`</main>`)

		h.raw(`<footer class="site-footer"><p>&copy; `)
		h.text(p.SiteName)
		h.raw(`</p><p><a href="/contacts">Contacts</a> &middot; <a href="/order">Leave a request</a></p></footer>`)
		h.raw(`</body></html>`)

		return h.err
	})
}

// section renders static markup. Only use it with trusted constant strings.
func section(markup string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, markup)
		return err
	})
}
