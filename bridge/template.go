package bridge

import (
	"context"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// TemplateFunc builds the full HTML document for a first load. The document
// must embed the serialized page so the client can hydrate from it.
type TemplateFunc func(page Page, data ViewData) templ.Component

// RootOptions configures RootTemplate.
type RootOptions struct {
	// ID of the mount element (default "app").
	ID string
	// Title is the default document title; ViewData["title"] overrides it.
	Title string
	// Head holds raw tags appended to <head>, e.g. preload links.
	Head []string
	// Scripts are module script URLs appended to <body>.
	Scripts []string
	// Styles are stylesheet URLs linked from <head>.
	Styles []string
}

// RootTemplate returns a minimal document template that mounts the client app
// on a single element carrying the page in its data-page attribute.
//
// Recognised view data keys: "title" (string) and "head" ([]string of raw tags).
func RootTemplate(opts RootOptions) TemplateFunc {
	if opts.ID == "" {
		opts.ID = "app"
	}
	return func(page Page, data ViewData) templ.Component {
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			payload, err := page.Marshal()
			if err != nil {
				return err
			}

			title := opts.Title
			if t, ok := data["title"].(string); ok && t != "" {
				title = t
			}

			var sb strings.Builder
			sb.WriteString(`<!DOCTYPE html><html><head><meta charset="utf-8">`)
			sb.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
			if title != "" {
				sb.WriteString(`<title>`)
				sb.WriteString(html.EscapeString(title))
				sb.WriteString(`</title>`)
			}
			for _, href := range opts.Styles {
				sb.WriteString(`<link rel="stylesheet" href="`)
				sb.WriteString(html.EscapeString(href))
				sb.WriteString(`">`)
			}
			for _, tag := range opts.Head {
				sb.WriteString(tag)
			}
			if extra, ok := data["head"].([]string); ok {
				for _, tag := range extra {
					sb.WriteString(tag)
				}
			}
			sb.WriteString(`</head><body><div id="`)
			sb.WriteString(html.EscapeString(opts.ID))
			sb.WriteString(`" data-page="`)
			sb.WriteString(html.EscapeString(string(payload)))
			sb.WriteString(`"></div>`)
			for _, src := range opts.Scripts {
				sb.WriteString(`<script type="module" src="`)
				sb.WriteString(html.EscapeString(src))
				sb.WriteString(`"></script>`)
			}
			sb.WriteString(`</body></html>`)

			_, err = io.WriteString(w, sb.String())
			return err
		})
	}
}
