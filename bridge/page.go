package bridge

import (
	"bytes"
	"encoding/json"
)

// Page is the unit of state handed to the client router on every visit.
// Props holds resolved values only.
type Page struct {
	Component string         `json:"component"`
	Props     map[string]any `json:"props"`
	URL       string         `json:"url"`
	Version   string         `json:"version"`
}

// PageInput is what a handler supplies to Render.
type PageInput struct {
	// Component identifies the client-side view to mount.
	Component string
	// Props are page-specific props, merged over shared props.
	Props PropSource
	// URL overrides the request URI reported to the client.
	URL string
}

// ViewData is auxiliary data for the HTML document only. It never reaches the
// JSON payload.
type ViewData map[string]any

// Marshal encodes the page deterministically: struct fields in declaration
// order, map keys sorted at every depth, no trailing newline.
func (p Page) Marshal() ([]byte, error) {
	if p.Props == nil {
		p.Props = map[string]any{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(p); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
