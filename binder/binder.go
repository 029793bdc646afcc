package binder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
)

// MaxBodySize caps JSON and form bodies.
const MaxBodySize = 1 << 20

// Func parses a request into v.
type Func = func(r *http.Request, v any) error

func mediaType(r *http.Request) string {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return mt
}

// JSON binds an application/json body. Unknown fields and trailing data are
// rejected. Other content types yield ErrBinderNotApplicable.
func JSON() Func {
	return func(r *http.Request, v any) error {
		if mediaType(r) != "application/json" {
			return ErrBinderNotApplicable
		}
		body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodySize+1))
		if err != nil {
			return errors.Join(ErrInvalidJSON, err)
		}
		if len(body) > MaxBodySize {
			return ErrBodyTooLarge
		}

		dec := json.NewDecoder(bytes.NewReader(body))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: empty body", ErrInvalidJSON)
			}
			return errors.Join(ErrInvalidJSON, err)
		}
		if dec.More() {
			return fmt.Errorf("%w: unexpected data after JSON value", ErrInvalidJSON)
		}
		return nil
	}
}

// Form binds application/x-www-form-urlencoded bodies using `form` tags.
// Other content types yield ErrBinderNotApplicable.
func Form() Func {
	return func(r *http.Request, v any) error {
		if mediaType(r) != "application/x-www-form-urlencoded" {
			return ErrBinderNotApplicable
		}
		r.Body = http.MaxBytesReader(nil, r.Body, MaxBodySize)
		if err := r.ParseForm(); err != nil {
			return errors.Join(ErrInvalidForm, err)
		}
		if err := bindValues(v, "form", func(name string) []string { return r.PostForm[name] }); err != nil {
			return errors.Join(ErrInvalidForm, err)
		}
		return nil
	}
}

// Query binds URL query parameters using `query` tags.
func Query() Func {
	return func(r *http.Request, v any) error {
		q := r.URL.Query()
		if err := bindValues(v, "query", func(name string) []string { return q[name] }); err != nil {
			return errors.Join(ErrInvalidQuery, err)
		}
		return nil
	}
}

// Path binds router path parameters using `path` tags; param is the router's
// lookup, e.g. chi.URLParam.
func Path(param func(r *http.Request, name string) string) Func {
	return func(r *http.Request, v any) error {
		err := bindValues(v, "path", func(name string) []string {
			if s := param(r, name); s != "" {
				return []string{s}
			}
			return nil
		})
		if err != nil {
			return errors.Join(ErrInvalidPath, err)
		}
		return nil
	}
}
