package binder

import "errors"

var (
	// ErrBinderNotApplicable is returned when the request does not carry the
	// content type a binder handles; handler.Wrap skips to the next binder.
	ErrBinderNotApplicable = errors.New("binder.not_applicable")

	ErrInvalidTarget = errors.New("binder.invalid_target")
	ErrInvalidJSON   = errors.New("binder.invalid_json")
	ErrInvalidForm   = errors.New("binder.invalid_form")
	ErrInvalidQuery  = errors.New("binder.invalid_query")
	ErrInvalidPath   = errors.New("binder.invalid_path")
	ErrBodyTooLarge  = errors.New("binder.body_too_large")
)
