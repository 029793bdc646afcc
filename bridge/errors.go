package bridge

import "errors"

var (
	// ErrAlreadyResponded indicates Render, Redirect or a mutator was called
	// after the renderer already produced its response.
	ErrAlreadyResponded = errors.New("bridge.already_responded")

	// ErrMissingComponent indicates Render was called without a component name.
	ErrMissingComponent = errors.New("bridge.missing_component")

	// ErrPropResolution wraps the first error returned by a lazy prop.
	ErrPropResolution = errors.New("bridge.prop_resolution_failed")

	// ErrTemplate wraps errors raised while rendering the HTML document.
	ErrTemplate = errors.New("bridge.template_failed")

	// ErrEncodePage indicates the resolved page could not be serialized.
	ErrEncodePage = errors.New("bridge.encode_page_failed")

	// ErrFlash wraps errors returned by the flash provider.
	ErrFlash = errors.New("bridge.flash_failed")

	// ErrSessionDestroy indicates the version guard could not invalidate the
	// stale client's session.
	ErrSessionDestroy = errors.New("bridge.session_destroy_failed")

	// ErrNoRenderer indicates the request context carries no renderer,
	// usually because the bridge middleware is not mounted.
	ErrNoRenderer = errors.New("bridge.no_renderer")

	// ErrManifest indicates the asset manifest could not be read.
	ErrManifest = errors.New("bridge.manifest_unreadable")
)
