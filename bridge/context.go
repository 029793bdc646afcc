package bridge

import "context"

type rendererContextKey struct{}

// WithRenderer adds a renderer to the context.
func WithRenderer(ctx context.Context, rr *Renderer) context.Context {
	return context.WithValue(ctx, rendererContextKey{}, rr)
}

// FromContext retrieves the renderer from the context.
func FromContext(ctx context.Context) (*Renderer, bool) {
	rr, ok := ctx.Value(rendererContextKey{}).(*Renderer)
	return rr, ok && rr != nil
}

// Share merges props into the shared props of the request's renderer.
// Typically called from middleware mounted after the bridge middleware.
func Share(ctx context.Context, props PropSource) error {
	rr, ok := FromContext(ctx)
	if !ok {
		return ErrNoRenderer
	}
	return rr.ShareProps(props)
}
