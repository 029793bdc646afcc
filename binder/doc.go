// Package binder turns HTTP requests into typed values for handler.Wrap.
//
//	type loginRequest struct {
//		Email    string `form:"email" json:"email"`
//		Remember bool   `form:"remember" json:"remember"`
//	}
//
//	r.Post("/login", handler.Wrap(login,
//		handler.WithBinders[handler.Context, loginRequest](binder.Form(), binder.JSON()),
//	))
//
// Body binders return ErrBinderNotApplicable for content types they do not
// handle, so several can be chained and the matching one wins.
package binder
