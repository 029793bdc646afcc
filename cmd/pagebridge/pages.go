package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/pagebridge/binder"
	"github.com/dmitrymomot/pagebridge/bridge"
	"github.com/dmitrymomot/pagebridge/handler"
	"github.com/dmitrymomot/pagebridge/pkg/cookie"
	"github.com/dmitrymomot/pagebridge/pkg/environment"
	"github.com/dmitrymomot/pagebridge/pkg/httpserver"
	"github.com/dmitrymomot/pagebridge/pkg/logger"
	"github.com/dmitrymomot/pagebridge/pkg/requestid"
	"github.com/dmitrymomot/pagebridge/pkg/session"
	"github.com/dmitrymomot/pagebridge/pkg/validator"
)

var errUnknownStore = errors.New("unknown session store")

const userKey = "user"

type app struct {
	bridge   *bridge.Bridge
	sessions *session.Manager
	cookies  *cookie.Manager
	log      *slog.Logger
	env      environment.Environment
	checks   []httpserver.Check

	visits atomic.Int64
}

func (a *app) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(environment.Middleware(a.env))

	r.Get("/healthz", httpserver.HealthCheckHandler(a.log))
	r.Get("/readyz", httpserver.HealthCheckHandler(a.log, a.checks...))

	r.Group(func(r chi.Router) {
		r.Use(a.sessions.Middleware)
		r.Use(a.bridge.Middleware)

		errh := handler.NewErrorHandler(a.log)

		r.Get("/", handler.Wrap(func(handler.Context, struct{}) handler.Response {
			return bridge.RedirectTo("/dashboard")
		}, handler.WithErrorHandler[handler.Context, struct{}](errh)))

		r.Get("/login", handler.Wrap(a.loginPage,
			handler.WithErrorHandler[handler.Context, struct{}](errh)))
		r.Post("/login", handler.Wrap(a.login,
			handler.WithBinders[handler.Context, loginRequest](binder.Form(), binder.JSON()),
			handler.WithErrorHandler[handler.Context, loginRequest](errh)))
		r.Get("/dashboard", handler.Wrap(a.dashboard,
			handler.WithErrorHandler[handler.Context, struct{}](errh)))
		r.Delete("/logout", handler.Wrap(a.logout,
			handler.WithErrorHandler[handler.Context, struct{}](errh)))
	})
	return r
}

type loginRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

func (req loginRequest) validate() error {
	return validator.Apply(
		validator.Required("email", req.Email),
		validator.ValidEmail("email", req.Email),
		validator.MinLen("password", req.Password, 8),
		validator.NotCommonPassword("password", req.Password),
	)
}

func (a *app) loginPage(ctx handler.Context, _ struct{}) handler.Response {
	if _, ok := a.sessions.GetValue(ctx, ctx.Request(), userKey); ok {
		return bridge.RedirectTo("/dashboard")
	}
	return bridge.Component("auth/login", bridge.M{})
}

func (a *app) login(ctx handler.Context, req loginRequest) handler.Response {
	if err := req.validate(); err != nil {
		verr, ok := handler.AsValidationError(err)
		if !ok {
			return errorResponse(err)
		}
		page := ctx.Page()
		if err := page.ShareErrors(verr.Fields()); err != nil {
			return errorResponse(err)
		}
		if err := page.SetStatusCode(http.StatusUnprocessableEntity); err != nil {
			return errorResponse(err)
		}
		return bridge.Component("auth/login", bridge.M{"email": req.Email})
	}

	w, r := ctx.ResponseWriter(), ctx.Request()
	if err := a.sessions.Set(ctx, w, r, userKey, req.Email); err != nil {
		return errorResponse(err)
	}
	if err := a.cookies.SetFlash(w, "success", "Welcome back, "+req.Email); err != nil {
		a.log.WarnContext(ctx, "failed to set flash", logger.Error(err))
	}
	return bridge.RedirectTo("/dashboard")
}

func (a *app) dashboard(ctx handler.Context, _ struct{}) handler.Response {
	user, ok := a.sessions.GetValue(ctx, ctx.Request(), userKey)
	if !ok {
		return bridge.RedirectTo("/login")
	}
	visits := a.visits.Add(1)

	return bridge.Component("dashboard", bridge.NewProps().
		Set("title", "Dashboard").
		Set("user", user).
		Set("stats", bridge.Lazy(func(ctx context.Context) (any, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return map[string]any{"visits": visits}, nil
		})).
		Set("server_time", bridge.Optional(func(context.Context) (any, error) {
			return time.Now().UTC().Format(time.RFC3339), nil
		})),
	)
}

func (a *app) logout(ctx handler.Context, _ struct{}) handler.Response {
	if err := a.sessions.Destroy(ctx, ctx.ResponseWriter(), ctx.Request()); err != nil {
		return errorResponse(err)
	}
	return bridge.RedirectTo("/login")
}

type failed struct{ err error }

func (f failed) Render(http.ResponseWriter, *http.Request) error { return f.err }

// errorResponse defers err to the route's error handler.
func errorResponse(err error) handler.Response { return failed{err: err} }
