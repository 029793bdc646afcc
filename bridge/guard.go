package bridge

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/pagebridge/pkg/logger"
)

// IsStale reports whether the request comes from a client router built
// against a different asset version. Only GET visits are checked.
func (b *Bridge) IsStale(r *http.Request) bool {
	if r.Method != http.MethodGet || !IsBridgeRequest(r) {
		return false
	}
	return r.Header.Get(HeaderVersion) != b.Version(r)
}

// Guard invalidates stale clients. When the request is stale it destroys the
// session and answers 409 with the original URL so the client performs a full
// browser visit; the returned bool is then true and nothing else must be
// written. A destroy failure is returned untouched by any response.
func (b *Bridge) Guard(w http.ResponseWriter, r *http.Request) (bool, error) {
	if !b.IsStale(r) {
		return false, nil
	}

	b.logger.InfoContext(r.Context(), "stale client version",
		logger.Component("bridge"),
		logger.Event("version_mismatch"),
		slog.String("client_version", r.Header.Get(HeaderVersion)),
		slog.String("server_version", b.Version(r)),
	)

	if b.sessions != nil {
		if err := b.sessions.Destroy(r.Context(), w, r); err != nil {
			return false, errors.Join(ErrSessionDestroy, err)
		}
	}

	target := r.URL.RequestURI()
	w.Header().Set(HeaderLocation, target)
	w.Header().Set("Location", target)
	w.WriteHeader(http.StatusConflict)
	return true, nil
}
