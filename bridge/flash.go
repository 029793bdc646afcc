package bridge

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/pagebridge/pkg/cookie"
)

// FlashProp is the prop name CookieFlash shares flash messages under.
const FlashProp = "flash"

// CookieFlash returns a FlashProvider reading one-shot flash cookies set with
// cookie.Manager.SetFlash. Each key found is consumed and exposed under the
// "flash" prop; missing keys are skipped, so the prop is always an object.
func CookieFlash(m *cookie.Manager, keys ...string) FlashProvider {
	return func(w http.ResponseWriter, r *http.Request) (PropSource, error) {
		messages := make(map[string]any, len(keys))
		for _, key := range keys {
			var v any
			if err := m.GetFlash(w, r, key, &v); err != nil {
				if errors.Is(err, cookie.ErrCookieNotFound) {
					continue
				}
				return nil, err
			}
			messages[key] = v
		}
		return M{FlashProp: messages}, nil
	}
}
