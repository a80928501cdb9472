package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

type contextKey string

const CanvasIDKey contextKey = "canvasID"

// TokenFromRequest reads a bearer token from the Authorization header, or
// from the token query parameter for clients that cannot set headers
// (browser WebSockets, <img> tags).
func TokenFromRequest(r *http.Request) (string, error) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return "", errors.New("invalid authorization format")
		}
		return parts[1], nil
	}
	if token := r.URL.Query().Get("token"); token != "" {
		return token, nil
	}
	return "", errors.New("missing authorization header")
}

// CanvasMiddleware admits requests whose token matches the {canvasId}
// route variable and stores the canvas id in the request context.
func (s *Service) CanvasMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := TokenFromRequest(r)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
			return
		}

		canvasID := mux.Vars(r)["canvasId"]
		if err := s.Authorize(token, canvasID); err != nil {
			status := http.StatusUnauthorized
			if errors.Is(err, ErrWrongCanvas) {
				status = http.StatusForbidden
			}
			writeJSON(w, status, map[string]string{"error": err.Error()})
			return
		}

		ctx := context.WithValue(r.Context(), CanvasIDKey, canvasID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func CanvasIDFromContext(ctx context.Context) string {
	canvasID, _ := ctx.Value(CanvasIDKey).(string)
	return canvasID
}
