package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

type contextKey struct{}

const authScheme = "tma"

func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

func UserFromContext(ctx context.Context) (User, bool) {
	user, ok := ctx.Value(contextKey{}).(User)
	return user, ok
}

type Middleware struct {
	botToken string
	maxAge   time.Duration
	adminIDs map[int64]struct{}
	now      func() time.Time
	logger   *zap.Logger
}

func NewMiddleware(botToken string, maxAge time.Duration, adminIDs []int64, logger *zap.Logger) *Middleware {
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}
	return &Middleware{
		botToken: botToken,
		maxAge:   maxAge,
		adminIDs: admins,
		now:      time.Now,
		logger:   logger,
	}
}

// Authenticate expects "Authorization: tma <initData>".
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeUnauthorized(w, http.StatusUnauthorized, "missing authorization header")
			return
		}

		scheme, initData, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, authScheme) || initData == "" {
			writeUnauthorized(w, http.StatusUnauthorized, "invalid authorization header")
			return
		}

		user, err := Validate(initData, m.botToken, m.maxAge, m.now())
		if err != nil {
			m.logger.Warn("rejected init data", zap.String("path", r.URL.Path), zap.Error(err))
			writeUnauthorized(w, http.StatusUnauthorized, "invalid init data")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), *user)))
	})
}

// RequireAdmin must run after Authenticate.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			writeUnauthorized(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		if _, admin := m.adminIDs[user.ID]; !admin {
			m.logger.Warn("admin access denied", zap.Int64("userId", user.ID), zap.String("path", r.URL.Path))
			writeUnauthorized(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeUnauthorized(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
