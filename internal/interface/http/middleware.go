package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	domratelimit "example.com/storefront-checkout/internal/domain/ratelimit"
)

var (
	ctxUserKey         = struct{}{}
	errUnauthenticated = errors.New("unauthenticated")
)

type authUser struct {
	UserID int64
	Email  string
	Name   string
}

// optionalAuth attaches the caller's identity when a bearer token is present.
// Requests without a token proceed anonymously; a malformed token is still a
// hard 401 so clients notice expired sessions.
func (a *API) optionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			respondError(w, http.StatusUnauthorized, errUnauthenticated)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		claims, err := a.tokenSvc.ParseToken(token)
		if err != nil {
			respondError(w, http.StatusUnauthorized, errUnauthenticated)
			return
		}

		ctx := context.WithValue(r.Context(), ctxUserKey, &authUser{
			UserID: claims.UserID,
			Email:  claims.Email,
			Name:   claims.Name,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func getAuthUser(ctx context.Context) *authUser {
	if user, ok := ctx.Value(ctxUserKey).(*authUser); ok {
		return user
	}
	return nil
}

// rateLimitMiddleware is the enforcement point for mutation endpoints. The
// identity is the authenticated user when available, the client IP otherwise.
func (a *API) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		decision, err := a.limiter.Check(r.Context(), a.callerIdentity(r), r.URL.Path)
		if err != nil {
			respondError(w, http.StatusInternalServerError, err)
			return
		}
		if !decision.Allowed {
			writeRateLimited(w, decision.RetryAfter)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *API) callerIdentity(r *http.Request) string {
	if user := getAuthUser(r.Context()); user != nil {
		return fmt.Sprintf("user:%d", user.UserID)
	}
	return "ip:" + r.RemoteAddr
}

func writeRateLimited(w http.ResponseWriter, retryAfter time.Duration) {
	w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
	writeJSON(w, http.StatusTooManyRequests, map[string]any{
		"error":       domratelimit.ErrLimitExceeded.Error(),
		"retry_after": int(retryAfter.Seconds()),
	})
}

// corsMiddleware answers preflight requests with an empty 200.
func (a *API) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", a.allowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
