package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/fhuszti/assets-cdn-go/internal/api_context"
	"github.com/fhuszti/assets-cdn-go/internal/handler/api"
	"github.com/golang-jwt/jwt/v4"
)

// WithBucketTag resolves which bucket a request is scoped to.
//
// Anonymous requests fall back to defaultBucket: assets are public and most
// traffic carries no token. When a Bearer JWT is present it must verify
// against the shared HMAC secret, and its "bucket" claim must name a
// configured bucket.
func WithBucketTag(secret, defaultBucket string, allowed []string) func(http.Handler) http.Handler {
	// turn the slice into a map for fast lookup
	m := make(map[string]struct{}, len(allowed))
	for _, b := range allowed {
		m[b] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" || secret == "" {
				ctx := context.WithValue(r.Context(), api_context.BucketKey, defaultBucket)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			if !strings.HasPrefix(auth, "Bearer ") {
				api.WriteError(w, http.StatusUnauthorized, "missing bearer token", nil)
				return
			}
			tokenStr := strings.TrimPrefix(auth, "Bearer ")
			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method")
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				api.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
				return
			}

			bucket, _ := claims["bucket"].(string)
			if bucket == "" {
				bucket = defaultBucket
			}
			if _, ok := m[bucket]; !ok {
				api.WriteError(w, http.StatusBadRequest, fmt.Sprintf("bucket %q does not exist", bucket), nil)
				return
			}

			ctx := context.WithValue(r.Context(), api_context.BucketKey, bucket)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
