package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/fhuszti/assets-cdn-go/internal/api_context"
	"github.com/fhuszti/assets-cdn-go/internal/handler/api"
	"github.com/go-chi/chi/v5"
)

// WithAssetID extracts the {id} path parameter. IDs are opaque keys minted by
// the upload service; the only thing rejected here is anything that could
// escape an object key.
func WithAssetID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, "id")
			if id == "" {
				api.WriteError(w, http.StatusBadRequest, "ID is required", nil)
				return
			}
			if strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
				api.WriteError(w, http.StatusBadRequest, fmt.Sprintf("ID %q is not a valid asset ID", id), nil)
				return
			}

			// stash it in context and call the real handler
			ctx := context.WithValue(r.Context(), api_context.IDKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
