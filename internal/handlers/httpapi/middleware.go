package httpapi

import (
	"context"
	"net/http"
)

type contextKey string

const userIDKey contextKey = "userID"

// identityHeader carries the opaque, already-verified caller identity.
// Authentication itself is owned by an upstream gateway; the core only
// requires that an identity is present.
const identityHeader = "X-User-ID"

// requireIdentity rejects requests without a verified caller identity and
// stores the identity on the request context.
func requireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(identityHeader)
		if userID == "" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing caller identity"})
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// callerID returns the verified identity attached by requireIdentity.
func callerID(r *http.Request) string {
	userID, _ := r.Context().Value(userIDKey).(string)
	return userID
}
