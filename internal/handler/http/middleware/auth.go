package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/cmlabs-hris/applicant-intake-go/internal/handler/http/response"
)

// AuthRequired accepts only verified access tokens that carry a user_id.
func AuthRequired(next http.Handler) http.Handler {
	hfn := func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}

		if token == nil {
			response.Unauthorized(w, "Missing access token")
			return
		}

		tokenType, ok := claims["type"].(string)
		if tokenType != "access" || !ok {
			response.Unauthorized(w, "Invalid token type")
			return
		}

		if userID, ok := claims["user_id"].(string); !ok || userID == "" {
			response.Unauthorized(w, "Token has no user")
			return
		}

		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hfn)
}
