package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/cmlabs-hris/applicant-intake-go/internal/domain/applicant"
	"github.com/cmlabs-hris/applicant-intake-go/internal/handler/http/response"
)

// RequireReviewer requires the staff or admin role
func RequireReviewer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, applicant.ErrForbidden)
			return
		}

		role, ok := claims["role"].(string)
		if !ok || !applicant.CanReview(role) {
			response.HandleError(w, applicant.ErrForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
