package middleware

import (
	"net/http"

	"github.com/weathernow/weathernow/internal/api/models"
)

const (
	apiCSP       = "default-src 'none'; frame-ancestors 'none'"
	dashboardCSP = "default-src 'none'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; form-action 'self'; frame-ancestors 'none'"
)

// SecurityHeaders sets the headers used on JSON API responses.
func SecurityHeaders(next http.Handler) http.Handler {
	return securityHeaders(apiCSP, next)
}

// DashboardSecurityHeaders sets the same headers with a CSP that allows the
// dashboard's inline styles and same-origin form submission.
func DashboardSecurityHeaders(next http.Handler) http.Handler {
	return securityHeaders(dashboardCSP, next)
}

func securityHeaders(csp string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		h.Set("Content-Security-Policy", csp)
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Permissions-Policy", "geolocation=(), camera=(), microphone=()")

		next.ServeHTTP(w, r)
	})
}

// RequireTLS rejects requests a load balancer reports as plain HTTP via
// X-Forwarded-Proto. Requests without the header pass, so direct local
// connections keep working. A disabled middleware is a pass-through.
func RequireTLS(enabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !enabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" && proto != "https" {
				problem := models.NewProblem(
					models.ProblemTypeTLSRequired,
					"TLS required",
					http.StatusForbidden,
					GetRequestID(r.Context()),
				)
				problem.Detail = "This endpoint requires HTTPS"
				problem.Instance = r.URL.Path
				problem.Write(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
