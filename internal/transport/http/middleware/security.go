package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/unrolled/secure"
)

const (
	// APIContentSecurityPolicy covers JSON and PDF responses, which load nothing.
	APIContentSecurityPolicy = "default-src 'none'; frame-ancestors 'none'"
	// AppContentSecurityPolicy lets the bundled editor load its own assets.
	AppContentSecurityPolicy = "default-src 'self'; base-uri 'self'; form-action 'self'; frame-ancestors 'none'; object-src 'none'; img-src 'self' data:; style-src 'self' 'unsafe-inline'; script-src 'self'; connect-src 'self'"
)

// SecureHeaders sets the browser hardening headers. Paths under /api/ get
// the locked-down policy, everything else the editor policy. HSTS is only
// sent in production.
func SecureHeaders(isProd bool) func(http.Handler) http.Handler {
	apiHeaders := newSecure(isProd, APIContentSecurityPolicy)
	appHeaders := newSecure(isProd, AppContentSecurityPolicy)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := appHeaders
			if strings.HasPrefix(r.URL.Path, "/api/") {
				s = apiHeaders
			}
			if err := s.Process(w, r); err != nil {
				slog.Warn("secure headers blocked request", "err", err, "path", r.URL.Path)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func newSecure(isProd bool, csp string) *secure.Secure {
	return secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		ReferrerPolicy:        "no-referrer",
		PermissionsPolicy:     "geolocation=(), microphone=(), camera=(), payment=()",
		ContentSecurityPolicy: csp,
		STSSeconds:            63072000,
		STSIncludeSubdomains:  true,
		STSPreload:            true,
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
		IsDevelopment:         !isProd,
	})
}
