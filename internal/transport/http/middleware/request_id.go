package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"paystub/internal/requestctx"
)

const maxRequestIDLength = 128

// RequestID keeps a caller-supplied X-Request-ID when it is sane and
// otherwise mints a uuid. The id is echoed on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := strings.TrimSpace(r.Header.Get(requestctx.Header))
		if reqID == "" || len(reqID) > maxRequestIDLength {
			reqID = uuid.NewString()
		}
		w.Header().Set(requestctx.Header, reqID)
		ctx := requestctx.WithRequestID(r.Context(), reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetRequestID(ctx context.Context) string {
	return requestctx.GetRequestID(ctx)
}
