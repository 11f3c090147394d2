package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/sushihentaime/blogdocs/internal/logger"
)

// securityHeaders are set on every response, helmet style.
var securityHeaders = map[string]string{
	"X-Content-Type-Options":            "nosniff",
	"X-Frame-Options":                   "SAMEORIGIN",
	"X-DNS-Prefetch-Control":            "off",
	"X-Download-Options":                "noopen",
	"X-Permitted-Cross-Domain-Policies": "none",
	"X-XSS-Protection":                  "0",
	"Referrer-Policy":                   "no-referrer",
	"Strict-Transport-Security":         "max-age=15552000; includeSubDomains",
	"Content-Security-Policy":           "default-src 'self'",
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// logRequest writes one access line per request once the response is done.
func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		app.logger.Info("request",
			logger.String("method", r.Method),
			logger.String("uri", r.URL.RequestURI()),
			logger.Int("status", ww.Status()),
			logger.Int("bytes", ww.BytesWritten()),
			logger.Duration("duration", time.Since(start)),
			logger.String("remote_addr", r.RemoteAddr),
			logger.String("proto", r.Proto),
			logger.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
