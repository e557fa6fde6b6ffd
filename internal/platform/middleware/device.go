package middleware

import (
	"net/http"

	"github.com/mssola/useragent"

	"rollcall/pkg/requestcontext"
)

// Device parses the User-Agent header into a compact "Browser/OS" string and
// stores it in the context. Audit events attach it so an attendance trail
// shows which device marked each day.
func Device(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("User-Agent")
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}
		ua := useragent.New(raw)
		name, _ := ua.Browser()
		device := name
		if os := ua.OS(); os != "" {
			device = name + "/" + os
		}
		ctx := requestcontext.WithDevice(r.Context(), device)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
