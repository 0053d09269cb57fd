package middleware

import (
	"encoding/json"
	"io"
	"log"
	"net"
	"net/http"
	"time"

	chiMid "github.com/go-chi/chi/v5/middleware"
)

type logEntry struct {
	Timestamp  string `json:"ts"`
	Level      string `json:"level"`
	Message    string `json:"msg"`
	Method     string `json:"method"`
	Path       string `json:"path"`
	Status     int    `json:"status"`
	Bytes      int    `json:"bytes"`
	DurationMs int64  `json:"duration_ms"`
	RemoteIP   string `json:"remote_ip,omitempty"`
	RequestID  string `json:"request_id,omitempty"`
	Locale     string `json:"locale,omitempty"`
}

// Logger emits a structured JSON log per request to the standard logger.
// It must run after chi's RequestID middleware.
func Logger(next http.Handler) http.Handler {
	return LoggerTo(nil)(next)
}

// LoggerTo is Logger writing bare JSON lines to out. A nil out uses log.Println.
func LoggerTo(out io.Writer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := NewResponseRecorder(w)
			next.ServeHTTP(rw, r)
			level := "info"
			switch {
			case rw.Status() >= 500:
				level = "error"
			case rw.Status() >= 400:
				level = "warn"
			}
			e := logEntry{
				Timestamp:  time.Now().Format(time.RFC3339Nano),
				Level:      level,
				Message:    "request",
				Method:     r.Method,
				Path:       r.URL.Path,
				Status:     rw.Status(),
				Bytes:      rw.Bytes(),
				DurationMs: time.Since(start).Milliseconds(),
				RemoteIP:   clientIP(r),
				RequestID:  chiMid.GetReqID(r.Context()),
				// the locale is resolved downstream; read it back from the response
				Locale: rw.Header().Get("Content-Language"),
			}
			b, _ := json.Marshal(e)
			if out == nil {
				log.Println(string(b))
				return
			}
			_, _ = out.Write(append(b, '\n'))
		})
	}
}

// clientIP is the peer address without its port. Behind a proxy,
// chi's RealIP must run first so RemoteAddr already holds the client.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
