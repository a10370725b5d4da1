package http

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog/hlog"

	"github.com/quantonganh/newsletter"
)

type appHandler func(w http.ResponseWriter, r *http.Request) error

var codes = map[string]int{
	newsletter.ErrInvalid:  http.StatusBadRequest,
	newsletter.ErrInternal: http.StatusInternalServerError,
}

// ErrorStatusCode maps an application error code to an HTTP status.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

// Error turns an appHandler into an http.HandlerFunc. Errors become a status
// code with an empty body; the cause only goes to the logs and Sentry.
func (s *Server) Error(fn appHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}

		status := ErrorStatusCode(newsletter.ErrorCode(err))
		logger := hlog.FromRequest(r)
		if status >= http.StatusInternalServerError {
			logger.Error().Err(err).Int("status", status).Msg("request failed")
			if hub := sentry.GetHubFromContext(r.Context()); hub != nil {
				hub.CaptureException(err)
			} else {
				sentry.CaptureException(err)
			}
		} else {
			logger.Warn().Err(err).Int("status", status).Msg("request rejected")
		}

		w.Header().Set("Content-Length", "0")
		w.WriteHeader(status)
	}
}
