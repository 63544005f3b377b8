package api

import (
	"encoding/json"
	"net/http"

	"github.com/soaringjerry/evoa/internal/logging"
	"github.com/soaringjerry/evoa/internal/metrics"
	"github.com/soaringjerry/evoa/internal/middleware"
	"github.com/soaringjerry/evoa/internal/services"
	"github.com/soaringjerry/evoa/internal/utils"
)

const maxBodyBytes = 1 << 20

type Router struct {
	analysis AnalysisProxy
	upload   UploadIssuer
	// Wrap, when set, decorates each proxy route (auth, rate limiting).
	Wrap func(http.Handler) http.Handler
}

func NewRouter(analysis AnalysisProxy, upload UploadIssuer) *Router {
	return &Router{analysis: analysis, upload: upload}
}

func (rt *Router) Register(mux *http.ServeMux) {
	mux.Handle("/analysis", rt.route("analysis", rt.handleAnalysis))     // POST
	mux.Handle("/upload-url", rt.route("upload-url", rt.handleUploadURL)) // POST
}

func (rt *Router) route(name string, h http.HandlerFunc) http.Handler {
	var next http.Handler = h
	if rt.Wrap != nil {
		next = rt.Wrap(next)
	}
	return middleware.Instrument(name, next)
}

// POST /analysis
// { pitch: {...}, userId: string, customQuestion?: string }
func (rt *Router) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, r, http.StatusMethodNotAllowed, "error.method_not_allowed")
		return
	}
	var req services.AnalysisRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "error.invalid_body")
		return
	}
	mode, failKey := "structured", "error.analysis_failed"
	if req.HasQuestion() {
		mode, failKey = "question", "error.answer_failed"
	}
	res, err := rt.analysis.Analyze(r.Context(), req)
	if err != nil {
		metrics.Analyses.WithLabelValues(mode, outcome(err)).Inc()
		if services.IsCode(err, services.ErrorInvalid) {
			writeError(w, r, http.StatusBadRequest, "error.missing_fields")
			return
		}
		logging.Error("analysis request failed", "mode", mode, "error", err)
		writeServiceError(w, r, err, failKey)
		return
	}
	metrics.Analyses.WithLabelValues(mode, "ok").Inc()
	if res.Answer != nil {
		writeJSON(w, http.StatusOK, res.Answer)
		return
	}
	writeJSON(w, http.StatusOK, res.Analysis)
}

// POST /upload-url
// { duration: number }
func (rt *Router) handleUploadURL(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, r, http.StatusMethodNotAllowed, "error.method_not_allowed")
		return
	}
	var req services.UploadRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "error.invalid_body")
		return
	}
	ticket, err := rt.upload.CreateUploadURL(r.Context(), req)
	if err != nil {
		metrics.UploadURLs.WithLabelValues(outcome(err)).Inc()
		if services.IsCode(err, services.ErrorInvalid) {
			writeError(w, r, http.StatusBadRequest, "error.invalid_duration")
			return
		}
		logging.Error("upload url request failed", "error", err)
		writeServiceError(w, r, err, "error.upload_failed")
		return
	}
	metrics.UploadURLs.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusOK, ticket)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

// writeServiceError maps a service failure to a status; everything that is
// not the caller's fault becomes a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, failKey string) {
	se, ok := services.AsServiceError(err)
	if !ok {
		writeError(w, r, http.StatusInternalServerError, failKey)
		return
	}
	switch se.Code {
	case services.ErrorUnauthorized:
		writeError(w, r, http.StatusUnauthorized, "error.unauthorized")
	case services.ErrorTooManyRequests:
		writeError(w, r, http.StatusTooManyRequests, "error.rate_limited")
	default:
		writeError(w, r, http.StatusInternalServerError, failKey)
	}
}

func outcome(err error) string {
	if se, ok := services.AsServiceError(err); ok {
		return string(se.Code)
	}
	return "error"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, key string) {
	writeJSON(w, status, map[string]string{"error": utils.T(middleware.LocaleFromContext(r.Context()), key)})
}
