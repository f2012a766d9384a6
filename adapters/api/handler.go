package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"distfit/app"
	"distfit/domain/fit"
	"distfit/internal"
	"distfit/internal/errors"
)

// Handler serves the fitting API
type Handler struct {
	service *app.FitService
	config  *HandlerConfig
	logger  *internal.Logger
}

// NewHandler creates a new API handler
func NewHandler(service *app.FitService, config *HandlerConfig, logger *internal.Logger) *Handler {
	if config == nil {
		config = DefaultHandlerConfig()
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Handler{service: service, config: config, logger: logger.Named("API")}
}

// Routes builds the router with middleware attached
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if h.config.RequestTimeout > 0 {
		r.Use(middleware.Timeout(h.config.RequestTimeout))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Route("/api", func(r chi.Router) {
		r.Get("/distributions", h.handleDistributions)
		r.Post("/fit", h.handleFit)
	})
	return r
}

func (h *Handler) handleDistributions(w http.ResponseWriter, r *http.Request) {
	families := h.service.Registry().List()
	resp := DistributionsResponse{Distributions: make([]fit.DistributionSpec, 0, len(families))}
	for _, f := range families {
		resp.Distributions = append(resp.Distributions, f.Spec())
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleFit(w http.ResponseWriter, r *http.Request) {
	if h.config.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.config.MaxBodyBytes)
	}

	var req FitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			h.writeError(w, errors.InvalidInput(fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit)))
			return
		}
		h.writeError(w, errors.Wrap(errors.InvalidInput(err.Error()), "malformed request body"))
		return
	}

	var mode app.PlotMode
	if req.Plot != "" {
		m, err := app.ParsePlotMode(req.Plot)
		if err != nil {
			h.writeError(w, err)
			return
		}
		mode = m
	}

	startTime := time.Now()
	result, err := h.service.Fit(r.Context(), req.Data, req.RawOptions(h.config.Defaults))
	if err != nil {
		h.writeError(w, err)
		return
	}

	var plot *app.PlotData
	if mode != "" {
		ds, err := fit.NewDataset(req.Data)
		if err != nil {
			h.writeError(w, err)
			return
		}
		plot = app.BuildPlotData(ds, result, mode)
	}

	h.logger.Debug("run %s: %d values fitted in %.2fms", result.RunID, len(req.Data), float64(time.Since(startTime).Nanoseconds())/1e6)
	h.writeJSON(w, http.StatusOK, NewFitResponse(result, plot))
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode response: %v", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		code = errors.CodeRequestAborted
	}

	status := errors.HTTPStatus(code)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed: %v", err)
	} else {
		h.logger.Debug("request rejected (%s): %v", code, err)
	}
	h.writeJSON(w, status, ErrorResponse{Error: err.Error(), Code: code})
}
