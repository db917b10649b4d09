package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ndgpemu/ndgpemu/errs"
	"github.com/ndgpemu/ndgpemu/params"
	"github.com/ndgpemu/ndgpemu/predictor"
	"github.com/ndgpemu/ndgpemu/spline"
)

type boostRequest struct {
	H0rc  *float64              `json:"h0rc"`
	Z     *float64              `json:"z"`
	Cosmo params.Cosmology      `json:"cosmo"`
	K     []float64             `json:"k,omitempty"`
	Ext   *spline.Extrapolation `json:"ext,omitempty"`
}

type boostResponse struct {
	K        []float64 `json:"k"`
	Boost    []float64 `json:"boost"`
	Warnings []string  `json:"warnings,omitempty"`
}

type errorResponse struct {
	Error   string   `json:"error"`
	Param   string   `json:"param,omitempty"`
	Value   *float64 `json:"value,omitempty"`
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Missing []string `json:"missing,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		rangeErr   *errs.RangeError
		missingErr *errs.MissingParameterError
	)

	resp := errorResponse{Error: err.Error()}
	status := http.StatusInternalServerError

	switch {
	case errors.As(err, &rangeErr):
		status = http.StatusUnprocessableEntity
		resp.Param = rangeErr.Param
		resp.Value = &rangeErr.Value
		resp.Min = &rangeErr.Min
		resp.Max = &rangeErr.Max
	case errors.As(err, &missingErr):
		status = http.StatusUnprocessableEntity
		resp.Missing = missingErr.Keys
	case errors.Is(err, errs.ErrInvalidExtrapolation):
		status = http.StatusBadRequest
	default:
		s.logger.Error("prediction failed", slog.String("path", r.URL.Path), slog.Any("error", err))
	}

	writeJSON(w, status, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGrid(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"k": s.store.Grid()})
}

func (s *Server) handleBounds(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"bounds":   params.Bounds(),
		"required": params.Required(),
	})
}

func (s *Server) handleBoost(w http.ResponseWriter, r *http.Request) {
	if s.cfg.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	}

	var req boostRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad json: " + err.Error()})
		return
	}
	if req.H0rc == nil || req.Z == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "h0rc and z are required"})
		return
	}

	ext := s.defaultExt
	if req.Ext != nil {
		ext = *req.Ext
	}

	var warnings []string
	p, err := predictor.New(s.store,
		predictor.WithRangePolicy(s.policy),
		predictor.WithWarningHandler(func(err error) {
			warnings = append(warnings, err.Error())
		}),
	)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := boostResponse{K: req.K}
	if req.K == nil {
		resp.K = p.Grid()
	}

	resp.Boost, err = p.PredictAt(*req.H0rc, *req.Z, req.Cosmo, req.K, ext)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resp.Warnings = warnings

	writeJSON(w, http.StatusOK, resp)
}
