package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"lotomania/internal/assistant"
	"lotomania/internal/checker"
	"lotomania/internal/generator"
	"lotomania/internal/lotto"
	"lotomania/internal/results"
)

type generateRequest struct {
	generator.RawConfig
	ReferenceContest int `json:"referenceContest"`
}

type checkRequest struct {
	Games   string `json:"games"`
	Contest int    `json:"contest"`
	From    int    `json:"from"`
	To      int    `json:"to"`
}

type exportRequest struct {
	Games [][]string `json:"games"`
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) latestResult(w http.ResponseWriter, r *http.Request) {
	h.result(r.Context(), w, 0)
}

func (h *handler) resultByContest(w http.ResponseWriter, r *http.Request) {
	contest, err := strconv.Atoi(chi.URLParam(r, "contest"))
	if err != nil || contest < 1 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid contest %q", chi.URLParam(r, "contest")))
		return
	}
	h.result(r.Context(), w, contest)
}

func (h *handler) result(ctx context.Context, w http.ResponseWriter, contest int) {
	d, err := h.assistant.Result(ctx, contest)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *handler) generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	cfg, err := generator.ParseConfig(req.RawConfig)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	b, err := h.assistant.Generate(r.Context(), cfg, req.ReferenceContest)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *handler) check(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if req.From > 0 || req.To > 0 {
		to := req.To
		if to == 0 {
			to = req.From
		}
		report, err := h.assistant.CheckRange(r.Context(), req.Games, req.From, to)
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		writeJSON(w, http.StatusOK, report)
		return
	}

	report, err := h.assistant.Check(r.Context(), req.Games, req.Contest)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// export renders games in the line format accepted back by /games/check.
func (h *handler) export(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	games, err := checker.FromStrings(req.Games)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, checker.ExportGames(games)); err != nil {
		log.Warn().Err(err).Msg("Failed to write export")
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, generator.ErrInvalidConfig),
		errors.Is(err, assistant.ErrNoGames),
		errors.Is(err, lotto.ErrInvalidDraw):
		return http.StatusBadRequest
	case errors.Is(err, results.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, results.ErrNetwork), errors.Is(err, results.ErrInvalidPayload):
		return http.StatusBadGateway
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(body io.ReadCloser, dst interface{}) error {
	defer body.Close()
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", status).Msg("Request failed")
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
