// Package api exposes the mood advisor over HTTP.
package api

import (
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/moorebrett0/moodcast/internal/conditions"
	"github.com/moorebrett0/moodcast/internal/mood"
	"github.com/moorebrett0/moodcast/internal/observability"
)

// Handler serves tip lookups.
type Handler struct{}

// NewHandler builds a Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/tip", h.tip)
	mux.HandleFunc("/api/conditions", h.conditions)
	mux.HandleFunc("/healthz", healthz)
}

// TipResponse is the body of GET /api/tip.
type TipResponse struct {
	Weather string   `json:"weather"`
	TempC   *float64 `json:"temp_c"`
	Tip     string   `json:"tip"`
	Known   bool     `json:"known"`
}

// ConditionView is one entry of GET /api/conditions.
type ConditionView struct {
	Label       string `json:"label"`
	Name        string `json:"name"`
	Emoji       string `json:"emoji"`
	Description string `json:"description"`
}

// ErrorResponse is the error envelope for every endpoint.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) tip(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	q := r.URL.Query()
	weather := q.Get("weather")

	var temp *float64
	if raw := strings.TrimSpace(q.Get("temp")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			writeError(w, http.StatusBadRequest, "invalid_request", "temp must be a number in degrees Celsius")
			return
		}
		temp = &v
	}

	tip := mood.Tip(weather, temp)
	observability.RecordTip(weather, observability.SourceHTTP)

	writeJSON(w, http.StatusOK, TipResponse{
		Weather: weather,
		TempC:   temp,
		Tip:     tip,
		Known:   mood.Known(weather),
	})
}

func (h *Handler) conditions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	items := make([]ConditionView, 0, len(conditions.OrderedLabels))
	for _, label := range conditions.OrderedLabels {
		c := conditions.Lookup(string(label))
		items = append(items, ConditionView{
			Label:       string(c.Label),
			Name:        c.Name,
			Emoji:       c.Emoji,
			Description: c.Description,
		})
	}
	writeJSON(w, http.StatusOK, items)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("api: encode response failed", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: message})
}
