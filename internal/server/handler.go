// Package server exposes the dashboard over a small JSON API. It is
// the presentation-layer boundary: it assembles selection snapshots
// from request payloads and serves the rendered artifacts back.
package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gjrich/cintel-04-local/internal/dashboard"
	"github.com/gjrich/cintel-04-local/internal/domain"
	"github.com/gjrich/cintel-04-local/internal/export"
)

// Handler routes dashboard API requests.
type Handler struct {
	dash *dashboard.Dashboard
}

// New creates the API handler over a dashboard.
func New(dash *dashboard.Dashboard) *Handler {
	return &Handler{dash: dash}
}

// Routes registers the API endpoints on a mux.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/api/dashboard", h.handleDashboard)
	mux.HandleFunc("/api/selection", h.handleSelection)
	mux.HandleFunc("/api/display", h.handleDisplay)
	mux.HandleFunc("/api/penguins", h.handlePenguins)
	mux.HandleFunc("/api/export", h.handleExport)
}

type frameResponse struct {
	Selection domain.Selection `json:"selection"`
	Display   domain.Display   `json:"display"`
	Total     int              `json:"total"`
	Matched   int              `json:"matched"`
	Artifacts dashboard.Frame  `json:"artifacts"`
}

type selectionPayload struct {
	Species []string `json:"species"`
	Islands []string `json:"islands"`
	Sexes   []string `json:"sexes"`
	MassMin *float64 `json:"mass_min"`
	MassMax *float64 `json:"mass_max"`
}

type displayPayload struct {
	Attribute       *string `json:"attribute"`
	PlotlyBinCount  *int    `json:"plotly_bin_count"`
	SeabornBinCount *int    `json:"seaborn_bin_count"`
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.writeFrame(w, h.dash.Frame())
}

func (h *Handler) handleSelection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut && r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	defer r.Body.Close()

	var payload selectionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, fmt.Sprintf("invalid payload: %v", err), http.StatusBadRequest)
		return
	}

	// Absent fields keep their current value; present fields replace
	// it wholesale, so a full snapshot per update remains the norm.
	selection := h.dash.Selection()
	if payload.Species != nil {
		selection.Species = payload.Species
	}
	if payload.Islands != nil {
		selection.Islands = payload.Islands
	}
	if payload.Sexes != nil {
		selection.Sexes = payload.Sexes
	}
	if payload.MassMin != nil {
		selection.MassMin = *payload.MassMin
	}
	if payload.MassMax != nil {
		selection.MassMax = *payload.MassMax
	}

	frame, err := h.dash.SetSelection(r.Context(), selection)
	if err != nil {
		http.Error(w, fmt.Sprintf("recompute: %v", err), http.StatusInternalServerError)
		return
	}
	h.writeFrame(w, frame)
}

func (h *Handler) handleDisplay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut && r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	defer r.Body.Close()

	var payload displayPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, fmt.Sprintf("invalid payload: %v", err), http.StatusBadRequest)
		return
	}

	display := h.dash.Display()
	if payload.Attribute != nil {
		display.Attribute = *payload.Attribute
	}
	if payload.PlotlyBinCount != nil {
		display.PlotlyBinCount = *payload.PlotlyBinCount
	}
	if payload.SeabornBinCount != nil {
		display.SeabornBinCount = *payload.SeabornBinCount
	}

	h.writeFrame(w, h.dash.SetDisplay(display))
}

func (h *Handler) handlePenguins(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, h.dash.Dataset().Records())
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	filtered := h.dash.Filtered()
	filename := export.FileName("penguins", format)
	w.Header().Set("Content-Type", format.MimeType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := export.Write(w, filtered, format); err != nil {
		// Headers are already sent; the client sees a short read.
		log.Printf("[export] streaming %s export failed: %v", format, err)
	}
}

func (h *Handler) writeFrame(w http.ResponseWriter, frame dashboard.Frame) {
	writeJSON(w, http.StatusOK, frameResponse{
		Selection: h.dash.Selection(),
		Display:   h.dash.Display(),
		Total:     h.dash.Dataset().Len(),
		Matched:   h.dash.Filtered().Len(),
		Artifacts: frame,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}
