package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// automationCreateRequest is the request body for POST /automations.
type automationCreateRequest struct {
	Name       string           `json:"name"`
	Trigger    map[string]any   `json:"trigger"`
	Conditions []map[string]any `json:"conditions"`
	Actions    []map[string]any `json:"actions"`
}

// handleCreateAutomation publishes an automation rule to the bus.
func (s *Server) handleCreateAutomation(w http.ResponseWriter, r *http.Request) {
	var req automationCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.Name == "" {
		writeBadRequest(w, "name is required")
		return
	}
	if req.Trigger == nil {
		writeBadRequest(w, "trigger is required")
		return
	}

	if err := s.manager.CreateAutomation(req.Name, req.Trigger, req.Conditions, req.Actions); err != nil {
		writeBusError(w, "automation publish failed")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"name":   req.Name,
		"status": "sent",
	})
}

// Routine names accepted by POST /routines/{name}.
const (
	routineGoodMorning = "good_morning"
	routineGoodNight   = "good_night"
	routineAway        = "away"
)

// handleRunRoutine executes one of the built-in whole-home routines.
// Routines are best-effort sweeps, so the response is always 202.
func (s *Server) handleRunRoutine(w http.ResponseWriter, r *http.Request) {
	if s.routines == nil {
		writeNotFound(w, "routines not configured")
		return
	}

	name := chi.URLParam(r, "name")
	switch name {
	case routineGoodMorning:
		s.routines.GoodMorning()
	case routineGoodNight:
		s.routines.GoodNight()
	case routineAway:
		s.routines.AwayMode()
	default:
		writeNotFound(w, "unknown routine: "+name)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"routine": name,
		"status":  "activated",
	})
}

// energyQueryRequest is the request body for POST /energy/query.
type energyQueryRequest struct {
	DeviceID string `json:"device_id"`
}

// handleEnergyQuery publishes an energy usage query to the bus. Responses,
// if any responder exists, arrive over the bus, not on this request.
func (s *Server) handleEnergyQuery(w http.ResponseWriter, r *http.Request) {
	var req energyQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if err := s.manager.QueryEnergyUsage(req.DeviceID); err != nil {
		writeBusError(w, "energy query publish failed")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"status": "sent",
	})
}
