package api

import (
	"encoding/json"
	"net/http"
)

// sceneCreateRequest is the request body for POST /scenes.
type sceneCreateRequest struct {
	Name    string                    `json:"name"`
	Devices map[string]map[string]any `json:"devices"`
}

// handleCreateScene publishes a scene definition to the bus.
func (s *Server) handleCreateScene(w http.ResponseWriter, r *http.Request) {
	var req sceneCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.Name == "" {
		writeBadRequest(w, "name is required")
		return
	}

	if err := s.manager.CreateScene(req.Name, req.Devices); err != nil {
		writeBusError(w, "scene publish failed")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"name":   req.Name,
		"status": "sent",
	})
}

// sceneActivateRequest is the request body for POST /scenes/activate.
type sceneActivateRequest struct {
	Name string `json:"name"`
}

// handleActivateScene publishes a scene activation request.
func (s *Server) handleActivateScene(w http.ResponseWriter, r *http.Request) {
	var req sceneActivateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.Name == "" {
		writeBadRequest(w, "name is required")
		return
	}

	if err := s.manager.ActivateScene(req.Name); err != nil {
		writeBusError(w, "scene activation publish failed")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"name":   req.Name,
		"status": "sent",
	})
}
