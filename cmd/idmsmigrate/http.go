package main

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/joshnies/turring-eve/job"
	"github.com/joshnies/turring-eve/logger"
)

// triggerHandler decodes a TriggerRequest body and runs it against o, the
// same Run call the CLI entry point invokes.
type triggerHandler struct {
	orchestrator *job.Orchestrator
	log          *logger.Logger
}

// newRouter builds the HTTP surface for this migration tool: a single
// trigger route plus a liveness check, following this pack's schema
// registry service's router-setup shape.
func newRouter(o *job.Orchestrator, log *logger.Logger) chi.Router {
	h := &triggerHandler{orchestrator: o, log: log}

	r := chi.NewRouter()
	r.Get("/healthz", h.healthz)
	r.Post("/migrate/idms/mysql", h.migrate)
	return r
}

func (h *triggerHandler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *triggerHandler) migrate(w http.ResponseWriter, r *http.Request) {
	var req job.TriggerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.BasePath == "" || req.CobolCopybookOutPath == "" {
		writeError(w, http.StatusUnprocessableEntity, "base_path and cobol_copybook_out_path are required")
		return
	}

	result, err := h.orchestrator.Run(context.Background(), req)
	if err != nil {
		h.log.Error("migration job failed", map[string]interface{}{"base_path": req.BasePath, "error": err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
