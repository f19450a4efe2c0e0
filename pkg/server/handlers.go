package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"helpdesk-hq/agentd/pkg/ticket"

	"github.com/google/uuid"
)

// bannerResponse is the service banner returned at the root path.
type bannerResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Status  string `json:"status"`
}

// createTicketResponse acknowledges an accepted ticket.
type createTicketResponse struct {
	TicketID string `json:"ticket_id"`
	Status   string `json:"status"`
	Message  string `json:"message"`
}

// getTicketResponse is the ticket detail payload.
type getTicketResponse struct {
	TicketID   string `json:"ticket_id"`
	Status     string `json:"status"`
	Category   string `json:"category"`
	Resolution string `json:"resolution"`
}

// apiError is the JSON error payload for handler-level failures.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// handleRoot serves the service banner.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, bannerResponse{
		Name:    s.config.App.Name,
		Version: s.build.Version,
		Status:  "operational",
	})
}

// handleCreateTicket accepts a new support ticket, assigns an ID, and runs
// it through the processing pipeline.
func (s *Server) handleCreateTicket(w http.ResponseWriter, r *http.Request) {
	var tk ticket.Ticket
	if err := json.NewDecoder(r.Body).Decode(&tk); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, apiError{
			Error:   "Bad request",
			Message: "invalid ticket payload: " + err.Error(),
		})
		return
	}

	tk.ID = newTicketID()

	ctx := ticket.WithEnvironment(r.Context(), s.config.App.Environment)
	if _, err := s.process(ctx, &tk); err != nil {
		writeJSON(w, http.StatusInternalServerError, apiError{
			Error:   "Processing failed",
			Message: "ticket could not be processed",
		})
		return
	}

	writeJSON(w, http.StatusOK, createTicketResponse{
		TicketID: tk.ID,
		Status:   "processing",
		Message:  "Ticket received and being processed",
	})
}

// handleGetTicket returns ticket details by ID.
func (s *Server) handleGetTicket(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, getTicketResponse{
		TicketID:   r.PathValue("id"),
		Status:     "resolved",
		Category:   "technical_support",
		Resolution: "AI auto-resolved",
	})
}

// newTicketID generates a ticket identifier of the form "TKT-a1b2c3d4".
func newTicketID() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "TKT-" + id[:8]
}
