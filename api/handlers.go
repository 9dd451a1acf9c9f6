package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"technician-tracker/gate"
	"technician-tracker/geo"
	"technician-tracker/models"
	"technician-tracker/trail"
	"technician-tracker/tracking"
)

// Handler serves the tracking and gate endpoints.
type Handler struct {
	Tracker *tracking.Tracker
	Map     *tracking.MapView
	Board   *tracking.StatusBoard
	Trails  trail.Repository
	Gate    *gate.Gate
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// EntryPrompt is what unauthorized visitors are redirected to.
func (h *Handler) EntryPrompt(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "Enter your initials to continue",
		"min_initials": gate.MinInitialsLen,
	})
}

// Enter records the visitor's initials and sets the visitor cookie.
func (h *Handler) Enter(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Initials string `json:"initials"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	visitorID := ""
	if c, err := r.Cookie(gate.CookieName); err == nil {
		visitorID = c.Value
	}
	visitor, err := h.Gate.Enter(r.Context(), visitorID, req.Initials)
	if errors.Is(err, gate.ErrInitialsTooShort) {
		http.Error(w, "Please enter at least 2 initials", http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Printf("Failed to save visitor: %v", err)
		http.Error(w, "Failed to save visitor", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     gate.CookieName,
		Value:    visitor.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, visitor)
}

type trackResponse struct {
	Service *models.ServiceRecord `json:"service"`
	Update  tracking.Update       `json:"update"`
	Labels  labels                `json:"labels"`
}

type labels struct {
	Distance string `json:"distance"`
	ETA      string `json:"eta"`
}

// Track starts tracking the service named in the JSON body or, for GET, in
// the service query parameter.
func (h *Handler) Track(w http.ResponseWriter, r *http.Request) {
	serviceID := r.URL.Query().Get("service")
	if r.Method == http.MethodPost {
		var req struct {
			ServiceID string `json:"service_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request payload", http.StatusBadRequest)
			return
		}
		serviceID = req.ServiceID
	}

	rec, u, err := h.Tracker.Track(r.Context(), serviceID)
	switch {
	case errors.Is(err, tracking.ErrEmptyServiceID):
		http.Error(w, "Please enter a service ID", http.StatusBadRequest)
		return
	case errors.Is(err, tracking.ErrServiceNotFound):
		http.Error(w, "Service ID not found. Try: "+tracking.DemoServiceID, http.StatusNotFound)
		return
	case err != nil:
		log.Printf("Lookup failed: %v", err)
		http.Error(w, "Lookup failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, trackResponse{
		Service: rec,
		Update:  u,
		Labels: labels{
			Distance: tracking.FormatDistance(u.DistanceMiles),
			ETA:      tracking.FormatETA(u.ETAMinutes),
		},
	})
}

// StopTracking cancels the active session's timer.
func (h *Handler) StopTracking(w http.ResponseWriter, r *http.Request) {
	h.Tracker.Stop()
	writeJSON(w, http.StatusOK, map[string]string{"message": "Tracking stopped"})
}

// Status returns the latest distance, ETA and status labels.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	l, ok := h.Board.Labels()
	if !ok {
		http.Error(w, "No service is being tracked", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

// MapState returns the marker, line and viewport state.
func (h *Handler) MapState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Map.Snapshot())
}

// Trail returns every recorded position for a service.
func (h *Handler) Trail(w http.ResponseWriter, r *http.Request) {
	serviceID := mux.Vars(r)["service_id"]
	points, err := h.Trails.FindByService(r.Context(), serviceID)
	if err != nil {
		log.Printf("[%s] Failed to load trail: %v", serviceID, err)
		http.Error(w, "Failed to load trail", http.StatusInternalServerError)
		return
	}
	if points == nil {
		points = []*models.TrailPoint{}
	}
	writeJSON(w, http.StatusOK, points)
}

// Distance computes the straight-line distance and ETA between two points.
func (h *Handler) Distance(w http.ResponseWriter, r *http.Request) {
	var req struct {
		From *models.GeoPoint `json:"from"`
		To   *models.GeoPoint `json:"to"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.From == nil || req.To == nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if !validPoint(*req.From) || !validPoint(*req.To) {
		http.Error(w, "Coordinates out of range", http.StatusBadRequest)
		return
	}

	d := geo.Haversine(*req.From, *req.To)
	eta := tracking.ETAMinutes(d)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"distance_miles": d,
		"eta_minutes":    eta,
		"distance":       tracking.FormatDistance(d),
		"eta":            tracking.FormatETA(eta),
	})
}

func validPoint(p models.GeoPoint) bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}
