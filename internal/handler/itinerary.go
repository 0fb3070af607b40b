package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/jdevries/tripwise/backend/internal/domain"
	"github.com/jdevries/tripwise/backend/internal/service"
)

// generateRequest is the optional POST body for itinerary generation.
// An absent body means include_activities=true.
type generateRequest struct {
	IncludeActivities *bool `json:"include_activities"`
}

// generateResponse reports what the run actually wrote. Count can be lower
// than requested (degraded sourcing, partial writes) and that is still a
// successful run.
type generateResponse struct {
	Success         bool `json:"success"`
	Days            int  `json:"days"`
	Count           int  `json:"count"`
	ActivitiesAdded int  `json:"activities_added"`
}

// GenerateItinerary handles POST /trips/{tripID}/itinerary.
func (s *Server) GenerateItinerary(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := s.tripRequest(w, r)
	if !ok {
		return
	}

	includeActivities := true
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "invalid request body")
		return
	}
	if req.IncludeActivities != nil {
		includeActivities = *req.IncludeActivities
	}

	result, err := s.itineraries.Generate(r.Context(), userID, tripID, includeActivities)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, generateResponse{
		Success:         true,
		Days:            result.Days,
		Count:           result.Days,
		ActivitiesAdded: result.ActivitiesAdded,
	})
}

// GetItinerary handles GET /trips/{tripID}/itinerary.
// Provenance stored in activity notes is decoded into dedicated fields so
// renderers never deal with the packed encoding.
func (s *Server) GetItinerary(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := s.tripRequest(w, r)
	if !ok {
		return
	}

	days, err := s.itineraries.Get(r.Context(), userID, tripID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toItineraryResponse(days))
}

// DeleteItinerary handles DELETE /trips/{tripID}/itinerary.
func (s *Server) DeleteItinerary(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := s.tripRequest(w, r)
	if !ok {
		return
	}

	if err := s.itineraries.Delete(r.Context(), userID, tripID); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// itineraryDayResponse is one day with renderer-ready activities.
type itineraryDayResponse struct {
	Day        domain.Day         `json:"day"`
	Activities []activityResponse `json:"activities"`
}

// activityResponse flattens an activity and its decoded provenance.
type activityResponse struct {
	domain.Activity
	SourceURL string `json:"source_url,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
}

func toItineraryResponse(days []service.ItineraryDay) []itineraryDayResponse {
	out := make([]itineraryDayResponse, 0, len(days))
	for _, d := range days {
		activities := make([]activityResponse, 0, len(d.Activities))
		for _, a := range d.Activities {
			sourceURL, imageURL := domain.DecodeProvenance(a.Notes)
			activities = append(activities, activityResponse{
				Activity:  a,
				SourceURL: sourceURL,
				ImageURL:  imageURL,
			})
		}
		out = append(out, itineraryDayResponse{Day: d.Day, Activities: activities})
	}
	return out
}
