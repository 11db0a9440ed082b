package api

import "net/http"

func (s *Server) handleGetStatistics(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserID(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	summary, err := s.services.Stats.Summary(r.Context(), userID)
	if err != nil {
		s.handleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}
