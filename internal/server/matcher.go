package server

import (
	"errors"
	"net/http"

	"bloodlink/internal/directory"
	"bloodlink/internal/matcher"
	"bloodlink/pkg/types"
)

type matcherResponse struct {
	Matches []types.MatchedPair `json:"matches"`
	Message string              `json:"message,omitempty"`
}

// handleRunMatcher runs one matching pass over whatever donor and request
// snapshots are current. The two feeds refresh independently; there is no
// cross-feed ordering to wait for.
func (s *Service) handleRunMatcher(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	donors, donorState, derr := s.donorBoard.Snapshot()
	requests, requestState, rerr := s.requestBoard.Snapshot()

	if donorState == directory.StateLoading || requestState == directory.StateLoading {
		s.respondJSON(w, http.StatusServiceUnavailable, messageResponse{Message: "Still loading donor and request data, please retry shortly."})
		return
	}
	if donorState == directory.StateFailed || requestState == directory.StateFailed {
		s.logger.WithFields(map[string]any{"donor_err": derr, "request_err": rerr}).Error("feeds failing, matcher unavailable")
		s.respondError(w, http.StatusBadGateway, "Could not fetch donor/request data.")
		return
	}

	matches, err := s.matcher.Match(ctx, donors, requests)
	if err != nil {
		if errors.Is(err, matcher.ErrNotEnoughData) {
			s.respondJSON(w, http.StatusUnprocessableEntity, messageResponse{Message: "Need active donors and requests to run the matcher."})
			return
		}

		s.logger.WithError(err).Error("matcher run failed")
		s.respondError(w, http.StatusBadGateway, "An error occurred while trying to find matches.")
		return
	}

	if len(matches) == 0 {
		s.respondJSON(w, http.StatusOK, matcherResponse{
			Matches: []types.MatchedPair{},
			Message: "The AI could not find any suitable matches with the current data.",
		})
		return
	}

	s.respondJSON(w, http.StatusOK, matcherResponse{Matches: matches})
}
