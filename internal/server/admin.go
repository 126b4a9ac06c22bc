package server

import (
	"net/http"

	"bloodlink/pkg/types"
)

type adminStatsResponse struct {
	Donors         int64 `json:"donors"`
	ActiveRequests int64 `json:"activeRequests"`
	TotalRequests  int64 `json:"totalRequests"`
}

func (s *Service) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	donorCount, err := s.donorRepo.CountDonors(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to count donors")
		s.internalServerError(w)
		return
	}

	activeCount, err := s.requestRepo.CountRequests(ctx, types.RequestStatusActive)
	if err != nil {
		s.logger.WithError(err).Error("failed to count active requests")
		s.internalServerError(w)
		return
	}

	totalCount, err := s.requestRepo.CountRequests(ctx, "")
	if err != nil {
		s.logger.WithError(err).Error("failed to count requests")
		s.internalServerError(w)
		return
	}

	s.respondJSON(w, http.StatusOK, adminStatsResponse{
		Donors:         donorCount,
		ActiveRequests: activeCount,
		TotalRequests:  totalCount,
	})
}

func (s *Service) handleAdminNotify(w http.ResponseWriter, r *http.Request) {
	var form types.AdminNotificationForm
	if err := decodeBody(r, &form); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request payload.")
		return
	}

	if err := form.Validate(); err != nil {
		s.respondJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":       "Please fix the highlighted fields.",
			"fieldErrors": err,
		})
		return
	}

	if err := s.notifier.Broadcast(r.Context(), form.Title, form.Body); err != nil {
		s.logger.WithError(err).Error("failed to broadcast notification")
		s.respondError(w, http.StatusBadGateway, "Unable to send notification. Please try again.")
		return
	}

	s.respondJSON(w, http.StatusOK, messageResponse{Message: "Notification sent."})
}
