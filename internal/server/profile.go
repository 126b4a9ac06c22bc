package server

import (
	"errors"
	"net/http"

	"bloodlink/pkg/types"
)

type profileResponse struct {
	User     *types.UserProfile    `json:"user"`
	Donor    *types.Donor          `json:"donor,omitempty"`
	Requests []*types.BloodRequest `json:"requests"`
}

// handleGetProfile aggregates the signed-in identity's stored profile, donor
// registration (if any) and posted requests.
func (s *Service) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("user id not found in context")
		s.internalServerError(w)
		return
	}

	user, err := s.userRepo.User(ctx, userID)
	if err != nil && !errors.Is(err, types.ErrUserNotFound) {
		s.logger.WithError(err).WithField("user_id", userID).Error("failed to fetch user for profile")
		s.internalServerError(w)
		return
	}
	if user == nil {
		email, _ := ctx.Value(contextKeyEmail).(string)
		user = &types.UserProfile{ID: userID, Email: types.OptionalString(email), Role: types.UserRoleUser}
	}

	donor, err := s.donorRepo.DonorByUser(ctx, userID)
	if err != nil && !errors.Is(err, types.ErrDonorNotFound) {
		s.logger.WithError(err).WithField("user_id", userID).Error("failed to fetch donor for profile")
		s.internalServerError(w)
		return
	}

	requests, err := s.requestRepo.RequestsByUser(ctx, userID)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Error("failed to fetch requests for profile")
		s.internalServerError(w)
		return
	}

	s.respondJSON(w, http.StatusOK, profileResponse{
		User:     user,
		Donor:    donor,
		Requests: requests,
	})
}
