package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"bloodlink/internal/directory"
	"bloodlink/internal/utils"
	"bloodlink/pkg/types"
)

type donorListResponse struct {
	Donors []*types.Donor `json:"donors"`
	Count  int            `json:"count"`
}

// handleListDonors serves the donor directory: the current live snapshot,
// narrowed by the optional blood_group and location query filters.
func (s *Service) handleListDonors(w http.ResponseWriter, r *http.Request) {
	filter := filterFromQuery(r)

	donors, state, err := s.donorBoard.Donors(filter)
	switch state {
	case directory.StateLoading:
		s.respondJSON(w, http.StatusServiceUnavailable, messageResponse{Message: "Loading donors, please retry shortly."})
		return
	case directory.StateFailed:
		s.logger.WithError(err).Error("donor feed is failing")
		s.respondError(w, http.StatusBadGateway, "Failed to load donors. Please try again later.")
		return
	}

	s.respondJSON(w, http.StatusOK, donorListResponse{Donors: donors, Count: len(donors)})
}

func (s *Service) handleRegisterDonor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("user id not found in context")
		s.internalServerError(w)
		return
	}

	var form types.DonorRegistrationForm
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

	available := true
	if form.Available != nil {
		available = *form.Available
	}

	var lastDonated *time.Time
	if trimmed := strings.TrimSpace(form.LastDonated); trimmed != "" {
		parsed, parseErr := time.Parse("2006-01-02", trimmed)
		if parseErr != nil {
			s.respondError(w, http.StatusUnprocessableEntity, "Last donated date must look like 2006-01-02.")
			return
		}
		lastDonated = utils.TimePtr(parsed)
	}

	donor := &types.Donor{
		UserID:        userID,
		FullName:      strings.TrimSpace(form.FullName),
		BloodGroup:    types.BloodGroup(form.BloodGroup),
		Location:      strings.TrimSpace(form.Location),
		ContactNumber: strings.TrimSpace(form.ContactNumber),
		FCMToken:      types.OptionalString(form.FCMToken),
		Available:     available,
		LastDonated:   lastDonated,
	}

	// One donor profile per identity: re-submissions update in place.
	existing, err := s.donorRepo.DonorByUser(ctx, userID)
	if err != nil && !errors.Is(err, types.ErrDonorNotFound) {
		s.logger.WithError(err).WithField("user_id", userID).Error("failed to look up existing donor profile")
		s.internalServerError(w)
		return
	}

	if existing != nil {
		donor.CreatedAt = existing.CreatedAt
		if donor.FCMToken == nil {
			// Keep a previously granted delivery token unless the client sent
			// a replacement.
			donor.FCMToken = existing.FCMToken
		}

		if err := s.donorRepo.UpdateDonor(ctx, existing.ID, donor); err != nil {
			s.logger.WithError(err).WithField("donor_id", existing.ID).Error("failed to update donor profile")
			s.respondError(w, http.StatusBadGateway, "Unable to save donor profile. Please try again.")
			return
		}

		s.respondJSON(w, http.StatusOK, donor)
		return
	}

	if err := s.donorRepo.CreateDonor(ctx, donor); err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Error("failed to create donor profile")
		s.respondError(w, http.StatusBadGateway, "Unable to save donor profile. Please try again.")
		return
	}

	s.respondJSON(w, http.StatusCreated, donor)
}

func (s *Service) handleMyDonorProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("user id not found in context")
		s.internalServerError(w)
		return
	}

	donor, err := s.donorRepo.DonorByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, types.ErrDonorNotFound) {
			s.respondError(w, http.StatusNotFound, "You have not registered as a donor yet.")
			return
		}
		s.logger.WithError(err).WithField("user_id", userID).Error("failed to fetch donor profile")
		s.internalServerError(w)
		return
	}

	s.respondJSON(w, http.StatusOK, donor)
}

func filterFromQuery(r *http.Request) directory.Filter {
	filter := directory.DefaultFilter()

	if v := strings.TrimSpace(r.URL.Query().Get("blood_group")); v != "" {
		filter.BloodGroup = v
	}
	filter.Location = strings.TrimSpace(r.URL.Query().Get("location"))

	return filter
}
