package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"bloodlink/internal/directory"
	"bloodlink/pkg/types"
)

type requestListResponse struct {
	Requests []*types.BloodRequest `json:"requests"`
	Count    int                   `json:"count"`
}

// handleListRequests serves the request board: active requests narrowed by the
// query filters, ordered by urgency then recency.
func (s *Service) handleListRequests(w http.ResponseWriter, r *http.Request) {
	filter := filterFromQuery(r)

	requests, state, err := s.requestBoard.Requests(filter)
	switch state {
	case directory.StateLoading:
		s.respondJSON(w, http.StatusServiceUnavailable, messageResponse{Message: "Loading blood requests, please retry shortly."})
		return
	case directory.StateFailed:
		s.logger.WithError(err).Error("request feed is failing")
		s.respondError(w, http.StatusBadGateway, "Failed to load blood requests. Please try again later.")
		return
	}

	s.respondJSON(w, http.StatusOK, requestListResponse{Requests: requests, Count: len(requests)})
}

func (s *Service) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("user id not found in context")
		s.internalServerError(w)
		return
	}

	var form types.BloodRequestForm
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

	request := &types.BloodRequest{
		UserID:             userID,
		RequesterName:      types.OptionalString(form.RequesterName),
		PatientName:        types.OptionalString(form.PatientName),
		BloodGroup:         types.BloodGroup(form.BloodGroup),
		Location:           strings.TrimSpace(form.Location),
		ContactInformation: strings.TrimSpace(form.ContactInformation),
		AdditionalNotes:    types.OptionalString(form.AdditionalNotes),
		Urgency:            types.UrgencyLevel(form.Urgency),
	}

	if err := s.requestRepo.CreateRequest(ctx, request); err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Error("failed to create blood request")
		s.respondError(w, http.StatusBadGateway, "Unable to post request. Please try again.")
		return
	}

	if request.Urgency == types.UrgencyUrgent {
		go s.alertDonorsForRequest(request)
	}

	s.respondJSON(w, http.StatusCreated, request)
}

// alertDonorsForRequest is fire-and-forget: push delivery is best effort and
// must never delay or fail the posting flow.
func (s *Service) alertDonorsForRequest(request *types.BloodRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	donors, err := s.donorRepo.AvailableDonors(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("failed to fetch donors for urgent-request alert")
		return
	}

	s.notifier.AlertCompatibleDonors(ctx, request, donors)
}

func (s *Service) handleMyRequests(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("user id not found in context")
		s.internalServerError(w)
		return
	}

	requests, err := s.requestRepo.RequestsByUser(ctx, userID)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Error("failed to fetch requests for user")
		s.internalServerError(w)
		return
	}

	s.respondJSON(w, http.StatusOK, requestListResponse{Requests: requests, Count: len(requests)})
}

func (s *Service) handleDeleteRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("user id not found in context")
		s.internalServerError(w)
		return
	}

	requestID := r.PathValue("id")

	request, err := s.requestRepo.Request(ctx, requestID)
	if err != nil {
		if errors.Is(err, types.ErrRequestNotFound) {
			s.respondError(w, http.StatusNotFound, "Blood request not found.")
			return
		}
		s.logger.WithError(err).WithField("request_id", requestID).Error("failed to fetch request for deletion")
		s.internalServerError(w)
		return
	}

	if request.UserID != userID {
		s.respondError(w, http.StatusForbidden, "You can only delete your own requests.")
		return
	}

	if err := s.requestRepo.DeleteRequest(ctx, requestID); err != nil {
		s.logger.WithError(err).WithField("request_id", requestID).Error("failed to delete request")
		s.respondError(w, http.StatusBadGateway, "Unable to delete request. Please try again.")
		return
	}

	s.respondJSON(w, http.StatusOK, messageResponse{Message: "Request deleted."})
}
