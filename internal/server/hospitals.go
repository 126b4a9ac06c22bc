package server

import (
	"net/http"

	"bloodlink/pkg/types"
)

type hospitalListResponse struct {
	Hospitals []*types.Hospital `json:"hospitals"`
}

func (s *Service) handleListHospitals(w http.ResponseWriter, r *http.Request) {
	hospitals, err := s.hospitalRepo.Hospitals(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch hospitals")
		s.internalServerError(w)
		return
	}

	s.respondJSON(w, http.StatusOK, hospitalListResponse{Hospitals: hospitals})
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
