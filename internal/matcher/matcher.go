// Package matcher pairs available donors with active blood requests via the
// hosted matching service. Each invocation is independent: it works off
// whatever donor/request snapshots are current, performs no store writes, and
// makes no idempotence promise across repeated runs.
package matcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"bloodlink/internal/genai"
	"bloodlink/pkg/types"

	"github.com/sirupsen/logrus"
)

var (
	// ErrNotEnoughData means the matcher was asked to run without at least one
	// donor and one request; the service is never contacted in that case.
	ErrNotEnoughData = errors.New("need at least one available donor and one active request")

	// ErrMatchFailed covers service and schema failures alike; callers surface
	// it as a generic matcher error and keep whatever results they had.
	ErrMatchFailed = errors.New("matching service failed")
)

type Matcher struct {
	client *genai.Client
	logger *logrus.Logger
}

func New(client *genai.Client, logger *logrus.Logger) *Matcher {
	return &Matcher{client: client, logger: logger}
}

// Match runs one matching pass over the given snapshots. The returned pairings
// are enriched with the donor and request records from the same snapshots; a
// pairing referencing an id absent from the input is dropped, not fatal. An
// empty result with a nil error means the service found no matches.
func (m *Matcher) Match(ctx context.Context, donors []*types.Donor, requests []*types.BloodRequest) ([]types.MatchedPair, error) {

	if len(donors) == 0 || len(requests) == 0 {
		return nil, ErrNotEnoughData
	}

	input := buildInput(donors, requests)
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("invalid matcher input: %w", err)
	}

	prompt := genai.BuildMatchPrompt(promptDonors(input.Donors), promptRequests(input.Requests))

	raw, err := m.client.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMatchFailed, err)
	}

	if err := validateOutput(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMatchFailed, err)
	}

	var pairings []pairing
	if err := json.Unmarshal([]byte(raw), &pairings); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMatchFailed, err)
	}

	donorsByID := make(map[string]*types.Donor, len(donors))
	for _, d := range donors {
		donorsByID[d.ID] = d
	}
	requestsByID := make(map[string]*types.BloodRequest, len(requests))
	for _, r := range requests {
		requestsByID[r.ID] = r
	}

	matches := make([]types.MatchedPair, 0, len(pairings))
	for _, p := range pairings {
		donor, donorOK := donorsByID[p.DonorID]
		request, requestOK := requestsByID[p.RequestID]
		if !donorOK || !requestOK {
			m.logger.WithFields(logrus.Fields{
				"donor_id":   p.DonorID,
				"request_id": p.RequestID,
			}).Warn("dropping pairing referencing unknown records")
			continue
		}

		matches = append(matches, types.MatchedPair{
			DonorID:   p.DonorID,
			RequestID: p.RequestID,
			Reason:    p.Reason,
			Donor:     donor,
			Request:   request,
		})
	}

	m.logger.WithFields(logrus.Fields{
		"proposed": len(pairings),
		"kept":     len(matches),
	}).Info("matching pass completed")

	return matches, nil
}

func buildInput(donors []*types.Donor, requests []*types.BloodRequest) Input {
	in := Input{
		Donors:   make([]DonorInput, 0, len(donors)),
		Requests: make([]RequestInput, 0, len(requests)),
	}

	for _, d := range donors {
		in.Donors = append(in.Donors, DonorInput{
			ID:            d.ID,
			BloodGroup:    string(d.BloodGroup),
			Location:      d.Location,
			ContactNumber: d.ContactNumber,
			FCMToken:      d.FCMToken,
		})
	}

	for _, r := range requests {
		in.Requests = append(in.Requests, RequestInput{
			ID:                 r.ID,
			BloodGroup:         string(r.BloodGroup),
			Location:           r.Location,
			Urgency:            string(r.Urgency),
			ContactInformation: r.ContactInformation,
			AdditionalNotes:    r.AdditionalNotes,
		})
	}

	return in
}

func promptDonors(donors []DonorInput) []genai.MatchPromptDonor {
	out := make([]genai.MatchPromptDonor, 0, len(donors))
	for _, d := range donors {
		out = append(out, genai.MatchPromptDonor{ID: d.ID, BloodGroup: d.BloodGroup, Location: d.Location})
	}
	return out
}

func promptRequests(requests []RequestInput) []genai.MatchPromptRequest {
	out := make([]genai.MatchPromptRequest, 0, len(requests))
	for _, r := range requests {
		out = append(out, genai.MatchPromptRequest{ID: r.ID, BloodGroup: r.BloodGroup, Location: r.Location, Urgency: r.Urgency})
	}
	return out
}
