package matcher

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bloodlink/internal/genai"
	"bloodlink/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// fakeService returns a matcher wired to a stub generation endpoint that
// replies with the given text.
func fakeService(t *testing.T, replyText string) (*Matcher, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := json.Marshal(map[string]string{"text": replyText})
		require.NoError(t, err)
		w.Write(body)
	}))

	client := genai.NewClient(server.URL, "test-key", 5*time.Second, testLogger())
	return New(client, testLogger()), server
}

func testDonor(id string) *types.Donor {
	return &types.Donor{
		ID:            id,
		FullName:      "Donor " + id,
		BloodGroup:    types.BloodGroupOPositive,
		Location:      "Dhaka",
		ContactNumber: "01700000000",
		Available:     true,
	}
}

func testRequest(id string) *types.BloodRequest {
	return &types.BloodRequest{
		ID:                 id,
		BloodGroup:         types.BloodGroupOPositive,
		Location:           "Dhaka",
		ContactInformation: "01800000000",
		Urgency:            types.UrgencyUrgent,
		Status:             types.RequestStatusActive,
	}
}

func TestMatch_NotEnoughData(t *testing.T) {
	tests := []struct {
		name     string
		donors   []*types.Donor
		requests []*types.BloodRequest
	}{
		{name: "no donors", donors: nil, requests: []*types.BloodRequest{testRequest("r1")}},
		{name: "no requests", donors: []*types.Donor{testDonor("d1")}, requests: nil},
		{name: "neither", donors: nil, requests: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// No server: the service must never be contacted.
			client := genai.NewClient("http://127.0.0.1:0", "", time.Second, testLogger())
			m := New(client, testLogger())

			matches, err := m.Match(context.Background(), tt.donors, tt.requests)

			assert.ErrorIs(t, err, ErrNotEnoughData)
			assert.Nil(t, matches)
		})
	}
}

func TestMatch_EnrichesPairings(t *testing.T) {
	reply := `[{"donorId": "d1", "requestId": "r1", "reason": "Same blood group and city."}]`
	m, server := fakeService(t, reply)
	defer server.Close()

	donors := []*types.Donor{testDonor("d1")}
	requests := []*types.BloodRequest{testRequest("r1")}

	matches, err := m.Match(context.Background(), donors, requests)

	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "d1", matches[0].DonorID)
	assert.Equal(t, "r1", matches[0].RequestID)
	assert.Equal(t, "Same blood group and city.", matches[0].Reason)
	assert.Same(t, donors[0], matches[0].Donor)
	assert.Same(t, requests[0], matches[0].Request)
}

func TestMatch_DropsPairingsWithUnknownIDs(t *testing.T) {
	reply := `[
		{"donorId": "d1", "requestId": "r1", "reason": "ok"},
		{"donorId": "ghost", "requestId": "r1", "reason": "unknown donor"},
		{"donorId": "d1", "requestId": "ghost", "reason": "unknown request"}
	]`
	m, server := fakeService(t, reply)
	defer server.Close()

	matches, err := m.Match(context.Background(), []*types.Donor{testDonor("d1")}, []*types.BloodRequest{testRequest("r1")})

	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "d1", matches[0].DonorID)
}

func TestMatch_EmptyArrayMeansNoMatches(t *testing.T) {
	m, server := fakeService(t, `[]`)
	defer server.Close()

	matches, err := m.Match(context.Background(), []*types.Donor{testDonor("d1")}, []*types.BloodRequest{testRequest("r1")})

	require.NoError(t, err)
	assert.Empty(t, matches)
	assert.NotNil(t, matches)
}

func TestMatch_SchemaViolations(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{name: "not json", reply: "sorry, I cannot help with that"},
		{name: "object instead of array", reply: `{"donorId": "d1"}`},
		{name: "missing reason", reply: `[{"donorId": "d1", "requestId": "r1"}]`},
		{name: "empty reason", reply: `[{"donorId": "d1", "requestId": "r1", "reason": ""}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, server := fakeService(t, tt.reply)
			defer server.Close()

			matches, err := m.Match(context.Background(), []*types.Donor{testDonor("d1")}, []*types.BloodRequest{testRequest("r1")})

			assert.ErrorIs(t, err, ErrMatchFailed)
			assert.Nil(t, matches)
		})
	}
}

func TestMatch_ServiceFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := genai.NewClient(server.URL, "test-key", 5*time.Second, testLogger())
	m := New(client, testLogger())

	matches, err := m.Match(context.Background(), []*types.Donor{testDonor("d1")}, []*types.BloodRequest{testRequest("r1")})

	assert.ErrorIs(t, err, ErrMatchFailed)
	assert.Nil(t, matches)
}

func TestMatch_PromptCarriesSnapshotFields(t *testing.T) {
	var prompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		prompt = body["prompt"]
		w.Write([]byte(`{"text": "[]"}`))
	}))
	defer server.Close()

	client := genai.NewClient(server.URL, "test-key", 5*time.Second, testLogger())
	m := New(client, testLogger())

	_, err := m.Match(context.Background(), []*types.Donor{testDonor("d1")}, []*types.BloodRequest{testRequest("r1")})

	require.NoError(t, err)
	assert.Contains(t, prompt, "Donor ID: d1")
	assert.Contains(t, prompt, "Request ID: r1")
	assert.Contains(t, prompt, "Urgency: Urgent")
}

func TestValidateOutput(t *testing.T) {
	assert.NoError(t, validateOutput(`[]`))
	assert.NoError(t, validateOutput(`[{"donorId": "d", "requestId": "r", "reason": "x"}]`))
	assert.Error(t, validateOutput(`"just a string"`))
	assert.Error(t, validateOutput(`[{"donorId": 5, "requestId": "r", "reason": "x"}]`))
}
