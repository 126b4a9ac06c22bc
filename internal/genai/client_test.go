package genai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestClient_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hello", body["prompt"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text": "hello back"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", 5*time.Second, testLogger())

	text, err := client.Generate(context.Background(), "hello")

	require.NoError(t, err)
	assert.Equal(t, "hello back", text)
}

func TestClient_Generate_OmitsAuthWithoutKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{"text": "ok"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 5*time.Second, testLogger())

	_, err := client.Generate(context.Background(), "hello")

	require.NoError(t, err)
}

func TestClient_Generate_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", 5*time.Second, testLogger())

	_, err := client.Generate(context.Background(), "hello")

	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestClient_Generate_EmptyOutput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing text field", body: `{}`},
		{name: "blank text", body: `{"text": "   "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL, "test-key", 5*time.Second, testLogger())

			_, err := client.Generate(context.Background(), "hello")

			assert.ErrorIs(t, err, ErrEmptyOutput)
		})
	}
}

func TestClient_Generate_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", 5*time.Second, testLogger())

	_, err := client.Generate(context.Background(), "hello")

	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestClient_Generate_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", 5*time.Second, testLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Generate(ctx, "hello")

	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestBuildMatchPrompt(t *testing.T) {
	donors := []MatchPromptDonor{{ID: "d1", BloodGroup: "O+", Location: "Dhaka"}}
	requests := []MatchPromptRequest{{ID: "r1", BloodGroup: "O+", Location: "Dhaka", Urgency: "Urgent"}}

	prompt := BuildMatchPrompt(donors, requests)

	assert.Contains(t, prompt, "Donor ID: d1, Blood Group: O+, Location: Dhaka")
	assert.Contains(t, prompt, "Request ID: r1, Blood Group: O+, Location: Dhaka, Urgency: Urgent")
	assert.Contains(t, prompt, "Respond with ONLY the JSON array")
}

func TestBuildSupportPrompt(t *testing.T) {
	prompt := BuildSupportPrompt("How do I register as a donor?")

	assert.Contains(t, prompt, "BloodLink BD")
	assert.Contains(t, prompt, "Do NOT provide medical advice")
	assert.Contains(t, prompt, "Based on the user's message: How do I register as a donor?")
}
