package support

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"bloodlink/internal/genai"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func stubAssistant(t *testing.T, replyText string) (*genai.Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text": ` + mustJSON(replyText) + `}`))
	}))

	return genai.NewClient(server.URL, "", 5*time.Second, testLogger()), server
}

func mustJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestNewConversation_OpensWithGreeting(t *testing.T) {
	client, server := stubAssistant(t, "hi")
	defer server.Close()

	conv := NewConversation(client, testLogger())

	transcript := conv.Transcript()
	require.Len(t, transcript, 1)
	assert.Equal(t, RoleAssistant, transcript[0].Role)
	assert.Equal(t, greetingText, transcript[0].Text)
	assert.NotEmpty(t, transcript[0].ID)
}

func TestSend_AppendsUserAndReply(t *testing.T) {
	client, server := stubAssistant(t, "You can register from the Donors page.")
	defer server.Close()

	conv := NewConversation(client, testLogger())

	reply, err := conv.Send(context.Background(), "How do I register?")

	require.NoError(t, err)
	assert.Equal(t, RoleAssistant, reply.Role)
	assert.Equal(t, "You can register from the Donors page.", reply.Text)

	transcript := conv.Transcript()
	require.Len(t, transcript, 3)
	assert.Equal(t, RoleUser, transcript[1].Role)
	assert.Equal(t, "How do I register?", transcript[1].Text)
	assert.Equal(t, reply.ID, transcript[2].ID)
}

func TestSend_EmptyMessageRejected(t *testing.T) {
	client, server := stubAssistant(t, "hi")
	defer server.Close()

	conv := NewConversation(client, testLogger())

	_, err := conv.Send(context.Background(), "")

	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Len(t, conv.Transcript(), 1)
}

func TestSend_ServiceFailureUsesFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := genai.NewClient(server.URL, "", 5*time.Second, testLogger())
	conv := NewConversation(client, testLogger())

	reply, err := conv.Send(context.Background(), "hello?")

	require.NoError(t, err)
	assert.Equal(t, fallbackText, reply.Text)

	// Exactly one fallback entry; the failure is not surfaced or duplicated.
	transcript := conv.Transcript()
	require.Len(t, transcript, 3)
	assert.Equal(t, fallbackText, transcript[2].Text)
}

func TestSend_RejectsWhileReplyPending(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Write([]byte(`{"text": "done"}`))
	}))
	defer server.Close()

	client := genai.NewClient(server.URL, "", 5*time.Second, testLogger())
	conv := NewConversation(client, testLogger())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := conv.Send(context.Background(), "first")
		assert.NoError(t, err)
	}()

	require.Eventually(t, conv.Pending, time.Second, 5*time.Millisecond)

	before := len(conv.Transcript())
	_, err := conv.Send(context.Background(), "second")
	assert.ErrorIs(t, err, ErrReplyPending)
	assert.Len(t, conv.Transcript(), before)

	close(release)
	wg.Wait()

	assert.False(t, conv.Pending())
	transcript := conv.Transcript()
	require.Len(t, transcript, 3)
	assert.Equal(t, "done", transcript[2].Text)
}

func TestHub_ReturnsSameConversationForKnownID(t *testing.T) {
	client, server := stubAssistant(t, "hi")
	defer server.Close()

	hub := NewHub(client, testLogger())

	chatID, conv := hub.Conversation("")
	require.NotEmpty(t, chatID)

	sameID, same := hub.Conversation(chatID)
	assert.Equal(t, chatID, sameID)
	assert.Same(t, conv, same)
}

func TestHub_UnknownIDGetsFreshConversation(t *testing.T) {
	client, server := stubAssistant(t, "hi")
	defer server.Close()

	hub := NewHub(client, testLogger())

	chatID, conv := hub.Conversation("expired-or-bogus")

	assert.NotEqual(t, "expired-or-bogus", chatID)
	assert.Len(t, conv.Transcript(), 1)
}

func TestHub_Close(t *testing.T) {
	client, server := stubAssistant(t, "hi")
	defer server.Close()

	hub := NewHub(client, testLogger())

	chatID, conv := hub.Conversation("")
	hub.Close(chatID)

	newID, fresh := hub.Conversation(chatID)
	assert.NotEqual(t, chatID, newID)
	assert.NotSame(t, conv, fresh)
}
