package support

import (
	"sync"

	"bloodlink/internal/genai"
	"bloodlink/internal/utils"

	"github.com/sirupsen/logrus"
)

// Hub hands out conversations keyed by chat id so a client can keep one
// transcript across requests. Conversations live in memory only and vanish on
// restart, matching the panel-lifetime scope of the chat.
type Hub struct {
	client *genai.Client
	logger *logrus.Logger

	mu    sync.Mutex
	convs map[string]*Conversation
}

func NewHub(client *genai.Client, logger *logrus.Logger) *Hub {
	return &Hub{
		client: client,
		logger: logger,
		convs:  make(map[string]*Conversation),
	}
}

// Conversation returns the transcript for chatID, creating a fresh one (and a
// fresh id) when chatID is empty or unknown.
func (h *Hub) Conversation(chatID string) (string, *Conversation) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if chatID != "" {
		if conv, ok := h.convs[chatID]; ok {
			return chatID, conv
		}
	}

	chatID = utils.NanoIDSize(21)
	conv := NewConversation(h.client, h.logger)
	h.convs[chatID] = conv

	return chatID, conv
}

// Close discards a conversation once its panel goes away.
func (h *Hub) Close(chatID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.convs, chatID)
}
