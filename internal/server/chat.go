package server

import (
	"errors"
	"net/http"

	"bloodlink/internal/support"
	"bloodlink/pkg/types"
)

type chatResponse struct {
	ChatID     string            `json:"chatId"`
	Reply      support.Message   `json:"reply"`
	Transcript []support.Message `json:"transcript"`
}

func (s *Service) handleSupportChat(w http.ResponseWriter, r *http.Request) {
	var form types.SupportChatForm
	if err := decodeBody(r, &form); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request payload.")
		return
	}

	if err := form.Validate(); err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, "Message is required.")
		return
	}

	chatID, conv := s.supportHub.Conversation(form.ChatID)

	reply, err := conv.Send(r.Context(), form.Message)
	if err != nil {
		if errors.Is(err, support.ErrReplyPending) {
			s.respondError(w, http.StatusConflict, "Please wait for the previous reply before sending another message.")
			return
		}
		s.respondError(w, http.StatusUnprocessableEntity, "Message is required.")
		return
	}

	s.respondJSON(w, http.StatusOK, chatResponse{
		ChatID:     chatID,
		Reply:      reply,
		Transcript: conv.Transcript(),
	})
}
