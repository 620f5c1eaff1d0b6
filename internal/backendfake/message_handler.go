package backendfake

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"devhub/internal/models"
)

func (s *Server) listMessages(w http.ResponseWriter, r *http.Request) {
	me := claimsFrom(r).UserID
	with, _ := strconv.ParseInt(r.URL.Query().Get("conversationWith"), 10, 64)

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	out := []models.Message{}
	for _, id := range sortedIDs(s.store.messages) {
		m := s.store.messages[id]
		if m.SenderID != me && m.ReceiverID != me {
			continue
		}
		if with != 0 && m.SenderID != with && m.ReceiverID != with {
			continue
		}
		out = append(out, *m)
	}
	respondWithJSON(w, http.StatusOK, map[string]any{"messages": out})
}

func (s *Server) conversations(w http.ResponseWriter, r *http.Request) {
	me := claimsFrom(r).UserID

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	byUser := map[int64]*models.Conversation{}
	for _, id := range sortedIDs(s.store.messages) {
		m := s.store.messages[id]
		var other int64
		switch me {
		case m.SenderID:
			other = m.ReceiverID
		case m.ReceiverID:
			other = m.SenderID
		default:
			continue
		}
		c, ok := byUser[other]
		if !ok {
			c = &models.Conversation{OtherUserID: other, OtherUserName: s.store.userName(other)}
			byUser[other] = c
		}
		c.LastMessage = m.Message
		c.LastMessageTime = m.CreatedAt
		if m.ReceiverID == me && !m.Read {
			c.UnreadCount++
		}
	}

	out := make([]models.Conversation, 0, len(byUser))
	for _, c := range byUser {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastMessageTime > out[j].LastMessageTime })
	respondWithJSON(w, http.StatusOK, map[string]any{"conversations": out})
}

func (s *Server) sendMessage(w http.ResponseWriter, r *http.Request) {
	var req models.SendMessageRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respondWithError(w, http.StatusBadRequest, "Message cannot be empty")
		return
	}
	me := claimsFrom(r).UserID

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	receiver := req.ReceiverID
	if _, ok := s.store.accounts[receiver]; !ok {
		// Profiles link to developer records, so accept a developer id too.
		if d, ok := s.store.developers[receiver]; ok {
			receiver = d.UserID
		} else {
			respondWithError(w, http.StatusNotFound, "Receiver not found")
			return
		}
	}
	m := &models.Message{
		ID:         s.store.id(),
		SenderID:   me,
		ReceiverID: receiver,
		Message:    req.Message,
		CreatedAt:  nowString(),
	}
	s.store.messages[m.ID] = m
	respondWithJSON(w, http.StatusCreated, map[string]any{"message": "Message sent", "data": *m})
}

func (s *Server) markRead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid message ID")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	m, ok := s.store.messages[id]
	if !ok || m.ReceiverID != claimsFrom(r).UserID {
		respondWithError(w, http.StatusNotFound, "Message not found")
		return
	}
	m.Read = true
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Message marked as read"})
}

func (s *Server) markAllRead(w http.ResponseWriter, r *http.Request) {
	sender, ok := pathID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid sender ID")
		return
	}
	me := claimsFrom(r).UserID

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	for _, m := range s.store.messages {
		if m.SenderID == sender && m.ReceiverID == me {
			m.Read = true
		}
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Messages marked as read"})
}

func (s *Server) deleteMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid message ID")
		return
	}
	me := claimsFrom(r).UserID

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	m, ok := s.store.messages[id]
	if !ok || (m.SenderID != me && m.ReceiverID != me) {
		respondWithError(w, http.StatusNotFound, "Message not found")
		return
	}
	delete(s.store.messages, id)
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Message deleted"})
}
