package api

import (
	"context"
	"net/http"
	"strconv"

	"devhub/internal/models"
)

type MessageService struct {
	c *Client
}

func (s *MessageService) List(ctx context.Context, filters Filters) ([]models.Message, error) {
	return list[models.Message](ctx, s.c, withQuery("/messages", filters), "messages")
}

func (s *MessageService) Conversations(ctx context.Context) ([]models.Conversation, error) {
	return list[models.Conversation](ctx, s.c, "/messages/conversations", "conversations")
}

func (s *MessageService) Send(ctx context.Context, receiverID int64, message string) error {
	body := models.SendMessageRequest{ReceiverID: receiverID, Message: message}
	return s.c.Do(ctx, "/messages", RequestOptions{Method: http.MethodPost, Body: body}, nil)
}

func (s *MessageService) MarkRead(ctx context.Context, id int64) error {
	return s.c.Do(ctx, messagePath(id)+"/read", RequestOptions{Method: http.MethodPatch}, nil)
}

// MarkAllRead marks every message from senderID as read.
func (s *MessageService) MarkAllRead(ctx context.Context, senderID int64) error {
	return s.c.Do(ctx, "/messages/read-all/"+strconv.FormatInt(senderID, 10), RequestOptions{Method: http.MethodPatch}, nil)
}

func (s *MessageService) Delete(ctx context.Context, id int64) error {
	return s.c.Do(ctx, messagePath(id), RequestOptions{Method: http.MethodDelete}, nil)
}

func (s *MessageService) Conversation(ctx context.Context, userID int64) ([]models.Message, error) {
	return s.List(ctx, Filters{"conversationWith": strconv.FormatInt(userID, 10)})
}

func messagePath(id int64) string {
	return "/messages/" + strconv.FormatInt(id, 10)
}
