package models

type Message struct {
	ID         int64  `json:"id"`
	SenderID   int64  `json:"sender_id"`
	ReceiverID int64  `json:"receiver_id"`
	Message    string `json:"message"`
	Read       bool   `json:"is_read"`
	CreatedAt  string `json:"created_at,omitempty"`
}

type Conversation struct {
	OtherUserID     int64  `json:"other_user_id"`
	OtherUserName   string `json:"other_user_name"`
	LastMessage     string `json:"last_message"`
	LastMessageTime string `json:"last_message_time"`
	UnreadCount     int    `json:"unread_count,omitempty"`
}

type SendMessageRequest struct {
	ReceiverID int64  `json:"receiverId"`
	Message    string `json:"message"`
}
