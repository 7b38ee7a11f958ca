package models

import "github.com/google/uuid"

// MessageType tags an outbound server message.
type MessageType string

const (
	MsgStateUpdate  MessageType = "STATE_UPDATE"
	MsgNotification MessageType = "NOTIFICATION"
	MsgError        MessageType = "ERROR"
	MsgChatMessage  MessageType = "CHAT_MESSAGE"
)

// ServerMessage is the outbound envelope. STATE_UPDATE carries a sanitized
// GameState in Payload; NOTIFICATION and ERROR carry Message; CHAT_MESSAGE
// carries a ChatMessagePayload.
type ServerMessage struct {
	Type    MessageType `json:"type"`
	Message string      `json:"message,omitempty"`
	Payload any         `json:"payload,omitempty"`
}

// ChatMessagePayload is a relayed chat blob with sender identity and a server
// timestamp attached. EncryptedMessage passes through untouched.
type ChatMessagePayload struct {
	SenderID         uuid.UUID `json:"senderId"`
	SenderName       string    `json:"senderName"`
	EncryptedMessage string    `json:"encryptedMessage"`
	Timestamp        int64     `json:"timestamp"`
}

// StateUpdate wraps a sanitized state snapshot.
func StateUpdate(state *GameState) ServerMessage {
	return ServerMessage{Type: MsgStateUpdate, Payload: state}
}

// Notification wraps a broadcast notice.
func Notification(message string) ServerMessage {
	return ServerMessage{Type: MsgNotification, Message: message}
}

// Error wraps an error reply for a single sender.
func Error(message string) ServerMessage {
	return ServerMessage{Type: MsgError, Message: message}
}
