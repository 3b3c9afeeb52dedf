package websocket

import (
	"encoding/json"
	"time"

	"fad/pkg/logger"
)

const (
	MessageTypePing     = "ping"
	MessageTypePong     = "pong"
	MessageTypeActivity = "activity"
	MessageTypeError    = "error"
)

type WSMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp"`
}

func NewMessage(msgType string, data interface{}) WSMessage {
	return WSMessage{
		Type:      msgType,
		Data:      data,
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

func (m WSMessage) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// HandleClientMessage answers a message sent by a feed client. The feed is
// server-push only, so everything except ping gets an error reply.
func HandleClientMessage(messageBytes []byte) *WSMessage {
	var wsMessage WSMessage
	if err := json.Unmarshal(messageBytes, &wsMessage); err != nil {
		logger.Warn("Invalid feed client message: %v", err)
		reply := NewMessage(MessageTypeError, map[string]string{"error": "Invalid message format"})
		return &reply
	}

	switch wsMessage.Type {
	case MessageTypePing:
		reply := NewMessage(MessageTypePong, map[string]string{"status": "alive"})
		return &reply
	}

	reply := NewMessage(MessageTypeError, map[string]string{"error": "Unknown message type"})
	return &reply
}
