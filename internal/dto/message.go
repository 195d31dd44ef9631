package dto

// Message is one entry of a room's chat log, both in the history snapshot
// and in live stream frames. Timestamps stay in the server's ISO 8601 string
// form; the client only formats them for display.
type Message struct {
	ID          int    `json:"id,omitempty"`
	RoomID      int    `json:"room_id"`
	UserID      int    `json:"user_id"`
	UserName    string `json:"user_name,omitempty"`
	UserRole    string `json:"user_role,omitempty"`
	Content     string `json:"content"`
	MessageType string `json:"message_type,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

type MessageCreate struct {
	RoomID      int    `json:"room_id"`
	Content     string `json:"content"`
	MessageType string `json:"message_type"`
}

// SystemFrame is a control-typed stream payload (presence notices and the
// like). It is consumed for side effects and never appended to the log.
type SystemFrame struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

const SystemFrameType = "system"
