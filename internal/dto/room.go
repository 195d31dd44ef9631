package dto

type Room struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	RoomType    string `json:"room_type,omitempty"`
	Description string `json:"description,omitempty"`
	IsFree      bool   `json:"is_free"`
	OnlineCount int    `json:"online_count,omitempty"`
	Price       *int   `json:"price,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}
