package chat

import "time"

// Session identifies one widget instance for its lifetime.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}
