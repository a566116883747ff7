package message

import "time"

// DateLayout renders the human readable timestamp stored with each message.
const DateLayout = "1/2/2006, 3:04:05 PM"

type Message struct {
	ID        string    `json:"_id"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required,max=5000"`
}

func NewFromCreateRequest(req CreateRequest, now time.Time) Message {
	return Message{
		Email:     req.Email,
		Message:   req.Message,
		Date:      now.Format(DateLayout),
		CreatedAt: now.UTC(),
	}
}
