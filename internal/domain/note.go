package domain

import "time"

type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateNoteRequest struct {
	Title   string   `json:"title" validate:"required,max=200"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// UpdateNoteRequest is a partial patch; nil fields are left unchanged.
type UpdateNoteRequest struct {
	Title   *string   `json:"title"`
	Content *string   `json:"content"`
	Tags    *[]string `json:"tags"`
}
