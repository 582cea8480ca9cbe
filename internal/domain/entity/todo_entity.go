package entity

import (
	"time"
)

// Todo is a single to-do item. CompletedAt is epoch milliseconds and is
// only non-nil while Completed is true.
type Todo struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	Completed   bool      `json:"completed"`
	CompletedAt *int64    `json:"completedAt"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
