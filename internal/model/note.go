package model

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	ID          uuid.UUID `db:"id" json:"id"`
	OwnerEmail  string    `db:"owner_email" json:"owner_email"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
