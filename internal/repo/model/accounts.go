package model

import (
	"time"

	"github.com/google/uuid"
)

type Accounts struct {
	ID        uuid.UUID `sql:"primary_key"`
	Name      string
	Email     string
	CreatedAt time.Time
}
