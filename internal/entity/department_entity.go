package entity

import (
	"time"

	"github.com/google/uuid"
)

// Department is the routing/visibility tag shared by users, chatbots and
// knowledge base articles. It is a first-class row so renames and deletes can
// be enforced transactionally instead of by ad hoc string matching.
type Department struct {
	Id          uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
