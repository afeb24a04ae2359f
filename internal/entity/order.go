package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Order statuses accepted by the listing filter.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Statuses lists the valid order statuses in their canonical order.
var Statuses = []string{StatusPending, StatusCompleted, StatusCancelled}

// ValidStatus reports whether s is one of the enumerated order statuses.
func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// TimeLayout is the wire and storage layout for order timestamps. The
// created_at column is TEXT; a fixed-width UTC layout keeps lexicographic
// ordering equal to chronological ordering.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// Order represents a purchase order stored in the relational database.
type Order struct {
	bun.BaseModel `bun:"table:orders"`

	ID        int64   `bun:",pk,autoincrement"`
	Customer  string  `bun:"customer,notnull"`
	Amount    float64 `bun:"amount,notnull"`
	Status    string  `bun:"status,notnull"`
	CreatedAt string  `bun:"created_at,notnull"`
}

// Timestamp formats t for storage in created_at.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}
