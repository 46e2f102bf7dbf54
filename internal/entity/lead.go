package entity

import (
	"context"
	"time"
)

// Lead is one waitlist submission captured by the landing page.
type Lead struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	DatesAway string    `json:"dates_away,omitempty"`
	Message   string    `json:"message,omitempty"`
	Variant   string    `json:"ab_variant"` // headline variant shown at submission time
	CreatedAt time.Time `json:"created_at"`
}

type LeadRepositoryInterface interface {

	// Insert persists the lead and fills in ID and CreatedAt.
	Insert(ctx context.Context, lead *Lead) error

	CountByVariant(ctx context.Context) (map[string]int, error)

	// FindRecent returns at most limit leads, newest first.
	FindRecent(ctx context.Context, limit int) ([]Lead, error)
}
