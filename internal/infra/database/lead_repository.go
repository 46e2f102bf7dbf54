package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/sunwatch/landing-api/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) Insert(ctx context.Context, lead *entity.Lead) error {
	// Seconds resolution, RFC 3339 UTC: sorts lexicographically in
	// chronological order.
	now := time.Now().UTC().Truncate(time.Second)

	query := `
		INSERT INTO leads (name, email, dates_away, message, ab_variant, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	res, err := r.DB.ExecContext(
		ctx,
		query,
		lead.Name,
		lead.Email,
		nullString(lead.DatesAway),
		nullString(lead.Message),
		lead.Variant,
		now.Format(time.RFC3339),
	)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	lead.ID = id
	lead.CreatedAt = now
	return nil
}

func (r *LeadRepository) CountByVariant(ctx context.Context) (map[string]int, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT ab_variant, COUNT(*) FROM leads GROUP BY ab_variant`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var variant string
		var count int
		if err := rows.Scan(&variant, &count); err != nil {
			return nil, err
		}
		counts[variant] = count
	}

	return counts, rows.Err()
}

func (r *LeadRepository) FindRecent(ctx context.Context, limit int) ([]entity.Lead, error) {
	query := `
		SELECT id, name, email, dates_away, message, ab_variant, created_at
		FROM leads
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`

	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := []entity.Lead{}
	for rows.Next() {
		var lead entity.Lead
		var datesAway, message sql.NullString
		var createdAt string

		if err := rows.Scan(
			&lead.ID,
			&lead.Name,
			&lead.Email,
			&datesAway,
			&message,
			&lead.Variant,
			&createdAt,
		); err != nil {
			return nil, err
		}

		lead.DatesAway = datesAway.String
		lead.Message = message.String

		ts, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, err
		}
		lead.CreatedAt = ts

		leads = append(leads, lead)
	}

	return leads, rows.Err()
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
