package usecase

import (
	"context"
	"log"

	"github.com/sunwatch/landing-api/internal/entity"
)

// RecentLeadsLimit caps the dashboard's recent-leads listing.
const RecentLeadsLimit = 50

type GetStatsUseCase struct {
	Repo entity.LeadRepositoryInterface
}

func NewGetStatsUseCase(repo entity.LeadRepositoryInterface) *GetStatsUseCase {
	return &GetStatsUseCase{Repo: repo}
}

func (uc *GetStatsUseCase) Execute(ctx context.Context) (*StatsOutput, error) {
	variants, err := uc.Repo.CountByVariant(ctx)
	if err != nil {
		log.Printf("stats: variant breakdown failed: %v", err)
		return nil, &PersistenceError{Message: "Failed to load stats.", Err: err}
	}

	// Total is the sum of the breakdown, so the two always agree: every
	// lead carries exactly one variant value.
	total := 0
	for _, count := range variants {
		total += count
	}

	recent, err := uc.Repo.FindRecent(ctx, RecentLeadsLimit)
	if err != nil {
		log.Printf("stats: recent leads failed: %v", err)
		return nil, &PersistenceError{Message: "Failed to load stats.", Err: err}
	}

	if variants == nil {
		variants = map[string]int{}
	}
	if recent == nil {
		recent = []entity.Lead{}
	}

	return &StatsOutput{
		TotalLeads:  total,
		Variants:    variants,
		RecentLeads: recent,
	}, nil
}
