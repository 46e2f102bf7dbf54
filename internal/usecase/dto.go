package usecase

import "github.com/sunwatch/landing-api/internal/entity"

type SubmitLeadInput struct {
	Name    string
	Email   string
	Dates   string
	Message string
	Variant string

	// Forwarded to the conversions API, never persisted.
	TestEventCode string
	ClientIP      string
	UserAgent     string
}

type SubmitLeadOutput struct {
	LeadID  int64
	Variant string // variant actually stored, after the "Unknown" default
}

type StatsOutput struct {
	TotalLeads  int            `json:"totalLeads"`
	Variants    map[string]int `json:"variants"`
	RecentLeads []entity.Lead  `json:"recentLeads"`
}
