package usecase

import (
	"context"
	"log"
	"strings"

	"github.com/sunwatch/landing-api/internal/entity"
	"github.com/sunwatch/landing-api/internal/infra/integration/meta"
)

type SubmitLeadUseCase struct {
	Repo      entity.LeadRepositoryInterface
	Forwarder ConversionForwarder // nil when the conversions API is not configured
	Notifier  SignupNotifier     // nil when SMTP is not configured
}

func NewSubmitLeadUseCase(
	repo entity.LeadRepositoryInterface,
	forwarder ConversionForwarder,
	notifier SignupNotifier,
) *SubmitLeadUseCase {
	return &SubmitLeadUseCase{
		Repo:      repo,
		Forwarder: forwarder,
		Notifier:  notifier,
	}
}

func (uc *SubmitLeadUseCase) Execute(ctx context.Context, input SubmitLeadInput) (*SubmitLeadOutput, error) {
	if err := ValidateSubmitLeadInput(input); err != nil {
		return nil, err
	}

	variant := strings.TrimSpace(input.Variant)
	if variant == "" {
		variant = "Unknown"
	}

	lead := &entity.Lead{
		Name:      input.Name,
		Email:     input.Email,
		DatesAway: input.Dates,
		Message:   input.Message,
		Variant:   variant,
	}

	if err := uc.Repo.Insert(ctx, lead); err != nil {
		log.Printf("waitlist: insert failed: %v", err)
		return nil, &PersistenceError{Message: "Failed to save to waitlist.", Err: err}
	}

	// Fire-and-forget: the caller's response never waits on, or sees, the
	// outcome of either side effect.
	uc.dispatchSideEffects(lead, input)

	return &SubmitLeadOutput{LeadID: lead.ID, Variant: variant}, nil
}

func (uc *SubmitLeadUseCase) dispatchSideEffects(lead *entity.Lead, input SubmitLeadInput) {
	if uc.Forwarder != nil {
		event := meta.LeadEventInput{
			Email:         lead.Email,
			EventTime:     lead.CreatedAt,
			ClientIP:      input.ClientIP,
			UserAgent:     input.UserAgent,
			TestEventCode: input.TestEventCode,
		}
		go func() {
			if err := uc.Forwarder.SendLeadEvent(context.Background(), event); err != nil {
				log.Printf("waitlist: conversion forward failed for lead %d: %v", lead.ID, err)
			}
		}()
	}

	if uc.Notifier != nil {
		notified := *lead
		go func() {
			if err := uc.Notifier.SendSignupNotification(&notified); err != nil {
				log.Printf("waitlist: signup notification failed for lead %d: %v", lead.ID, err)
			}
		}()
	}
}
