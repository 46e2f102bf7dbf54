package usecase

import (
	"context"

	"github.com/sunwatch/landing-api/internal/entity"
	"github.com/sunwatch/landing-api/internal/infra/integration/meta"
)

type ConversionForwarder interface {
	SendLeadEvent(ctx context.Context, input meta.LeadEventInput) error
}

type SignupNotifier interface {
	SendSignupNotification(lead *entity.Lead) error
}
