package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/sunwatch/landing-api/internal/entity"
	"github.com/sunwatch/landing-api/internal/infra/integration/meta"
)

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Insert(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) CountByVariant(ctx context.Context) (map[string]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *MockLeadRepository) FindRecent(ctx context.Context, limit int) ([]entity.Lead, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Lead), args.Error(1)
}

// MockForwarder signals on done so tests can wait out the detached goroutine.
type MockForwarder struct {
	mock.Mock
	done chan meta.LeadEventInput
}

func NewMockForwarder() *MockForwarder {
	return &MockForwarder{done: make(chan meta.LeadEventInput, 1)}
}

func (m *MockForwarder) SendLeadEvent(ctx context.Context, input meta.LeadEventInput) error {
	args := m.Called(ctx, input)
	m.done <- input
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
	done chan struct{}
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{done: make(chan struct{}, 1)}
}

func (m *MockNotifier) SendSignupNotification(lead *entity.Lead) error {
	args := m.Called(lead)
	m.done <- struct{}{}
	return args.Error(0)
}

func stubInsert(repo *MockLeadRepository, id int64, createdAt time.Time) {
	repo.On("Insert", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		lead := args.Get(1).(*entity.Lead)
		lead.ID = id
		lead.CreatedAt = createdAt
	}).Return(nil)
}

func TestSubmitLeadSuccess(t *testing.T) {
	repo := new(MockLeadRepository)
	now := time.Now().UTC().Truncate(time.Second)
	stubInsert(repo, 1, now)

	uc := NewSubmitLeadUseCase(repo, nil, nil)

	output, err := uc.Execute(context.Background(), SubmitLeadInput{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Variant: "Don't Let a $50 Leak Cost You $50,000.",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), output.LeadID)
	assert.Equal(t, "Don't Let a $50 Leak Cost You $50,000.", output.Variant)
	repo.AssertExpectations(t)
}

func TestSubmitLeadDefaultsVariantToUnknown(t *testing.T) {
	repo := new(MockLeadRepository)
	stubInsert(repo, 1, time.Now())

	uc := NewSubmitLeadUseCase(repo, nil, nil)

	output, err := uc.Execute(context.Background(), SubmitLeadInput{
		Name:  "Jane Doe",
		Email: "jane@example.com",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Unknown", output.Variant)

	inserted := repo.Calls[0].Arguments.Get(1).(*entity.Lead)
	assert.Equal(t, "Unknown", inserted.Variant)
}

func TestSubmitLeadMissingNameRejected(t *testing.T) {
	repo := new(MockLeadRepository)
	uc := NewSubmitLeadUseCase(repo, nil, nil)

	output, err := uc.Execute(context.Background(), SubmitLeadInput{
		Name:  "   ",
		Email: "a@b.com",
	})

	assert.Nil(t, output)
	assert.True(t, IsValidationError(err))
	assert.Equal(t, "Name and email are required.", err.Error())
	repo.AssertNotCalled(t, "Insert")
}

func TestSubmitLeadMissingEmailRejected(t *testing.T) {
	repo := new(MockLeadRepository)
	uc := NewSubmitLeadUseCase(repo, nil, nil)

	_, err := uc.Execute(context.Background(), SubmitLeadInput{Name: "Jane Doe"})

	assert.True(t, IsValidationError(err))
	repo.AssertNotCalled(t, "Insert")
}

func TestSubmitLeadPersistenceFailure(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("Insert", mock.Anything, mock.Anything).Return(errors.New("disk I/O error"))

	uc := NewSubmitLeadUseCase(repo, nil, nil)

	output, err := uc.Execute(context.Background(), SubmitLeadInput{
		Name:  "Jane Doe",
		Email: "jane@example.com",
	})

	assert.Nil(t, output)
	assert.True(t, IsPersistenceError(err))
	// The caller-visible message must not leak internal detail.
	assert.Equal(t, "Failed to save to waitlist.", err.Error())
}

func TestSubmitLeadForwarderReceivesLeadMetadata(t *testing.T) {
	repo := new(MockLeadRepository)
	now := time.Now().UTC().Truncate(time.Second)
	stubInsert(repo, 7, now)

	forwarder := NewMockForwarder()
	forwarder.On("SendLeadEvent", mock.Anything, mock.Anything).Return(nil)

	uc := NewSubmitLeadUseCase(repo, forwarder, nil)

	_, err := uc.Execute(context.Background(), SubmitLeadInput{
		Name:          "Jane Doe",
		Email:         "jane@example.com",
		ClientIP:      "203.0.113.9",
		UserAgent:     "Mozilla/5.0",
		TestEventCode: "TEST64477",
	})
	assert.NoError(t, err)

	select {
	case event := <-forwarder.done:
		assert.Equal(t, "jane@example.com", event.Email)
		assert.Equal(t, now, event.EventTime)
		assert.Equal(t, "203.0.113.9", event.ClientIP)
		assert.Equal(t, "Mozilla/5.0", event.UserAgent)
		assert.Equal(t, "TEST64477", event.TestEventCode)
	case <-time.After(2 * time.Second):
		t.Fatal("forwarder was never invoked")
	}
}

func TestSubmitLeadForwarderFailureDoesNotSurface(t *testing.T) {
	repo := new(MockLeadRepository)
	stubInsert(repo, 1, time.Now())

	forwarder := NewMockForwarder()
	forwarder.On("SendLeadEvent", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	uc := NewSubmitLeadUseCase(repo, forwarder, nil)

	output, err := uc.Execute(context.Background(), SubmitLeadInput{
		Name:  "Jane Doe",
		Email: "jane@example.com",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), output.LeadID)

	select {
	case <-forwarder.done:
	case <-time.After(2 * time.Second):
		t.Fatal("forwarder was never invoked")
	}
}

func TestSubmitLeadNotifierFailureDoesNotSurface(t *testing.T) {
	repo := new(MockLeadRepository)
	stubInsert(repo, 1, time.Now())

	notifier := NewMockNotifier()
	notifier.On("SendSignupNotification", mock.Anything).Return(errors.New("smtp timeout"))

	uc := NewSubmitLeadUseCase(repo, nil, notifier)

	output, err := uc.Execute(context.Background(), SubmitLeadInput{
		Name:  "Jane Doe",
		Email: "jane@example.com",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), output.LeadID)

	select {
	case <-notifier.done:
	case <-time.After(2 * time.Second):
		t.Fatal("notifier was never invoked")
	}
}
