package ports

import (
	"context"
	"time"

	"github.com/classpoll/api/internal/core/domain"
	"github.com/google/uuid"
)

type PollRepository interface {
	Save(ctx context.Context, poll *domain.Poll) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error)
	GetAll(ctx context.Context) ([]*domain.Poll, error)
	ListActive(ctx context.Context) ([]*domain.Poll, error)
	ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]*domain.Poll, error)
	Update(ctx context.Context, poll *domain.Poll) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CreatePollInput struct {
	Title         string
	EndDate       *time.Time
	Options       []string
	CreatedBy     uuid.UUID
	CreatedByName string
}

type EditPollInput struct {
	Title   string
	EndDate *time.Time
}

type PollService interface {
	Create(ctx context.Context, input CreatePollInput) (*domain.Poll, error)
	GetPoll(ctx context.Context, id string) (*domain.Poll, error)
	ListActive(ctx context.Context) ([]*domain.Poll, error)
	ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]*domain.Poll, error)
	Edit(ctx context.Context, id string, requesterID uuid.UUID, input EditPollInput) (*domain.Poll, error)
	ToggleStatus(ctx context.Context, id string, requesterID uuid.UUID) (*domain.Poll, error)
	Delete(ctx context.Context, id string, requesterID uuid.UUID) error
}
