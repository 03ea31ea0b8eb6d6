package service

import (
	"context"
	"errors"
	"io"

	"github.com/alexanderramin/brp/internal/domain"
	"github.com/alexanderramin/brp/internal/pack"
	"github.com/alexanderramin/brp/internal/workflow"
)

var (
	// ErrTitleRequired is returned by Create without a title.
	ErrTitleRequired = errors.New("project name (title) is required")

	// ErrProjectNumberRequired is returned by Create without a project number.
	ErrProjectNumberRequired = errors.New("project number is required")

	// ErrNothingToResume is returned by Resume when no record was opened yet.
	ErrNothingToResume = errors.New("no BRP to resume")
)

// CreateRequest holds the minimal identification of a new record.
type CreateRequest struct {
	Title         string
	ProjectNumber string
	ProgrammeType domain.ProgrammeType
	Status        domain.Status
}

// BRPService is the use-case surface over the persisted collection. Every
// mutation is persisted before it returns. Returned records are copies.
type BRPService interface {
	Create(ctx context.Context, req CreateRequest) (*domain.BRP, error)
	Get(ctx context.Context, id string) (*domain.BRP, error)
	Open(ctx context.Context, id string) (*domain.BRP, error)
	Resume(ctx context.Context) (*domain.BRP, error)
	List(ctx context.Context) ([]*domain.BRP, error)
	Recent(ctx context.Context, limit int) ([]*domain.BRP, error)
	Search(ctx context.Context, query string) ([]*domain.BRP, error)

	Save(ctx context.Context, id string, cmd workflow.SaveGateCommand, action domain.Action) (*domain.BRP, error)
	Advance(ctx context.Context, id string, cmd workflow.SaveGateCommand) (*domain.BRP, error)
	MoveBack(ctx context.Context, id string, cmd workflow.SaveGateCommand) (*domain.BRP, error)
	Close(ctx context.Context, id string, cmd workflow.SaveGateCommand) (*domain.BRP, error)

	AddItem(ctx context.Context, id string, kind domain.ItemKind) (*domain.BRP, error)
	RemoveItem(ctx context.Context, id string, kind domain.ItemKind, index int) (*domain.BRP, error)
	SetOptionSelected(ctx context.Context, id string, index int, selected bool) (*domain.BRP, error)

	Pack(ctx context.Context, id string, action domain.Action) (*pack.Pack, error)
	History(ctx context.Context, id string) ([]domain.Event, error)
	Audit(ctx context.Context, limit int) ([]domain.Event, error)
	Stats(ctx context.Context) (pack.Stats, error)

	Export(ctx context.Context, w io.Writer) error
	Import(ctx context.Context, r io.Reader) (int, error)
	Reset(ctx context.Context) error
	Seed(ctx context.Context) (int, error)
}
