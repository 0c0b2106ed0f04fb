package tracker

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/studylog-backend/internal/domain"
)

// Hand-written func-field mocks for the service's private interfaces.

type courseRepoMock struct {
	CreateFunc    func(ctx context.Context, c *domain.Course) error
	GetByNameFunc func(ctx context.Context, ownerID uuid.UUID, name string) (*domain.Course, error)
	ListFunc      func(ctx context.Context, ownerID uuid.UUID, opts domain.CourseFilter) ([]*domain.Course, error)
	UpdateFunc    func(ctx context.Context, c *domain.Course) error
	DeleteFunc    func(ctx context.Context, ownerID uuid.UUID, name string) error
	SkillsFunc    func(ctx context.Context, ownerID uuid.UUID) ([]domain.Skill, error)
}

func (m *courseRepoMock) Create(ctx context.Context, c *domain.Course) error {
	return m.CreateFunc(ctx, c)
}

func (m *courseRepoMock) GetByName(ctx context.Context, ownerID uuid.UUID, name string) (*domain.Course, error) {
	return m.GetByNameFunc(ctx, ownerID, name)
}

func (m *courseRepoMock) List(ctx context.Context, ownerID uuid.UUID, opts domain.CourseFilter) ([]*domain.Course, error) {
	return m.ListFunc(ctx, ownerID, opts)
}

func (m *courseRepoMock) Update(ctx context.Context, c *domain.Course) error {
	return m.UpdateFunc(ctx, c)
}

func (m *courseRepoMock) Delete(ctx context.Context, ownerID uuid.UUID, name string) error {
	return m.DeleteFunc(ctx, ownerID, name)
}

func (m *courseRepoMock) Skills(ctx context.Context, ownerID uuid.UUID) ([]domain.Skill, error) {
	return m.SkillsFunc(ctx, ownerID)
}

type moduleRepoMock struct {
	CreateFunc    func(ctx context.Context, mod *domain.Module) error
	GetByNameFunc func(ctx context.Context, ownerID uuid.UUID, name string) (*domain.Module, error)
	ListFunc      func(ctx context.Context, ownerID uuid.UUID, opts domain.ModuleFilter) ([]*domain.Module, error)
	UpdateFunc    func(ctx context.Context, mod *domain.Module) error
	DeleteFunc    func(ctx context.Context, ownerID uuid.UUID, name string) error
}

func (m *moduleRepoMock) Create(ctx context.Context, mod *domain.Module) error {
	return m.CreateFunc(ctx, mod)
}

func (m *moduleRepoMock) GetByName(ctx context.Context, ownerID uuid.UUID, name string) (*domain.Module, error) {
	return m.GetByNameFunc(ctx, ownerID, name)
}

func (m *moduleRepoMock) List(ctx context.Context, ownerID uuid.UUID, opts domain.ModuleFilter) ([]*domain.Module, error) {
	return m.ListFunc(ctx, ownerID, opts)
}

func (m *moduleRepoMock) Update(ctx context.Context, mod *domain.Module) error {
	return m.UpdateFunc(ctx, mod)
}

func (m *moduleRepoMock) Delete(ctx context.Context, ownerID uuid.UUID, name string) error {
	return m.DeleteFunc(ctx, ownerID, name)
}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.RunInTxFunc(ctx, fn)
}
