package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"ouvidoria-ativa/internal/domain"
)

type ManifestationRepository struct {
	mock.Mock
}

func (m *ManifestationRepository) Create(ctx context.Context, manifestation *domain.Manifestation) error {
	args := m.Called(ctx, manifestation)
	return args.Error(0)
}

func (m *ManifestationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Manifestation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Manifestation), args.Error(1)
}

func (m *ManifestationRepository) GetByProtocol(ctx context.Context, protocol string) (*domain.Manifestation, error) {
	args := m.Called(ctx, protocol)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Manifestation), args.Error(1)
}

func (m *ManifestationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *ManifestationRepository) UpdateResponse(ctx context.Context, id uuid.UUID, response, notes *string, status domain.Status) error {
	args := m.Called(ctx, id, response, notes, status)
	return args.Error(0)
}

func (m *ManifestationRepository) MarkResponded(ctx context.Context, id uuid.UUID, response string) error {
	args := m.Called(ctx, id, response)
	return args.Error(0)
}

func (m *ManifestationRepository) SetInternalNotes(ctx context.Context, id uuid.UUID, notes string) error {
	args := m.Called(ctx, id, notes)
	return args.Error(0)
}

func (m *ManifestationRepository) SetSatisfaction(ctx context.Context, id uuid.UUID, rating domain.Satisfaction) error {
	args := m.Called(ctx, id, rating)
	return args.Error(0)
}

func (m *ManifestationRepository) List(ctx context.Context, filter domain.ManifestationFilter, params domain.PaginationParams) ([]domain.ManifestationListItem, int64, error) {
	args := m.Called(ctx, filter, params)
	return args.Get(0).([]domain.ManifestationListItem), args.Get(1).(int64), args.Error(2)
}

func (m *ManifestationRepository) Departments(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *ManifestationRepository) ResolutionStats(ctx context.Context, since *time.Time) (domain.ResolutionStats, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(domain.ResolutionStats), args.Error(1)
}

func (m *ManifestationRepository) CountByCategory(ctx context.Context, since *time.Time) ([]domain.CategoryCount, error) {
	args := m.Called(ctx, since)
	return args.Get(0).([]domain.CategoryCount), args.Error(1)
}

func (m *ManifestationRepository) CountByDepartment(ctx context.Context, since *time.Time, limit int) ([]domain.DepartmentCount, error) {
	args := m.Called(ctx, since, limit)
	return args.Get(0).([]domain.DepartmentCount), args.Error(1)
}

func (m *ManifestationRepository) SatisfactionCounts(ctx context.Context, since *time.Time) ([]domain.SatisfactionCount, error) {
	args := m.Called(ctx, since)
	return args.Get(0).([]domain.SatisfactionCount), args.Error(1)
}

func (m *ManifestationRepository) TimeSeries(ctx context.Context, since *time.Time, bucket string) ([]domain.TimeBucket, error) {
	args := m.Called(ctx, since, bucket)
	return args.Get(0).([]domain.TimeBucket), args.Error(1)
}
