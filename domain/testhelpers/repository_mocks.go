package testhelpers

import (
	"context"

	"lotto645/domain/entities"
	"lotto645/events"

	"github.com/stretchr/testify/mock"
)

// MockLottoResultRepository is a mock implementation of LottoResultRepository
type MockLottoResultRepository struct {
	mock.Mock
}

func (m *MockLottoResultRepository) ListAll(ctx context.Context) ([]*entities.DrawRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.DrawRecord), args.Error(1)
}

func (m *MockLottoResultRepository) ListRecent(ctx context.Context, n int) ([]*entities.DrawRecord, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.DrawRecord), args.Error(1)
}

func (m *MockLottoResultRepository) GetLatest(ctx context.Context) (*entities.DrawRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.DrawRecord), args.Error(1)
}

func (m *MockLottoResultRepository) Create(ctx context.Context, record *entities.DrawRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockLottoResultRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event events.Event) {
	m.Called(ctx, event)
}
