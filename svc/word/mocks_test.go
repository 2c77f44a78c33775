package word_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/progenglish/svc/word"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Create(ctx context.Context, w *word.Word) error {
	return m.Called(ctx, w).Error(0)
}

func (m *MockStorage) Get(ctx context.Context, id int64) (*word.Word, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*word.Word), args.Error(1)
}

func (m *MockStorage) GetByText(ctx context.Context, text string) (*word.Word, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*word.Word), args.Error(1)
}

func (m *MockStorage) List(ctx context.Context, f word.Filter, limit, offset int) ([]word.Word, error) {
	args := m.Called(ctx, f, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]word.Word), args.Error(1)
}

func (m *MockStorage) Count(ctx context.Context, f word.Filter) (int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) Update(ctx context.Context, w *word.Word) error {
	return m.Called(ctx, w).Error(0)
}

func (m *MockStorage) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockStorage) Random(ctx context.Context) (*word.Word, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*word.Word), args.Error(1)
}
