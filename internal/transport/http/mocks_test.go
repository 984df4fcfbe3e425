package http

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"moviedash/pkg/contracts/domain"
)

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Render(ctx context.Context, sel domain.Selection) (domain.Dashboard, error) {
	args := m.Called(ctx, sel)
	return args.Get(0).(domain.Dashboard), args.Error(1)
}

func (m *MockDashboardService) Options() domain.FilterOptions {
	args := m.Called()
	return args.Get(0).(domain.FilterOptions)
}

func (m *MockDashboardService) Report() domain.LoadReport {
	args := m.Called()
	return args.Get(0).(domain.LoadReport)
}

func (m *MockDashboardService) Export(ctx context.Context, w io.Writer, format string, sel domain.Selection) (int, error) {
	args := m.Called(ctx, w, format, sel)
	return args.Int(0), args.Error(1)
}
