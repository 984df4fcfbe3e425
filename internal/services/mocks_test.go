package services

import (
	"github.com/stretchr/testify/mock"

	"moviedash/pkg/contracts/domain"
)

// MockDataSource is a mock for the DataSource interface
type MockDataSource struct {
	mock.Mock
}

func (m *MockDataSource) RowCount() int {
	args := m.Called()
	return args.Int(0)
}

func (m *MockDataSource) Report() domain.LoadReport {
	args := m.Called()
	return args.Get(0).(domain.LoadReport)
}

// MockSessionCounter is a mock for the SessionCounter interface
type MockSessionCounter struct {
	mock.Mock
}

func (m *MockSessionCounter) SessionCount() int {
	args := m.Called()
	return args.Int(0)
}
