package http

import (
	"context"
	"io"

	"moviedash/pkg/contracts/domain"
)

// DashboardServiceInterface is what the dashboard handlers need from the service layer
type DashboardServiceInterface interface {
	Render(ctx context.Context, sel domain.Selection) (domain.Dashboard, error)
	Options() domain.FilterOptions
	Report() domain.LoadReport
	Export(ctx context.Context, w io.Writer, format string, sel domain.Selection) (int, error)
}
