package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"moviedash/internal/dashboard"
	apierrors "moviedash/internal/errors"
	"moviedash/internal/services"
	"moviedash/internal/shared/testutil"
	"moviedash/pkg/contracts/domain"
)

func newFixtureService(t *testing.T) *services.DashboardService {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	svc, err := services.NewDashboardService(testutil.BaseTable(), dashboard.DefaultOptions(), logger)
	require.NoError(t, err)
	return svc
}

func newAPIRouter(t *testing.T, svc DashboardServiceInterface) chi.Router {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	h := NewDashboardHandler(svc, nil, logger, apierrors.NewErrorHandler(logger, false))
	r := chi.NewRouter()
	r.Mount("/api", h.Routes())
	return r
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeDashboard(t *testing.T, rec *httptest.ResponseRecorder) domain.Dashboard {
	t.Helper()
	var d domain.Dashboard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
	return d
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestDashboardHandler_GetDashboard(t *testing.T) {
	router := newAPIRouter(t, newFixtureService(t))

	tests := []struct {
		name     string
		query    string
		wantRows int
	}{
		{name: "no parameters selects all", query: "", wantRows: 5},
		{name: "single genre", query: "?genre=Drama", wantRows: 2},
		{name: "repeated genre", query: "?genre=Drama&genre=Action", wantRows: 5},
		{name: "comma list", query: "?genre=Action&rating=PG,R", wantRows: 3},
		{name: "genre and rating", query: "?genre=Action&rating=PG", wantRows: 2},
		{name: "empty genre selects none", query: "?genre=", wantRows: 0},
		{name: "unknown genre", query: "?genre=Western", wantRows: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/dashboard"+tt.query, nil))

			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
			d := decodeDashboard(t, rec)
			assert.Equal(t, tt.wantRows, d.RowCount)
			assert.Equal(t, strconv.Itoa(d.RowCount), rec.Header().Get("X-Row-Count"))
			assert.Len(t, d.Views, len(dashboard.ViewOrder))
			assert.Equal(t, []string{"Action", "Drama"}, d.Options.Genres)
		})
	}
}

func TestDashboardHandler_PostDashboard(t *testing.T) {
	router := newAPIRouter(t, newFixtureService(t))

	tests := []struct {
		name        string
		contentType string
		body        string
		wantStatus  int
		wantRows    int
	}{
		{name: "empty object selects all", contentType: "application/json", body: `{}`, wantStatus: http.StatusOK, wantRows: 5},
		{name: "explicit selection", contentType: "application/json", body: `{"genres":["Drama"],"ratings":["R"]}`, wantStatus: http.StatusOK, wantRows: 1},
		{name: "empty list selects none", contentType: "application/json", body: `{"genres":[]}`, wantStatus: http.StatusOK, wantRows: 0},
		{name: "charset parameter accepted", contentType: "application/json; charset=utf-8", body: `{}`, wantStatus: http.StatusOK, wantRows: 5},
		{name: "unknown field", contentType: "application/json", body: `{"genre":["Drama"]}`, wantStatus: http.StatusBadRequest},
		{name: "malformed body", contentType: "application/json", body: `{"genres":`, wantStatus: http.StatusBadRequest},
		{name: "empty body", contentType: "application/json", body: ``, wantStatus: http.StatusBadRequest},
		{name: "wrong content type", contentType: "text/plain", body: `{}`, wantStatus: http.StatusUnsupportedMediaType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/dashboard", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			rec := serve(router, req)

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantStatus != http.StatusOK {
				assert.Contains(t, rec.Header().Get("Content-Type"), "json")
				return
			}
			assert.Equal(t, tt.wantRows, decodeDashboard(t, rec).RowCount)
		})
	}
}

func TestDashboardHandler_OptionsAndReport(t *testing.T) {
	router := newAPIRouter(t, newFixtureService(t))

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/options", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var opts domain.FilterOptions
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &opts))
	assert.Equal(t, []string{"Action", "Drama"}, opts.Genres)
	assert.Equal(t, []string{"PG", "R"}, opts.Ratings)

	rec = serve(router, httptest.NewRequest(http.MethodGet, "/api/report", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var report domain.LoadReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 5, report.CleanRows)
	assert.Equal(t, 1, report.NonFiniteROI)
}

func TestDashboardHandler_ExportCSV(t *testing.T) {
	router := newAPIRouter(t, newFixtureService(t))

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/export/csv?genre=Drama", nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="movies_filtered.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "2", rec.Header().Get("X-Row-Count"))

	body := strings.TrimPrefix(rec.Body.String(), "\ufeff")
	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "name"))
	assert.Contains(t, lines[1], "Bravo")
	assert.Contains(t, lines[2], "Charlie")
}

func TestDashboardHandler_ExportXLSX(t *testing.T) {
	router := newAPIRouter(t, newFixtureService(t))

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/export/XLSX", nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, `attachment; filename="movies_filtered.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "5", rec.Header().Get("X-Row-Count"))

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	assert.Len(t, rows, 6)
}

func TestDashboardHandler_ExportUnsupportedFormat(t *testing.T) {
	router := newAPIRouter(t, newFixtureService(t))

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/export/pdf", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeProblem(t, rec)
	assert.Equal(t, apierrors.TypeUnsupportedFormat, body["type"])
	assert.Empty(t, rec.Header().Get("Content-Disposition"))
}

func TestDashboardHandler_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "invalid selection", err: services.ErrInvalidSelection, wantStatus: http.StatusBadRequest},
		{name: "no base table", err: services.ErrNoBaseTable, wantStatus: http.StatusServiceUnavailable},
		{name: "unavailable", err: services.ErrServiceUnavailable, wantStatus: http.StatusServiceUnavailable},
		{name: "deadline", err: context.DeadlineExceeded, wantStatus: http.StatusGatewayTimeout},
		{name: "unexpected", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockDashboardService)
			svc.On("Render", mock.Anything, mock.Anything).Return(domain.Dashboard{}, tt.err)
			router := newAPIRouter(t, svc)

			rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeProblem(t, rec)
			assert.EqualValues(t, tt.wantStatus, body["status"])
			svc.AssertExpectations(t)
		})
	}
}

func TestDashboardHandler_ExportFailure(t *testing.T) {
	svc := new(MockDashboardService)
	svc.On("Export", mock.Anything, mock.Anything, "csv", mock.Anything).
		Run(func(args mock.Arguments) {
			_, _ = args.Get(1).(*bytes.Buffer).WriteString("name,rating\npartial")
		}).
		Return(0, errors.New("disk full"))
	router := newAPIRouter(t, svc)

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/export/csv", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, rec.Header().Get("Content-Disposition"))
	assert.NotContains(t, rec.Body.String(), "partial")
	assert.Equal(t, apierrors.TypeExportFailed, decodeProblem(t, rec)["type"])
}

func TestDashboardHandler_SelectionPassedThrough(t *testing.T) {
	svc := new(MockDashboardService)
	want := domain.Selection{Genres: []string{}, Ratings: []string{"PG", "R"}}
	svc.On("Render", mock.Anything, want).Return(domain.Dashboard{}, nil)
	router := newAPIRouter(t, svc)

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/dashboard?genre=&rating=PG&rating=R", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}
