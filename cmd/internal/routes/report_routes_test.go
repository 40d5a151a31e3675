package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shiftboard/cmd/internal/auth"
	"shiftboard/cmd/internal/domain/entity"
	"shiftboard/cmd/internal/service"
	"shiftboard/cmd/internal/utils/apierror"
	"shiftboard/cmd/internal/view"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReportService struct {
	lastYear  int
	lastMonth int
	apierr    apierror.ErrorResponse
}

func (f *fakeReportService) GetMonthlyReport(_ *entity.Profile, year, month int) (*service.MonthlyReportResponse, apierror.ErrorResponse) {
	if f.apierr != nil {
		return nil, f.apierr
	}
	f.lastYear, f.lastMonth = year, month
	return &service.MonthlyReportResponse{
		Year:  year,
		Month: month,
		Totals: []*service.MemberTotal{
			{MemberName: "Mika", TotalMinutes: 570, Hours: 9, Minutes: 30},
		},
	}, nil
}

func serveReports(t *testing.T, svc ReportService, target string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	renderer, err := view.NewRenderer()
	require.NoError(t, err)
	e.Renderer = renderer

	route := NewReportDefault(svc)
	e.GET("/reports", route.GetReportsPage, func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth.SetCurrentProfile(c, &entity.Profile{ID: 1, FullName: "Admin", IsAdmin: true})
			return next(c)
		}
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestGetReportsPage(t *testing.T) {
	t.Run("explicit year and month are passed through", func(t *testing.T) {
		svc := &fakeReportService{}
		rec := serveReports(t, svc, "/reports?year=2024&month=12")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 2024, svc.lastYear)
		assert.Equal(t, 12, svc.lastMonth)
		assert.Contains(t, rec.Body.String(), "9h 30m")
	})

	t.Run("missing params default to the current month", func(t *testing.T) {
		svc := &fakeReportService{}
		rec := serveReports(t, svc, "/reports")

		now := time.Now().UTC()
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, now.Year(), svc.lastYear)
		assert.Equal(t, int(now.Month()), svc.lastMonth)
	})

	t.Run("an out-of-range month is rejected", func(t *testing.T) {
		rec := serveReports(t, &fakeReportService{}, "/reports?month=13")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("a denied caller sees the error page", func(t *testing.T) {
		rec := serveReports(t, &fakeReportService{apierr: apierror.AccessDeniedError}, "/reports")
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), apierror.AccessDeniedError.Message())
	})
}
