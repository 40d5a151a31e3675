package routes

import (
	"net/http"
	"strconv"
	"time"

	"shiftboard/cmd/internal/auth"
	"shiftboard/cmd/internal/domain/entity"
	"shiftboard/cmd/internal/service"
	"shiftboard/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type ReportService interface {
	GetMonthlyReport(caller *entity.Profile, year, month int) (*service.MonthlyReportResponse, apierror.ErrorResponse)
}

type DefaultReportRoute struct {
	ReportService ReportService
}

func NewReportDefault(reportService ReportService) *DefaultReportRoute {
	return &DefaultReportRoute{ReportService: reportService}
}

// GetReportsPage renders the admin's monthly work-hour aggregation.
// Optional year/month query params default to the current month.
func (r *DefaultReportRoute) GetReportsPage(c echo.Context) error {
	now := time.Now().UTC()
	year := queryInt(c, "year", now.Year())
	month := queryInt(c, "month", int(now.Month()))

	if month < 1 || month > 12 {
		apierr := apierror.NewSimple(400, "Month must be between 1 and 12")
		return c.Render(apierr.Code(), "error.html", map[string]any{
			"Message": apierr.Message(),
		})
	}

	report, apierr := r.ReportService.GetMonthlyReport(auth.CurrentProfile(c), year, month)
	if apierr != nil {
		return c.Render(apierr.Code(), "error.html", map[string]any{
			"Message": apierr.Message(),
		})
	}

	return c.Render(http.StatusOK, "reports.html", map[string]any{
		"Profile": auth.CurrentProfile(c),
		"Report":  report,
		"CSRF":    c.Get("csrf"),
	})
}

func queryInt(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
