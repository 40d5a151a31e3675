package routes

import (
	"net/http"

	"shiftboard/cmd/internal/auth"
	"shiftboard/cmd/internal/domain/entity"
	"shiftboard/cmd/internal/service"
	"shiftboard/cmd/internal/utils"
	"shiftboard/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type ScheduleService interface {
	GetWeek(caller *entity.Profile, nowMillis int64) (*service.WeekResponse, apierror.ErrorResponse)
	CreateSchedule(req *service.CreateScheduleRequest, caller *entity.Profile) apierror.ErrorResponse
	SubmitReport(req *service.SubmitReportRequest, caller *entity.Profile) apierror.ErrorResponse
}

type DefaultScheduleRoute struct {
	ScheduleService ScheduleService
}

func NewScheduleDefault(schedService ScheduleService) *DefaultScheduleRoute {
	return &DefaultScheduleRoute{ScheduleService: schedService}
}

// GetSchedulePage renders the caller's current week.
func (s *DefaultScheduleRoute) GetSchedulePage(c echo.Context) error {
	return s.renderPage(c, http.StatusOK, nil)
}

// PostSchedulePage dispatches the form by its intent field: "create"
// registers a planned schedule, "report" files the actual outcome.
func (s *DefaultScheduleRoute) PostSchedulePage(c echo.Context) error {
	caller := auth.CurrentProfile(c)

	switch c.FormValue("intent") {
	case "create":
		var req service.CreateScheduleRequest
		if err := c.Bind(&req); err != nil {
			return s.renderPage(c, 400, apierror.MalformedFormError)
		}

		if apierr := s.ScheduleService.CreateSchedule(&req, caller); apierr != nil {
			return s.renderPage(c, apierr.Code(), apierr)
		}

	case "report":
		var req service.SubmitReportRequest
		if err := c.Bind(&req); err != nil {
			return s.renderPage(c, 400, apierror.MalformedFormError)
		}

		if apierr := s.ScheduleService.SubmitReport(&req, caller); apierr != nil {
			return s.renderPage(c, apierr.Code(), apierr)
		}

	default:
		return s.renderPage(c, 400, apierror.UnknownIntentError)
	}

	return c.Redirect(http.StatusSeeOther, "/")
}

func (s *DefaultScheduleRoute) renderPage(c echo.Context, status int, apierr apierror.ErrorResponse) error {
	caller := auth.CurrentProfile(c)

	week, weekErr := s.ScheduleService.GetWeek(caller, utils.NowUTC())
	if weekErr != nil {
		return c.Render(weekErr.Code(), "error.html", map[string]any{
			"Message": weekErr.Message(),
		})
	}

	data := map[string]any{
		"Profile": caller,
		"Week":    week,
		"CSRF":    c.Get("csrf"),
	}
	if apierr != nil {
		data["Flash"] = apierr.Message()
		data["Errors"] = apierr.Fields()
	}
	return c.Render(status, "schedule.html", data)
}
