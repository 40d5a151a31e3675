package service

import (
	"time"

	"shiftboard/cmd/internal/domain/entity"
	"shiftboard/cmd/internal/utils"
	"shiftboard/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type ScheduleRepository interface {
	FindByID(id int) (*entity.Schedule, error)
	FindByUserID(userId int) ([]*entity.Schedule, error)
	Save(schedule *entity.Schedule) error
}

type ReportRepository interface {
	ExistsByScheduleID(scheduleId int) (bool, error)
	FindMonthReports(monthStart, monthEnd int64) ([]*entity.Report, error)
	Save(report *entity.Report) error
}

type CreateScheduleRequest struct {
	StartsAt    string `form:"starts_at" validate:"required,iso8601"`
	EndsAt      string `form:"ends_at" validate:"required,iso8601"`
	Location    string `form:"location" validate:"required,max=128"`
	Description string `form:"description" validate:"required,max=1024"`
}

type SubmitReportRequest struct {
	ScheduleID     int    `form:"schedule_id"`
	ActualStartsAt string `form:"actual_starts_at" validate:"required,iso8601"`
	ActualEndsAt   string `form:"actual_ends_at" validate:"required,iso8601"`
	BreakMinutes   int    `form:"break_time" validate:"min=0"`
	Description    string `form:"actual_description" validate:"required,max=1024"`
	Reflection     string `form:"reflection" validate:"required,max=2048"`
}

type ReportView struct {
	ActualStartsAt string
	ActualEndsAt   string
	BreakMinutes   int
	WorkedMinutes  int
	Description    string
	Reflection     string
}

type ScheduleEntry struct {
	ID          int
	StartsAt    string
	EndsAt      string
	Location    string
	Description string

	// Reportable is true only once the schedule has ended and no
	// report was filed yet.
	Reportable bool
	Report     *ReportView
}

type WeekDay struct {
	Date    string
	Weekday string
	Entries []*ScheduleEntry
}

type WeekResponse struct {
	Days []*WeekDay
}

type DefaultScheduleService struct {
	ScheduleRepo ScheduleRepository
	ReportRepo   ReportRepository
	Validate     *validator.Validate
}

func NewScheduleService(schedRepo ScheduleRepository, reportRepo ReportRepository, validate *validator.Validate) *DefaultScheduleService {
	return &DefaultScheduleService{ScheduleRepo: schedRepo, ReportRepo: reportRepo, Validate: validate}
}

// GetWeek partitions the caller's schedules over the Monday-start week
// containing nowMillis. Schedules outside the displayed week are left
// out entirely.
func (s *DefaultScheduleService) GetWeek(caller *entity.Profile, nowMillis int64) (*WeekResponse, apierror.ErrorResponse) {
	scheds, err := s.ScheduleRepo.FindByUserID(caller.ID)
	if err != nil {
		log.Errorf("failed to find schedules for user %d: %v", caller.ID, err)
		return nil, apierror.InternalServerError
	}

	days := make([]*WeekDay, 0, 7)
	for _, day := range utils.WeekOf(nowMillis) {
		entries := make([]*ScheduleEntry, 0)
		for _, sched := range scheds {
			if utils.SameDay(sched.StartsAt, day) {
				entries = append(entries, toScheduleEntry(sched, nowMillis))
			}
		}
		days = append(days, &WeekDay{
			Date:    day.Format("2006-01-02"),
			Weekday: day.Weekday().String(),
			Entries: entries,
		})
	}
	return &WeekResponse{Days: days}, nil
}

func (s *DefaultScheduleService) CreateSchedule(req *CreateScheduleRequest, caller *entity.Profile) apierror.ErrorResponse {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return apierror.FromValidationError(valerr)
	}

	begin, err := utils.FromEpoch(req.StartsAt)
	if err != nil {
		return apierror.MalformedFormError
	}

	end, err := utils.FromEpoch(req.EndsAt)
	if err != nil {
		return apierror.MalformedFormError
	}

	if end <= begin {
		return apierror.EndBeforeStartError
	}

	schedule := &entity.Schedule{
		UserID:      caller.ID,
		StartsAt:    begin,
		EndsAt:      end,
		Location:    req.Location,
		Description: req.Description,
		CreatedAt:   utils.NowUTC(),
	}

	err = s.ScheduleRepo.Save(schedule)
	if err != nil {
		log.Errorf("failed to save schedule for user %d: %v", caller.ID, err)
		return apierror.RegistrationFailedError
	}
	return nil
}

// SubmitReport files the actual-outcome record for one of the
// caller's own, already-ended schedules. Ownership, the end-time
// check and the one-report-per-schedule rule are all enforced here,
// not left to the form.
func (s *DefaultScheduleService) SubmitReport(req *SubmitReportRequest, caller *entity.Profile) apierror.ErrorResponse {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return apierror.FromValidationError(valerr)
	}

	begin, err := utils.FromEpoch(req.ActualStartsAt)
	if err != nil {
		return apierror.MalformedFormError
	}

	end, err := utils.FromEpoch(req.ActualEndsAt)
	if err != nil {
		return apierror.MalformedFormError
	}

	if end <= begin {
		return apierror.EndBeforeStartError
	}

	elapsed := (end - begin) / time.Minute.Milliseconds()
	if int64(req.BreakMinutes) > elapsed {
		return apierror.BreakTooLongError
	}

	sched, err := s.ScheduleRepo.FindByID(req.ScheduleID)
	if err != nil {
		log.Errorf("failed to fetch schedule %d: %v", req.ScheduleID, err)
		return apierror.InternalServerError
	}

	if sched == nil || sched.UserID != caller.ID {
		return apierror.ScheduleNotOwnedError
	}

	if sched.EndsAt > utils.NowUTC() {
		return apierror.ScheduleNotEndedError
	}

	exists, err := s.ReportRepo.ExistsByScheduleID(sched.ID)
	if err != nil {
		log.Errorf("failed to check for existing report on schedule %d: %v", sched.ID, err)
		return apierror.InternalServerError
	}

	if exists {
		return apierror.ReportExistsError
	}

	report := &entity.Report{
		ScheduleID:     sched.ID,
		ActualStartsAt: begin,
		ActualEndsAt:   end,
		BreakMinutes:   req.BreakMinutes,
		Description:    req.Description,
		Reflection:     req.Reflection,
		CreatedAt:      utils.NowUTC(),
	}

	err = s.ReportRepo.Save(report)
	if err != nil {
		log.Errorf("failed to save report for schedule %d: %v", sched.ID, err)
		return apierror.ReportFailedError
	}
	return nil
}

func toScheduleEntry(sched *entity.Schedule, nowMillis int64) *ScheduleEntry {
	entry := &ScheduleEntry{
		ID:          sched.ID,
		StartsAt:    utils.FormatEpoch(sched.StartsAt),
		EndsAt:      utils.FormatEpoch(sched.EndsAt),
		Location:    sched.Location,
		Description: sched.Description,
		Reportable:  nowMillis > sched.EndsAt && sched.Report == nil,
	}

	if sched.Report != nil {
		entry.Report = toReportView(sched.Report)
	}
	return entry
}

func toReportView(report *entity.Report) *ReportView {
	return &ReportView{
		ActualStartsAt: utils.FormatEpoch(report.ActualStartsAt),
		ActualEndsAt:   utils.FormatEpoch(report.ActualEndsAt),
		BreakMinutes:   report.BreakMinutes,
		WorkedMinutes:  utils.WorkedMinutes(report.ActualStartsAt, report.ActualEndsAt, report.BreakMinutes),
		Description:    report.Description,
		Reflection:     report.Reflection,
	}
}
