package service

import (
	"shiftboard/cmd/internal/domain/entity"
	"shiftboard/cmd/internal/utils"
	"shiftboard/cmd/internal/utils/apierror"

	"github.com/labstack/gommon/log"
)

type MonthlyRow struct {
	MemberName     string
	ActualStartsAt string
	ActualEndsAt   string
	BreakMinutes   int
	Hours          int
	Minutes        int
}

type MemberTotal struct {
	MemberName   string
	TotalMinutes int
	Hours        int
	Minutes      int
}

type MonthlyReportResponse struct {
	Year   int
	Month  int
	Rows   []*MonthlyRow
	Totals []*MemberTotal
}

type DefaultReportService struct {
	ReportRepo ReportRepository
}

func NewReportService(reportRepo ReportRepository) *DefaultReportService {
	return &DefaultReportService{ReportRepo: reportRepo}
}

// GetMonthlyReport aggregates every member's reports for one calendar
// month. Worked minutes are always derived, never stored.
func (r *DefaultReportService) GetMonthlyReport(caller *entity.Profile, year, month int) (*MonthlyReportResponse, apierror.ErrorResponse) {
	if !caller.IsAdmin {
		return nil, apierror.AccessDeniedError
	}

	monthStart, monthEnd := utils.MonthRange(year, month)
	reports, err := r.ReportRepo.FindMonthReports(monthStart, monthEnd)
	if err != nil {
		log.Errorf("failed to fetch reports for %04d-%02d: %v", year, month, err)
		return nil, apierror.InternalServerError
	}

	resp := &MonthlyReportResponse{
		Year:   year,
		Month:  month,
		Rows:   make([]*MonthlyRow, 0, len(reports)),
		Totals: make([]*MemberTotal, 0),
	}

	totalsByUser := make(map[int]*MemberTotal)
	for _, report := range reports {
		worked := utils.WorkedMinutes(report.ActualStartsAt, report.ActualEndsAt, report.BreakMinutes)
		owner := report.Schedule.Owner

		resp.Rows = append(resp.Rows, &MonthlyRow{
			MemberName:     owner.FullName,
			ActualStartsAt: utils.FormatEpoch(report.ActualStartsAt),
			ActualEndsAt:   utils.FormatEpoch(report.ActualEndsAt),
			BreakMinutes:   report.BreakMinutes,
			Hours:          worked / 60,
			Minutes:        worked % 60,
		})

		total, ok := totalsByUser[owner.ID]
		if !ok {
			total = &MemberTotal{MemberName: owner.FullName}
			totalsByUser[owner.ID] = total
			resp.Totals = append(resp.Totals, total)
		}
		total.TotalMinutes += worked
	}

	for _, total := range resp.Totals {
		total.Hours = total.TotalMinutes / 60
		total.Minutes = total.TotalMinutes % 60
	}
	return resp, nil
}
