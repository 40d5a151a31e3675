package service

import (
	"testing"
	"time"

	"shiftboard/cmd/internal/domain/entity"
	"shiftboard/cmd/internal/utils/apierror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportAt(t *testing.T, owner *entity.Profile, start, end string, breakMinutes int) *entity.Report {
	t.Helper()
	parse := func(value string) int64 {
		ts, err := time.Parse(time.RFC3339, value)
		require.NoError(t, err)
		return ts.UnixMilli()
	}
	return &entity.Report{
		ActualStartsAt: parse(start),
		ActualEndsAt:   parse(end),
		BreakMinutes:   breakMinutes,
		Schedule:       entity.Schedule{UserID: owner.ID, Owner: *owner},
	}
}

func TestGetMonthlyReport(t *testing.T) {
	admin := &entity.Profile{ID: 1, FullName: "Admin", IsAdmin: true}
	mika := &entity.Profile{ID: 2, FullName: "Mika"}
	rei := &entity.Profile{ID: 3, FullName: "Rei"}

	t.Run("a non-admin is denied", func(t *testing.T) {
		svc := NewReportService(&fakeReportRepo{})
		_, apierr := svc.GetMonthlyReport(mika, 2024, 5)
		assert.Equal(t, apierror.AccessDeniedError, apierr)
	})

	t.Run("totals accumulate per member", func(t *testing.T) {
		repo := &fakeReportRepo{}
		require.NoError(t, repo.Save(reportAt(t, mika, "2024-05-13T09:00:00Z", "2024-05-13T17:00:00Z", 60)))
		require.NoError(t, repo.Save(reportAt(t, mika, "2024-05-14T10:00:00Z", "2024-05-14T12:30:00Z", 0)))
		require.NoError(t, repo.Save(reportAt(t, rei, "2024-05-20T08:00:00Z", "2024-05-20T10:00:00Z", 0)))

		svc := NewReportService(repo)
		resp, apierr := svc.GetMonthlyReport(admin, 2024, 5)
		require.Nil(t, apierr)

		require.Len(t, resp.Rows, 3)
		assert.Equal(t, 7, resp.Rows[0].Hours)
		assert.Equal(t, 0, resp.Rows[0].Minutes)
		assert.Equal(t, 2, resp.Rows[1].Hours)
		assert.Equal(t, 30, resp.Rows[1].Minutes)

		require.Len(t, resp.Totals, 2)
		assert.Equal(t, "Mika", resp.Totals[0].MemberName)
		assert.Equal(t, 570, resp.Totals[0].TotalMinutes)
		assert.Equal(t, 9, resp.Totals[0].Hours)
		assert.Equal(t, 30, resp.Totals[0].Minutes)
		assert.Equal(t, "Rei", resp.Totals[1].MemberName)
		assert.Equal(t, 120, resp.Totals[1].TotalMinutes)
	})

	t.Run("only the requested month is included", func(t *testing.T) {
		repo := &fakeReportRepo{}
		require.NoError(t, repo.Save(reportAt(t, mika, "2024-11-30T23:00:00Z", "2024-12-01T07:00:00Z", 0)))
		require.NoError(t, repo.Save(reportAt(t, mika, "2024-12-01T00:00:00Z", "2024-12-01T04:00:00Z", 0)))
		require.NoError(t, repo.Save(reportAt(t, mika, "2024-12-31T23:59:00Z", "2025-01-01T06:00:00Z", 0)))
		require.NoError(t, repo.Save(reportAt(t, mika, "2025-01-01T00:00:00Z", "2025-01-01T08:00:00Z", 0)))

		svc := NewReportService(repo)
		resp, apierr := svc.GetMonthlyReport(admin, 2024, 12)
		require.Nil(t, apierr)
		assert.Len(t, resp.Rows, 2, "december selects [2024-12-01, 2025-01-01)")
	})

	t.Run("an empty month renders an empty report", func(t *testing.T) {
		svc := NewReportService(&fakeReportRepo{})
		resp, apierr := svc.GetMonthlyReport(admin, 2024, 5)
		require.Nil(t, apierr)
		assert.Empty(t, resp.Rows)
		assert.Empty(t, resp.Totals)
	})
}
