package repository

import (
	"shiftboard/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *DefaultReportRepository {
	return &DefaultReportRepository{db: db}
}

func (r *DefaultReportRepository) ExistsByScheduleID(scheduleId int) (bool, error) {
	var count int64
	err := r.db.Model(&entity.Report{}).
		Where("schedule_id = ?", scheduleId).
		Count(&count).Error
	return count > 0, err
}

// FindMonthReports returns all reports whose actual start falls within
// [monthStart, monthEnd), with the owning schedule and profile attached,
// earliest first.
func (r *DefaultReportRepository) FindMonthReports(monthStart, monthEnd int64) ([]*entity.Report, error) {
	var reports []*entity.Report
	err := r.db.
		Preload("Schedule").
		Preload("Schedule.Owner").
		Where("actual_starts_at >= ?", monthStart).
		Where("actual_starts_at < ?", monthEnd).
		Order("actual_starts_at asc").
		Find(&reports).Error

	if err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *DefaultReportRepository) Save(report *entity.Report) error {
	return r.db.Save(report).Error
}
