package repository

import (
	"errors"

	"shiftboard/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *DefaultScheduleRepository {
	return &DefaultScheduleRepository{db: db}
}

func (s *DefaultScheduleRepository) FindByID(id int) (*entity.Schedule, error) {
	var sched entity.Schedule
	err := s.db.First(&sched, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sched, err
}

// FindByUserID returns the user's schedules with their report (if any)
// attached, earliest start first.
func (s *DefaultScheduleRepository) FindByUserID(userId int) ([]*entity.Schedule, error) {
	var scheds []*entity.Schedule
	err := s.db.
		Preload("Report").
		Where("user_id = ?", userId).
		Order("starts_at asc").
		Find(&scheds).Error
	return scheds, err
}

func (s *DefaultScheduleRepository) Save(schedule *entity.Schedule) error {
	return s.db.Save(schedule).Error
}
