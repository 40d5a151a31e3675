package repository

import (
	"errors"

	"shiftboard/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *DefaultProfileRepository {
	return &DefaultProfileRepository{db: db}
}

func (p *DefaultProfileRepository) FindByID(id int) (*entity.Profile, error) {
	var profile entity.Profile
	err := p.db.First(&profile, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &profile, err
}

func (p *DefaultProfileRepository) FindBySub(sub string) (*entity.Profile, error) {
	var profile entity.Profile
	err := p.db.Where("sub_uuid = ?", sub).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &profile, err
}

func (p *DefaultProfileRepository) FindByEmail(email string) (*entity.Profile, error) {
	var profile entity.Profile
	err := p.db.Where("email = ?", email).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &profile, err
}

func (p *DefaultProfileRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := p.db.Model(&entity.Profile{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

func (p *DefaultProfileRepository) FindAll() ([]*entity.Profile, error) {
	var profiles []*entity.Profile
	err := p.db.Order("created_at asc").Find(&profiles).Error
	return profiles, err
}

func (p *DefaultProfileRepository) Save(profile *entity.Profile) error {
	return p.db.Save(profile).Error
}

// Delete removes the profile together with its schedules and their
// reports in one transaction, so a member removal never leaves
// orphaned rows behind.
func (p *DefaultProfileRepository) Delete(profile *entity.Profile) error {
	return p.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("schedule_id IN (?)",
			tx.Model(&entity.Schedule{}).Select("id").Where("user_id = ?", profile.ID),
		).Delete(&entity.Report{}).Error
		if err != nil {
			return err
		}

		err = tx.Where("user_id = ?", profile.ID).Delete(&entity.Schedule{}).Error
		if err != nil {
			return err
		}

		return tx.Delete(profile).Error
	})
}
