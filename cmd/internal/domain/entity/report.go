package entity

type Report struct {
	ID             int    `gorm:"primaryKey"`
	ScheduleID     int    `gorm:"uniqueIndex;not null"` // References: schedules(id), at most one report each
	ActualStartsAt int64  `gorm:"not null"`
	ActualEndsAt   int64  `gorm:"not null"`
	BreakMinutes   int    `gorm:"not null"`
	Description    string `gorm:"not null"`
	Reflection     string `gorm:"not null"`
	CreatedAt      int64  `gorm:"not null"`

	// Relations
	Schedule Schedule `gorm:"foreignKey:ScheduleID;references:ID"`
}
