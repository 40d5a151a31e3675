package entity

type Schedule struct {
	ID          int    `gorm:"primaryKey"`
	UserID      int    `gorm:"not null;index"` // References: profiles(id)
	StartsAt    int64  `gorm:"not null"`
	EndsAt      int64  `gorm:"not null"`
	Location    string `gorm:"not null"`
	Description string `gorm:"not null"`
	CreatedAt   int64  `gorm:"not null"`

	// Relations
	Owner  Profile `gorm:"foreignKey:UserID;references:ID"`
	Report *Report `gorm:"foreignKey:ScheduleID;references:ID"`
}
