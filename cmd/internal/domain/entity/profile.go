package entity

type Profile struct {
	ID        int    `gorm:"primaryKey"`
	SubUUID   string `gorm:"uniqueIndex;not null"` // Identity-provider subject
	FullName  string `gorm:"not null"`
	Email     string `gorm:"uniqueIndex;not null"`
	IsAdmin   bool   `gorm:"not null"`
	CreatedAt int64  `gorm:"not null"`
	UpdatedAt int64  `gorm:"not null"`
}
