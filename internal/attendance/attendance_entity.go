package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPresent = "PRESENT"
	StatusAbsent  = "ABSENT"
	StatusLate    = "LATE"
	StatusHalfDay = "HALF_DAY"
	StatusRemote  = "REMOTE"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate, StatusHalfDay, StatusRemote:
		return true
	}
	return false
}

// Attendance menyimpan satu baris kehadiran per user per tanggal.
type Attendance struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_user_date"`
	Date         time.Time  `gorm:"type:date;not null;uniqueIndex:idx_attendance_user_date"`
	CheckInTime  *time.Time `gorm:""`
	CheckOutTime *time.Time `gorm:""`
	Status       string     `gorm:"type:varchar(20);not null;default:'PRESENT'"`
	Notes        string     `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Attendance) TableName() string {
	return "attendances"
}
