package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleEmployee = "EMPLOYEE"
	RoleManager  = "MANAGER"
	RoleAdmin    = "ADMIN"

	// Jatah cuti default saat user dibuat tanpa nilai eksplisit
	DefaultVacationDays = 25
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password     string    `gorm:"type:varchar(255);not null"`
	FirstName    string    `gorm:"column:first_name;type:varchar(100);not null"`
	LastName     string    `gorm:"column:last_name;type:varchar(100);not null"`
	Phone        string    `gorm:"type:varchar(30)"`
	Department   string    `gorm:"type:varchar(100);index"`
	Position     string    `gorm:"type:varchar(100)"`
	Role         string    `gorm:"type:varchar(20);not null;default:'EMPLOYEE';index"`
	VacationDays int       `gorm:"column:vacation_days;not null;default:25"`
	IsActive     bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

func ValidRole(role string) bool {
	switch role {
	case RoleEmployee, RoleManager, RoleAdmin:
		return true
	default:
		return false
	}
}
