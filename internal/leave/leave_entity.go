package leave

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypePaid      = "PAID_LEAVE"
	TypeSick      = "SICK_LEAVE"
	TypeUnpaid    = "UNPAID_LEAVE"
	TypeMaternity = "MATERNITY_LEAVE"
	TypePaternity = "PATERNITY_LEAVE"
	TypeOther     = "OTHER"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
	StatusCanceled = "CANCELLED"
)

func ValidType(t string) bool {
	switch t {
	case TypePaid, TypeSick, TypeUnpaid, TypeMaternity, TypePaternity, TypeOther:
		return true
	}
	return false
}

type Leave struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index:idx_leaves_user_dates"`

	LeaveType string    `gorm:"type:varchar(30);not null"`
	StartDate time.Time `gorm:"type:date;not null;index:idx_leaves_user_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leaves_user_dates"`
	TotalDays int       `gorm:"type:int;not null;default:1"`
	Reason    string    `gorm:"type:text"`

	Status          string     `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_leaves_status"`
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt      *time.Time
	RejectionReason *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Leave) TableName() string {
	return "leaves"
}
