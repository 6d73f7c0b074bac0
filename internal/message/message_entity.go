package message

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SenderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	RecipientID uuid.UUID `gorm:"type:uuid;not null;index:idx_messages_recipient_read"`

	Subject string `gorm:"type:varchar(200)"`
	Content string `gorm:"type:text;not null"`

	IsRead bool       `gorm:"not null;default:false;index:idx_messages_recipient_read"`
	ReadAt *time.Time

	CreatedAt time.Time
}

func (Message) TableName() string {
	return "messages"
}
