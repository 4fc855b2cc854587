package contactgorm

import (
	"time"

	"github.com/google/uuid"
)

// ContactModel is the GORM persistence model for contacts.
type ContactModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName   string    `gorm:"size:60;not null"`
	LastName    string    `gorm:"size:60"`
	PhoneNumber string    `gorm:"size:20;not null"`
	CreatedAt   time.Time
}

func (ContactModel) TableName() string { return "contacts" }
