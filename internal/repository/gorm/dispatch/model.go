package dispatchgorm

import (
	"time"

	"github.com/google/uuid"
)

// RecordModel is the GORM persistence model for dispatch records.
// It maps directly to the "dispatch_records" table in Postgres.
// VerificationSteps is stored as a newline-joined text column; the mapper
// splits it back out.
type RecordModel struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	ContactName       string    `gorm:"size:120;not null"`
	PhoneNumber       string    `gorm:"size:20;not null"`
	Body              string    `gorm:"size:1600;not null"`
	Timestamp         time.Time `gorm:"not null;index"`
	Status            string    `gorm:"size:25;not null"`
	ProviderMessageID string    `gorm:"size:100;index"`
	Error             string    `gorm:"type:text"`
	VerificationSteps string    `gorm:"type:text"`
}

// TableName pins the table name so renaming the struct never migrates data away.
func (RecordModel) TableName() string { return "dispatch_records" }
