package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityType classifies an activity record.
type ActivityType string

const (
	ActivityNote    ActivityType = "NOTE"
	ActivityTask    ActivityType = "TASK"
	ActivityCall    ActivityType = "CALL"
	ActivityMeeting ActivityType = "MEETING"
)

// ValidActivityType reports whether t is one of the enumerated types.
func ValidActivityType(t string) bool {
	switch ActivityType(t) {
	case ActivityNote, ActivityTask, ActivityCall, ActivityMeeting:
		return true
	}
	return false
}

// Activity is a note, task, call or meeting, optionally linked to an owner,
// deal, contact and account.
type Activity struct {
	ID        string       `json:"id" gorm:"primaryKey;size:36"`
	Type      ActivityType `json:"type" gorm:"size:20;not null"`
	Subject   string       `json:"subject" gorm:"size:255;not null"`
	Body      *string      `json:"body"`
	DueAt     *time.Time   `json:"dueAt"`
	Completed bool         `json:"completed" gorm:"not null;default:false"`
	OwnerID   *string      `json:"ownerId" gorm:"size:36"`
	Owner     *User        `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	DealID    *string      `json:"dealId" gorm:"size:36"`
	Deal      *Deal        `json:"deal,omitempty" gorm:"foreignKey:DealID"`
	ContactID *string      `json:"contactId" gorm:"size:36"`
	Contact   *Contact     `json:"contact,omitempty" gorm:"foreignKey:ContactID"`
	AccountID *string      `json:"accountId" gorm:"size:36"`
	Account   *Account     `json:"account,omitempty" gorm:"foreignKey:AccountID"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *Activity) BeforeCreate(_ *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
