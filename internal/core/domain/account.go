package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account is a company record. Ownership is optional; an unowned account has a
// NULL owner reference.
type Account struct {
	ID       string  `json:"id" gorm:"primaryKey;size:36"`
	Name     string  `json:"name" gorm:"size:255;not null"`
	Website  *string `json:"website" gorm:"size:255"`
	Industry *string `json:"industry" gorm:"size:255"`
	OwnerID  *string `json:"ownerId" gorm:"size:36"`
	Owner    *User   `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`

	Contacts   []Contact  `json:"contacts,omitempty" gorm:"foreignKey:AccountID"`
	Deals      []Deal     `json:"deals,omitempty" gorm:"foreignKey:AccountID"`
	Activities []Activity `json:"activities,omitempty" gorm:"foreignKey:AccountID"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *Account) BeforeCreate(_ *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
