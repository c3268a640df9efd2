package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contact is a person attached to an account.
type Contact struct {
	ID        string   `json:"id" gorm:"primaryKey;size:36"`
	FirstName string   `json:"firstName" gorm:"size:255;not null"`
	LastName  string   `json:"lastName" gorm:"size:255;not null"`
	Email     *string  `json:"email" gorm:"size:255"`
	Phone     *string  `json:"phone" gorm:"size:64"`
	Title     *string  `json:"title" gorm:"size:255"`
	AccountID *string  `json:"accountId" gorm:"size:36"`
	Account   *Account `json:"account,omitempty" gorm:"foreignKey:AccountID"`
	OwnerID   *string  `json:"ownerId" gorm:"size:36"`
	Owner     *User    `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`

	Activities []Activity `json:"activities,omitempty" gorm:"foreignKey:ContactID"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Contact) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
