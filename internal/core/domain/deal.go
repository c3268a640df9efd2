package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DealStage represents the pipeline stage of a deal.
type DealStage string

const (
	StageNew         DealStage = "NEW"
	StageProspecting DealStage = "PROSPECTING"
	StageQualified   DealStage = "QUALIFIED"
	StageProposal    DealStage = "PROPOSAL"
	StageWon         DealStage = "WON"
	StageLost        DealStage = "LOST"
)

// DealStages lists the valid pipeline stages in order.
var DealStages = []DealStage{StageNew, StageProspecting, StageQualified, StageProposal, StageWon, StageLost}

// ValidDealStage reports whether s is one of the enumerated stages.
func ValidDealStage(s string) bool {
	for _, stage := range DealStages {
		if DealStage(s) == stage {
			return true
		}
	}
	return false
}

// Deal is a revenue opportunity on an account.
type Deal struct {
	ID        string     `json:"id" gorm:"primaryKey;size:36"`
	Name      string     `json:"name" gorm:"size:255;not null"`
	Amount    float64    `json:"amount" gorm:"not null"`
	Stage     DealStage  `json:"stage" gorm:"size:20;not null"`
	CloseDate *time.Time `json:"closeDate"`
	AccountID *string    `json:"accountId" gorm:"size:36"`
	Account   *Account   `json:"account,omitempty" gorm:"foreignKey:AccountID"`
	OwnerID   *string    `json:"ownerId" gorm:"size:36"`
	Owner     *User      `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`

	Activities []Activity `json:"activities,omitempty" gorm:"foreignKey:DealID"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (d *Deal) BeforeCreate(_ *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
