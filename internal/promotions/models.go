package promotions

import (
	"time"
)

type DiscountType string

const (
	DiscountPercentage  DiscountType = "PERCENTAGE"
	DiscountFixedAmount DiscountType = "FIXED_AMOUNT"
)

func (d DiscountType) IsValid() bool {
	switch d {
	case DiscountPercentage, DiscountFixedAmount:
		return true
	}
	return false
}

// Promotion is a discount rule with multi-dimensional abuse limits. The
// four LimitPer* flags share a single MaxUsesPerLimit cap. Usage evidence
// is stored denormalized on the booking row, not in a usage-log table.
type Promotion struct {
	ID            uint         `json:"id" gorm:"primaryKey"`
	Code          string       `json:"code" gorm:"uniqueIndex;not null;size:50"`
	Description   string       `json:"description" gorm:"size:500"`
	DiscountType  DiscountType `json:"discount_type" gorm:"type:varchar(20);not null"`
	DiscountValue float64      `json:"discount_value" gorm:"not null;check:discount_value > 0"`
	StartDate     time.Time    `json:"start_date" gorm:"not null"`
	EndDate       time.Time    `json:"end_date" gorm:"not null"`

	MinimumNights *int     `json:"minimum_nights,omitempty"`
	MinimumAmount *float64 `json:"minimum_amount,omitempty"`
	MaxTotalUses  *int     `json:"max_total_uses,omitempty"`

	LimitPerPhone   bool `json:"limit_per_phone" gorm:"not null;default:false"`
	LimitPerCard    bool `json:"limit_per_card" gorm:"not null;default:false"`
	LimitPerAccount bool `json:"limit_per_account" gorm:"not null;default:false"`
	LimitPerDevice  bool `json:"limit_per_device" gorm:"not null;default:false"`
	MaxUsesPerLimit int  `json:"max_uses_per_limit" gorm:"not null;default:1"`

	IsActive bool `json:"is_active" gorm:"not null;default:true;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Promotion) TableName() string { return "promotions" }

// UsageEvidence is the denormalized evidence written onto a booking row
// when a promotion is consumed.
type UsageEvidence struct {
	PhoneHash         string
	CardIdentifier    string
	DeviceFingerprint string
	IPAddress         string
	UsedAt            time.Time
}
