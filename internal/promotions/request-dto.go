package promotions

import "time"

type CreatePromotionRequest struct {
	Code          string    `json:"code" binding:"required,min=3,max=50"`
	Description   string    `json:"description" binding:"max=500"`
	DiscountType  string    `json:"discount_type" binding:"required,oneof=PERCENTAGE FIXED_AMOUNT"`
	DiscountValue float64   `json:"discount_value" binding:"required,gt=0"`
	StartDate     time.Time `json:"start_date" binding:"required"`
	EndDate       time.Time `json:"end_date" binding:"required"`

	MinimumNights *int     `json:"minimum_nights" binding:"omitempty,min=1"`
	MinimumAmount *float64 `json:"minimum_amount" binding:"omitempty,gt=0"`
	MaxTotalUses  *int     `json:"max_total_uses" binding:"omitempty,min=1"`

	LimitPerPhone   bool `json:"limit_per_phone"`
	LimitPerCard    bool `json:"limit_per_card"`
	LimitPerAccount bool `json:"limit_per_account"`
	LimitPerDevice  bool `json:"limit_per_device"`
	MaxUsesPerLimit int  `json:"max_uses_per_limit" binding:"omitempty,min=1"`
}

type UpdatePromotionRequest struct {
	Description     *string    `json:"description" binding:"omitempty,max=500"`
	DiscountValue   *float64   `json:"discount_value" binding:"omitempty,gt=0"`
	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
	MinimumNights   *int       `json:"minimum_nights" binding:"omitempty,min=1"`
	MinimumAmount   *float64   `json:"minimum_amount" binding:"omitempty,gt=0"`
	MaxTotalUses    *int       `json:"max_total_uses" binding:"omitempty,min=1"`
	MaxUsesPerLimit *int       `json:"max_uses_per_limit" binding:"omitempty,min=1"`
	IsActive        *bool      `json:"is_active"`
}
