package promotions

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"roomly/pkg/crypto"
)

// cardDigestLength is the number of hex characters of the keyed digest
// kept in a card identifier.
const cardDigestLength = 16

// ValidationInput is the booking context a promotion is evaluated against.
// Phone, card, device and IP are optional; a dimension limit only applies
// when the corresponding evidence is present.
type ValidationInput struct {
	PromotionID       uint
	UserID            uint
	Phone             string
	CardNumber        string
	DeviceFingerprint string
	IPAddress         string
	TotalAmount       float64
	Nights            int
}

// ValidationResult reports whether a promotion may be applied. Reason is a
// user-facing message set only when OK is false.
type ValidationResult struct {
	OK        bool       `json:"ok"`
	Reason    string     `json:"reason,omitempty"`
	Promotion *Promotion `json:"promotion,omitempty"`
}

type Service interface {
	// Admin CRUD
	Create(ctx context.Context, req CreatePromotionRequest) (*Promotion, error)
	GetByID(ctx context.Context, id uint) (*Promotion, error)
	GetByCode(ctx context.Context, code string) (*Promotion, error)
	List(ctx context.Context, activeOnly bool) ([]Promotion, error)
	Update(ctx context.Context, id uint, req UpdatePromotionRequest) (*Promotion, error)
	Delete(ctx context.Context, id uint) error

	// Validation and usage
	Validate(ctx context.Context, input ValidationInput) (*ValidationResult, error)
	RecordUsage(ctx context.Context, bookingID uint, promotionID uint, input ValidationInput) error
	ComputeDiscount(promo *Promotion, basePrice float64) float64
	CardIdentifier(cardNumber string) string
	PhoneHash(phone string) (string, error)

	// Sweep side effect, also exposed for the scheduler
	DeactivateStale(ctx context.Context) (int64, error)
}

type service struct {
	repo      Repository
	encryptor *crypto.Encryptor
}

func NewService(repo Repository, encryptor *crypto.Encryptor) Service {
	return &service{
		repo:      repo,
		encryptor: encryptor,
	}
}

func (s *service) Create(ctx context.Context, req CreatePromotionRequest) (*Promotion, error) {
	if !DiscountType(req.DiscountType).IsValid() {
		return nil, fmt.Errorf("invalid discount type: %s", req.DiscountType)
	}
	if !req.EndDate.After(req.StartDate) {
		return nil, fmt.Errorf("end date must be after start date")
	}

	promo := &Promotion{
		Code:            strings.ToUpper(strings.TrimSpace(req.Code)),
		Description:     req.Description,
		DiscountType:    DiscountType(req.DiscountType),
		DiscountValue:   req.DiscountValue,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		MinimumNights:   req.MinimumNights,
		MinimumAmount:   req.MinimumAmount,
		MaxTotalUses:    req.MaxTotalUses,
		LimitPerPhone:   req.LimitPerPhone,
		LimitPerCard:    req.LimitPerCard,
		LimitPerAccount: req.LimitPerAccount,
		LimitPerDevice:  req.LimitPerDevice,
		MaxUsesPerLimit: req.MaxUsesPerLimit,
		IsActive:        true,
	}
	if promo.MaxUsesPerLimit <= 0 {
		promo.MaxUsesPerLimit = 1
	}

	if err := s.repo.Create(ctx, promo); err != nil {
		return nil, fmt.Errorf("failed to create promotion: %w", err)
	}
	return promo, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*Promotion, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByCode(ctx context.Context, code string) (*Promotion, error) {
	return s.repo.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
}

func (s *service) List(ctx context.Context, activeOnly bool) ([]Promotion, error) {
	return s.repo.GetAll(ctx, activeOnly)
}

func (s *service) Update(ctx context.Context, id uint, req UpdatePromotionRequest) (*Promotion, error) {
	updates := map[string]interface{}{}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.DiscountValue != nil {
		updates["discount_value"] = *req.DiscountValue
	}
	if req.StartDate != nil {
		updates["start_date"] = *req.StartDate
	}
	if req.EndDate != nil {
		updates["end_date"] = *req.EndDate
	}
	if req.MinimumNights != nil {
		updates["minimum_nights"] = *req.MinimumNights
	}
	if req.MinimumAmount != nil {
		updates["minimum_amount"] = *req.MinimumAmount
	}
	if req.MaxTotalUses != nil {
		updates["max_total_uses"] = *req.MaxTotalUses
	}
	if req.MaxUsesPerLimit != nil {
		updates["max_uses_per_limit"] = *req.MaxUsesPerLimit
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	return s.repo.Update(ctx, id, updates)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// Validate runs the abuse-limit check sequence against current booking
// state, short-circuiting on the first failure. Expired or exhausted
// promotions are deactivated as a side effect before the check.
func (s *service) Validate(ctx context.Context, input ValidationInput) (*ValidationResult, error) {
	// 1. Sweep stale promotions first so the lookup below sees fresh state.
	if _, err := s.DeactivateStale(ctx); err != nil {
		return nil, fmt.Errorf("failed to sweep promotions: %w", err)
	}

	// 2. Must exist and be active. A promotion the sweep just retired
	// still reports the expiry reason rather than the generic one.
	promo, err := s.repo.GetByID(ctx, input.PromotionID)
	if err != nil {
		if err == ErrPromotionNotFound {
			return reject("Invalid or inactive promotion code"), nil
		}
		return nil, err
	}
	now := time.Now().UTC()
	if !promo.IsActive {
		if now.After(promo.EndDate) {
			return reject("This promotion has expired"), nil
		}
		return reject("Invalid or inactive promotion code"), nil
	}

	// 3. Must be inside the validity window.
	if now.Before(promo.StartDate) {
		return reject("This promotion is not active yet"), nil
	}
	if now.After(promo.EndDate) {
		if err := s.repo.Deactivate(ctx, promo.ID); err != nil {
			return nil, err
		}
		return reject("This promotion has expired"), nil
	}

	// 4. Minimum nights.
	if promo.MinimumNights != nil && input.Nights < *promo.MinimumNights {
		return reject(fmt.Sprintf("This promotion requires a minimum stay of %d nights", *promo.MinimumNights)), nil
	}

	// 5. Minimum amount.
	if promo.MinimumAmount != nil && input.TotalAmount < *promo.MinimumAmount {
		return reject(fmt.Sprintf("This promotion requires a minimum booking amount of %.2f", *promo.MinimumAmount)), nil
	}

	// 6. Global usage cap.
	if promo.MaxTotalUses != nil {
		total, err := s.repo.CountUsages(ctx, promo.ID)
		if err != nil {
			return nil, err
		}
		if total >= int64(*promo.MaxTotalUses) {
			if err := s.repo.Deactivate(ctx, promo.ID); err != nil {
				return nil, err
			}
			return reject("This promotion has reached its maximum number of uses"), nil
		}
	}

	// 7. Per-phone limit.
	if promo.LimitPerPhone && input.Phone != "" {
		phoneHash, err := s.PhoneHash(input.Phone)
		if err != nil {
			return nil, err
		}
		count, err := s.repo.CountUsagesByPhoneHash(ctx, promo.ID, phoneHash)
		if err != nil {
			return nil, err
		}
		if count >= int64(promo.MaxUsesPerLimit) {
			return reject("This promotion has already been used the maximum number of times with this phone number"), nil
		}
	}

	// 8. Per-card limit.
	if promo.LimitPerCard && input.CardNumber != "" {
		cardID := s.CardIdentifier(input.CardNumber)
		count, err := s.repo.CountUsagesByCardIdentifier(ctx, promo.ID, cardID)
		if err != nil {
			return nil, err
		}
		if count >= int64(promo.MaxUsesPerLimit) {
			return reject("This promotion has already been used the maximum number of times with this payment card"), nil
		}
	}

	// 9. Per-account limit.
	if promo.LimitPerAccount {
		count, err := s.repo.CountUsagesByUser(ctx, promo.ID, input.UserID)
		if err != nil {
			return nil, err
		}
		if count >= int64(promo.MaxUsesPerLimit) {
			return reject("This promotion has already been used the maximum number of times on this account"), nil
		}
	}

	// 10. Per-device limit (fingerprint or IP, either match counts).
	if promo.LimitPerDevice && (input.DeviceFingerprint != "" || input.IPAddress != "") {
		count, err := s.repo.CountUsagesByDevice(ctx, promo.ID, input.DeviceFingerprint, input.IPAddress)
		if err != nil {
			return nil, err
		}
		if count >= int64(promo.MaxUsesPerLimit) {
			return reject("This promotion has already been used the maximum number of times from this device"), nil
		}
	}

	return &ValidationResult{OK: true, Promotion: promo}, nil
}

// RecordUsage writes usage evidence onto the booking row. This runs after
// payment succeeds; a booking that validated a promotion but never paid
// consumes nothing. The global cap is re-checked afterwards so a promotion
// that just hit its cap is deactivated immediately.
func (s *service) RecordUsage(ctx context.Context, bookingID uint, promotionID uint, input ValidationInput) error {
	evidence := UsageEvidence{
		CardIdentifier:    s.CardIdentifier(input.CardNumber),
		DeviceFingerprint: input.DeviceFingerprint,
		IPAddress:         input.IPAddress,
		UsedAt:            time.Now().UTC(),
	}

	if input.Phone != "" {
		phoneHash, err := s.PhoneHash(input.Phone)
		if err != nil {
			return err
		}
		evidence.PhoneHash = phoneHash
	}

	if err := s.repo.RecordUsage(ctx, bookingID, evidence); err != nil {
		return fmt.Errorf("failed to record promotion usage: %w", err)
	}

	promo, err := s.repo.GetByID(ctx, promotionID)
	if err != nil {
		return err
	}
	if promo.MaxTotalUses != nil {
		total, err := s.repo.CountUsages(ctx, promotionID)
		if err != nil {
			return err
		}
		if total >= int64(*promo.MaxTotalUses) {
			return s.repo.Deactivate(ctx, promotionID)
		}
	}
	return nil
}

// ComputeDiscount returns the discount amount for a base price, clamped so
// it never exceeds the base price and never goes negative.
func (s *service) ComputeDiscount(promo *Promotion, basePrice float64) float64 {
	var discount float64
	switch promo.DiscountType {
	case DiscountPercentage:
		discount = basePrice * promo.DiscountValue / 100
	case DiscountFixedAmount:
		discount = promo.DiscountValue
	}

	if discount < 0 {
		return 0
	}
	if discount > basePrice {
		return basePrice
	}
	return discount
}

// CardIdentifier derives the stored identifier for a payment card. Only the
// last four plaintext digits ever survive; the rest is a truncated keyed
// digest of the cleaned number.
func (s *service) CardIdentifier(cardNumber string) string {
	clean := cleanCardNumber(cardNumber)
	if clean == "" {
		return ""
	}

	digest := s.encryptor.Digest(clean)
	if len(digest) > cardDigestLength {
		digest = digest[:cardDigestLength]
	}

	if len(clean) >= 4 {
		return clean[len(clean)-4:] + "-" + digest
	}
	return digest
}

// PhoneHash returns the deterministic ciphertext used to match phone
// numbers in SQL equality comparisons.
func (s *service) PhoneHash(phone string) (string, error) {
	return s.encryptor.Encrypt(normalizePhone(phone))
}

func (s *service) DeactivateStale(ctx context.Context) (int64, error) {
	expired, err := s.repo.DeactivateExpired(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	exhausted, err := s.repo.DeactivateExhausted(ctx)
	if err != nil {
		return expired, err
	}
	return expired + exhausted, nil
}

func reject(reason string) *ValidationResult {
	return &ValidationResult{OK: false, Reason: reason}
}

func cleanCardNumber(cardNumber string) string {
	var b strings.Builder
	for _, r := range cardNumber {
		if r == ' ' || r == '-' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func normalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) || r == '+' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
