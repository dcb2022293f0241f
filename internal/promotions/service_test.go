package promotions_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"roomly/internal/bookings"
	"roomly/internal/promotions"
	"roomly/pkg/crypto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testKey = "0123456789abcdef0123456789abcdef"

func setupService(t *testing.T) (promotions.Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&promotions.Promotion{}, &bookings.Booking{}))

	encryptor, err := crypto.NewEncryptor(testKey)
	require.NoError(t, err)

	return promotions.NewService(promotions.NewRepository(db), encryptor), db
}

func activePromo(mutate func(*promotions.Promotion)) *promotions.Promotion {
	now := time.Now().UTC()
	promo := &promotions.Promotion{
		Code:            "SAVE10",
		DiscountType:    promotions.DiscountPercentage,
		DiscountValue:   10,
		StartDate:       now.AddDate(0, 0, -7),
		EndDate:         now.AddDate(0, 0, 7),
		MaxUsesPerLimit: 1,
		IsActive:        true,
	}
	if mutate != nil {
		mutate(promo)
	}
	return promo
}

// usedBooking inserts a paid booking that consumed the promotion, with
// the given evidence columns.
func usedBooking(t *testing.T, db *gorm.DB, promoID uint, userID uint, mutate func(*bookings.Booking)) {
	t.Helper()
	now := time.Now().UTC()
	booking := bookings.Booking{
		UserID:       userID,
		RoomID:       1,
		CheckInDate:  now.AddDate(0, 0, 1),
		CheckOutDate: now.AddDate(0, 0, 3),
		Nights:       2,
		BasePrice:    200,
		TotalPrice:   180,
		Status:       bookings.StatusConfirmed,
		PromotionID:  &promoID,
		PromoUsedAt:  &now,
		QRToken:      uuid.NewString(),
	}
	if mutate != nil {
		mutate(&booking)
	}
	require.NoError(t, db.Create(&booking).Error)
}

func validate(t *testing.T, svc promotions.Service, input promotions.ValidationInput) *promotions.ValidationResult {
	t.Helper()
	result, err := svc.Validate(context.Background(), input)
	require.NoError(t, err)
	return result
}

func TestValidate_UnknownPromotion(t *testing.T) {
	svc, _ := setupService(t)

	result := validate(t, svc, promotions.ValidationInput{PromotionID: 999, Nights: 2, TotalAmount: 100})
	assert.False(t, result.OK)
	assert.Equal(t, "Invalid or inactive promotion code", result.Reason)
}

func TestValidate_InactivePromotion(t *testing.T) {
	svc, db := setupService(t)
	promo := activePromo(nil)
	require.NoError(t, db.Create(promo).Error)
	require.NoError(t, db.Model(promo).Update("is_active", false).Error)

	// Disabled by hand inside its window, so the generic reason applies.
	result := validate(t, svc, promotions.ValidationInput{PromotionID: promo.ID, Nights: 2, TotalAmount: 100})
	assert.False(t, result.OK)
	assert.Equal(t, "Invalid or inactive promotion code", result.Reason)
}

func TestValidate_NotStartedYet(t *testing.T) {
	svc, db := setupService(t)
	promo := activePromo(func(p *promotions.Promotion) {
		p.StartDate = time.Now().UTC().AddDate(0, 0, 1)
	})
	require.NoError(t, db.Create(promo).Error)

	result := validate(t, svc, promotions.ValidationInput{PromotionID: promo.ID, Nights: 2, TotalAmount: 100})
	assert.False(t, result.OK)
	assert.Equal(t, "This promotion is not active yet", result.Reason)
}

func TestValidate_ExpiredPromotionIsDeactivated(t *testing.T) {
	svc, db := setupService(t)
	promo := activePromo(func(p *promotions.Promotion) {
		p.StartDate = time.Now().UTC().AddDate(0, 0, -14)
		p.EndDate = time.Now().UTC().AddDate(0, 0, -1)
	})
	require.NoError(t, db.Create(promo).Error)

	// The sweep deactivates the row, but the caller still learns why.
	result := validate(t, svc, promotions.ValidationInput{PromotionID: promo.ID, Nights: 2, TotalAmount: 100})
	assert.False(t, result.OK)
	assert.Equal(t, "This promotion has expired", result.Reason)

	var reloaded promotions.Promotion
	require.NoError(t, db.First(&reloaded, promo.ID).Error)
	assert.False(t, reloaded.IsActive)
}

func TestValidate_MinimumNights(t *testing.T) {
	svc, db := setupService(t)
	minNights := 3
	promo := activePromo(func(p *promotions.Promotion) { p.MinimumNights = &minNights })
	require.NoError(t, db.Create(promo).Error)

	result := validate(t, svc, promotions.ValidationInput{PromotionID: promo.ID, Nights: 2, TotalAmount: 500})
	assert.False(t, result.OK)
	assert.Equal(t, "This promotion requires a minimum stay of 3 nights", result.Reason)

	result = validate(t, svc, promotions.ValidationInput{PromotionID: promo.ID, Nights: 3, TotalAmount: 500})
	assert.True(t, result.OK)
}

func TestValidate_MinimumAmount(t *testing.T) {
	svc, db := setupService(t)
	minAmount := 150.0
	promo := activePromo(func(p *promotions.Promotion) { p.MinimumAmount = &minAmount })
	require.NoError(t, db.Create(promo).Error)

	result := validate(t, svc, promotions.ValidationInput{PromotionID: promo.ID, Nights: 2, TotalAmount: 149.99})
	assert.False(t, result.OK)
	assert.Equal(t, "This promotion requires a minimum booking amount of 150.00", result.Reason)
}

func TestValidate_GlobalCapDeactivates(t *testing.T) {
	svc, db := setupService(t)
	maxUses := 1
	promo := activePromo(func(p *promotions.Promotion) { p.MaxTotalUses = &maxUses })
	require.NoError(t, db.Create(promo).Error)
	usedBooking(t, db, promo.ID, 1, nil)

	result := validate(t, svc, promotions.ValidationInput{PromotionID: promo.ID, UserID: 2, Nights: 2, TotalAmount: 500})
	assert.False(t, result.OK)

	var reloaded promotions.Promotion
	require.NoError(t, db.First(&reloaded, promo.ID).Error)
	assert.False(t, reloaded.IsActive)
}

func TestValidate_PerPhoneLimit(t *testing.T) {
	svc, db := setupService(t)
	promo := activePromo(func(p *promotions.Promotion) { p.LimitPerPhone = true })
	require.NoError(t, db.Create(promo).Error)

	phoneHash, err := svc.PhoneHash("+60 12-345 6789")
	require.NoError(t, err)
	usedBooking(t, db, promo.ID, 1, func(b *bookings.Booking) { b.PromoPhoneHash = phoneHash })

	// Same number in a different formatting still matches.
	result := validate(t, svc, promotions.ValidationInput{
		PromotionID: promo.ID, UserID: 2, Phone: "+60123456789", Nights: 2, TotalAmount: 500,
	})
	assert.False(t, result.OK)
	assert.Contains(t, result.Reason, "with this phone number")

	result = validate(t, svc, promotions.ValidationInput{
		PromotionID: promo.ID, UserID: 2, Phone: "+60198765432", Nights: 2, TotalAmount: 500,
	})
	assert.True(t, result.OK)
}

func TestValidate_PerCardLimit(t *testing.T) {
	svc, db := setupService(t)
	promo := activePromo(func(p *promotions.Promotion) { p.LimitPerCard = true })
	require.NoError(t, db.Create(promo).Error)

	cardID := svc.CardIdentifier("4111 1111 1111 1111")
	usedBooking(t, db, promo.ID, 1, func(b *bookings.Booking) { b.PromoCardIdentifier = cardID })

	result := validate(t, svc, promotions.ValidationInput{
		PromotionID: promo.ID, UserID: 2, CardNumber: "4111-1111-1111-1111", Nights: 2, TotalAmount: 500,
	})
	assert.False(t, result.OK)
	assert.Contains(t, result.Reason, "with this payment card")

	result = validate(t, svc, promotions.ValidationInput{
		PromotionID: promo.ID, UserID: 2, CardNumber: "5555 5555 5555 4444", Nights: 2, TotalAmount: 500,
	})
	assert.True(t, result.OK)
}

func TestValidate_PerAccountLimit(t *testing.T) {
	svc, db := setupService(t)
	promo := activePromo(func(p *promotions.Promotion) { p.LimitPerAccount = true })
	require.NoError(t, db.Create(promo).Error)
	usedBooking(t, db, promo.ID, 7, nil)

	result := validate(t, svc, promotions.ValidationInput{PromotionID: promo.ID, UserID: 7, Nights: 2, TotalAmount: 500})
	assert.False(t, result.OK)
	assert.Contains(t, result.Reason, "on this account")

	result = validate(t, svc, promotions.ValidationInput{PromotionID: promo.ID, UserID: 8, Nights: 2, TotalAmount: 500})
	assert.True(t, result.OK)
}

func TestValidate_PerDeviceLimit_FingerprintOrIP(t *testing.T) {
	svc, db := setupService(t)
	promo := activePromo(func(p *promotions.Promotion) { p.LimitPerDevice = true })
	require.NoError(t, db.Create(promo).Error)
	usedBooking(t, db, promo.ID, 1, func(b *bookings.Booking) {
		b.PromoDeviceFingerprint = "fp-abc"
		b.PromoIPAddress = "203.0.113.9"
	})

	// Fingerprint matches, IP differs.
	result := validate(t, svc, promotions.ValidationInput{
		PromotionID: promo.ID, UserID: 2, DeviceFingerprint: "fp-abc", IPAddress: "198.51.100.1",
		Nights: 2, TotalAmount: 500,
	})
	assert.False(t, result.OK)
	assert.Contains(t, result.Reason, "from this device")

	// IP matches, fingerprint differs.
	result = validate(t, svc, promotions.ValidationInput{
		PromotionID: promo.ID, UserID: 2, DeviceFingerprint: "fp-xyz", IPAddress: "203.0.113.9",
		Nights: 2, TotalAmount: 500,
	})
	assert.False(t, result.OK)

	// Neither matches.
	result = validate(t, svc, promotions.ValidationInput{
		PromotionID: promo.ID, UserID: 2, DeviceFingerprint: "fp-xyz", IPAddress: "198.51.100.1",
		Nights: 2, TotalAmount: 500,
	})
	assert.True(t, result.OK)
}

func TestValidate_MaxUsesPerLimitAboveOne(t *testing.T) {
	svc, db := setupService(t)
	promo := activePromo(func(p *promotions.Promotion) {
		p.LimitPerAccount = true
		p.MaxUsesPerLimit = 2
	})
	require.NoError(t, db.Create(promo).Error)
	usedBooking(t, db, promo.ID, 7, nil)

	result := validate(t, svc, promotions.ValidationInput{PromotionID: promo.ID, UserID: 7, Nights: 2, TotalAmount: 500})
	assert.True(t, result.OK)

	usedBooking(t, db, promo.ID, 7, nil)
	result = validate(t, svc, promotions.ValidationInput{PromotionID: promo.ID, UserID: 7, Nights: 2, TotalAmount: 500})
	assert.False(t, result.OK)
}

func TestValidate_MissingEvidenceSkipsDimension(t *testing.T) {
	svc, db := setupService(t)
	promo := activePromo(func(p *promotions.Promotion) {
		p.LimitPerPhone = true
		p.LimitPerCard = true
		p.LimitPerDevice = true
	})
	require.NoError(t, db.Create(promo).Error)

	// No phone, card or device evidence supplied: those checks do not run.
	result := validate(t, svc, promotions.ValidationInput{PromotionID: promo.ID, UserID: 1, Nights: 2, TotalAmount: 500})
	assert.True(t, result.OK)
}

func TestRecordUsage_WritesEvidenceAndDeactivatesAtCap(t *testing.T) {
	svc, db := setupService(t)
	maxUses := 1
	promo := activePromo(func(p *promotions.Promotion) { p.MaxTotalUses = &maxUses })
	require.NoError(t, db.Create(promo).Error)

	// A pending usage row the evidence will be written onto.
	now := time.Now().UTC()
	booking := bookings.Booking{
		UserID: 3, RoomID: 1,
		CheckInDate: now.AddDate(0, 0, 1), CheckOutDate: now.AddDate(0, 0, 3), Nights: 2,
		BasePrice: 200, TotalPrice: 180,
		Status: bookings.StatusConfirmed, PromotionID: &promo.ID,
		QRToken: uuid.NewString(),
	}
	require.NoError(t, db.Create(&booking).Error)

	err := svc.RecordUsage(context.Background(), booking.ID, promo.ID, promotions.ValidationInput{
		UserID:            3,
		Phone:             "+60123456789",
		CardNumber:        "4111-1111-1111-1111",
		DeviceFingerprint: "fp-abc",
		IPAddress:         "203.0.113.9",
	})
	require.NoError(t, err)

	var reloaded bookings.Booking
	require.NoError(t, db.First(&reloaded, booking.ID).Error)
	assert.NotEmpty(t, reloaded.PromoPhoneHash)
	assert.True(t, strings.HasPrefix(reloaded.PromoCardIdentifier, "1111-"))
	assert.Equal(t, "fp-abc", reloaded.PromoDeviceFingerprint)
	assert.NotNil(t, reloaded.PromoUsedAt)

	var reloadedPromo promotions.Promotion
	require.NoError(t, db.First(&reloadedPromo, promo.ID).Error)
	assert.False(t, reloadedPromo.IsActive)
}

func TestComputeDiscount(t *testing.T) {
	svc, _ := setupService(t)

	percent := activePromo(nil)
	assert.InDelta(t, 23.997, svc.ComputeDiscount(percent, 239.97), 0.0001)

	fixed := activePromo(func(p *promotions.Promotion) {
		p.DiscountType = promotions.DiscountFixedAmount
		p.DiscountValue = 25
	})
	assert.Equal(t, 25.0, svc.ComputeDiscount(fixed, 200))

	// Clamped to the base price.
	assert.Equal(t, 20.0, svc.ComputeDiscount(fixed, 20))
}

func TestCardIdentifier_KeepsOnlyLastFour(t *testing.T) {
	svc, _ := setupService(t)

	id := svc.CardIdentifier("4111-1111-1111-1111")
	require.True(t, strings.HasPrefix(id, "1111-"))
	assert.NotContains(t, id, "4111-1111")
	assert.Len(t, id, 4+1+16)

	// Formatting does not change the identifier.
	assert.Equal(t, id, svc.CardIdentifier("4111 1111 1111 1111"))
	assert.Equal(t, id, svc.CardIdentifier("4111111111111111"))
}
