package promotions

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrPromotionNotFound = errors.New("promotion not found")

type Repository interface {
	Create(ctx context.Context, promo *Promotion) error
	GetByID(ctx context.Context, id uint) (*Promotion, error)
	GetByCode(ctx context.Context, code string) (*Promotion, error)
	GetAll(ctx context.Context, activeOnly bool) ([]Promotion, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (*Promotion, error)
	Delete(ctx context.Context, id uint) error
	Deactivate(ctx context.Context, id uint) error

	// Sweep side effects
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
	DeactivateExhausted(ctx context.Context) (int64, error)

	// Usage counting. Counts are always fresh queries against committed
	// booking rows; a usage only counts once promo_used_at is set.
	CountUsages(ctx context.Context, promotionID uint) (int64, error)
	CountUsagesByPhoneHash(ctx context.Context, promotionID uint, phoneHash string) (int64, error)
	CountUsagesByCardIdentifier(ctx context.Context, promotionID uint, cardIdentifier string) (int64, error)
	CountUsagesByUser(ctx context.Context, promotionID uint, userID uint) (int64, error)
	CountUsagesByDevice(ctx context.Context, promotionID uint, deviceFingerprint, ipAddress string) (int64, error)

	// RecordUsage writes evidence columns onto the booking row.
	RecordUsage(ctx context.Context, bookingID uint, evidence UsageEvidence) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, promo *Promotion) error {
	return r.db.WithContext(ctx).Create(promo).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Promotion, error) {
	var promo Promotion
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&promo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromotionNotFound
		}
		return nil, err
	}
	return &promo, nil
}

func (r *repository) GetByCode(ctx context.Context, code string) (*Promotion, error) {
	var promo Promotion
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&promo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromotionNotFound
		}
		return nil, err
	}
	return &promo, nil
}

func (r *repository) GetAll(ctx context.Context, activeOnly bool) ([]Promotion, error) {
	var promos []Promotion
	query := r.db.WithContext(ctx).Order("created_at desc")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&promos).Error; err != nil {
		return nil, err
	}
	return promos, nil
}

func (r *repository) Update(ctx context.Context, id uint, updates map[string]interface{}) (*Promotion, error) {
	var promo Promotion
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&promo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromotionNotFound
		}
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&promo).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &promo, nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&Promotion{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPromotionNotFound
	}
	return nil
}

func (r *repository) Deactivate(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&Promotion{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

func (r *repository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&Promotion{}).
		Where("is_active = ? AND end_date < ?", true, now).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}

func (r *repository) DeactivateExhausted(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE promotions SET is_active = false
		WHERE is_active = true
		  AND max_total_uses IS NOT NULL
		  AND (
			SELECT COUNT(*) FROM bookings b
			WHERE b.promotion_id = promotions.id
			  AND b.promo_used_at IS NOT NULL
		  ) >= max_total_uses
	`)
	return result.RowsAffected, result.Error
}

func (r *repository) usageQuery(ctx context.Context, promotionID uint) *gorm.DB {
	return r.db.WithContext(ctx).Table("bookings").
		Where("promotion_id = ? AND promo_used_at IS NOT NULL", promotionID)
}

func (r *repository) CountUsages(ctx context.Context, promotionID uint) (int64, error) {
	var count int64
	err := r.usageQuery(ctx, promotionID).Count(&count).Error
	return count, err
}

func (r *repository) CountUsagesByPhoneHash(ctx context.Context, promotionID uint, phoneHash string) (int64, error) {
	var count int64
	err := r.usageQuery(ctx, promotionID).
		Where("promo_phone_hash = ?", phoneHash).
		Count(&count).Error
	return count, err
}

func (r *repository) CountUsagesByCardIdentifier(ctx context.Context, promotionID uint, cardIdentifier string) (int64, error) {
	var count int64
	err := r.usageQuery(ctx, promotionID).
		Where("promo_card_identifier = ?", cardIdentifier).
		Count(&count).Error
	return count, err
}

func (r *repository) CountUsagesByUser(ctx context.Context, promotionID uint, userID uint) (int64, error) {
	var count int64
	err := r.usageQuery(ctx, promotionID).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// CountUsagesByDevice counts prior usages matching the device fingerprint
// OR the IP address; either match counts against the limit.
func (r *repository) CountUsagesByDevice(ctx context.Context, promotionID uint, deviceFingerprint, ipAddress string) (int64, error) {
	var count int64
	query := r.usageQuery(ctx, promotionID)

	switch {
	case deviceFingerprint != "" && ipAddress != "":
		query = query.Where("promo_device_fingerprint = ? OR promo_ip_address = ?", deviceFingerprint, ipAddress)
	case deviceFingerprint != "":
		query = query.Where("promo_device_fingerprint = ?", deviceFingerprint)
	case ipAddress != "":
		query = query.Where("promo_ip_address = ?", ipAddress)
	default:
		return 0, nil
	}

	err := query.Count(&count).Error
	return count, err
}

func (r *repository) RecordUsage(ctx context.Context, bookingID uint, evidence UsageEvidence) error {
	return r.db.WithContext(ctx).Table("bookings").
		Where("id = ?", bookingID).
		Updates(map[string]interface{}{
			"promo_phone_hash":         evidence.PhoneHash,
			"promo_card_identifier":    evidence.CardIdentifier,
			"promo_device_fingerprint": evidence.DeviceFingerprint,
			"promo_ip_address":         evidence.IPAddress,
			"promo_used_at":            evidence.UsedAt,
		}).Error
}
