package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds constraints the availability check relies on.
// The row lock taken during booking creation serializes writers; the
// exclusion constraint below is the backstop that makes an overlapping
// double-booking impossible even if a future code path skips the lock.
func MigrateConstraints(db *gorm.DB) error {
	// Overlap exclusion needs btree_gist for the equality part on room_id.
	err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist;`).Error
	if err != nil {
		return err
	}

	err = db.Exec(`
		DO $$ BEGIN
			ALTER TABLE bookings
			ADD CONSTRAINT no_overlapping_active_bookings
			EXCLUDE USING gist (
				room_id WITH =,
				daterange(check_in_date::date, check_out_date::date) WITH &&
			) WHERE (status NOT IN ('CANCELLED', 'CHECKED_OUT', 'NO_SHOW'));
		EXCEPTION
			WHEN duplicate_table THEN NULL;
			WHEN duplicate_object THEN NULL;
		END $$;
	`).Error
	if err != nil {
		return err
	}

	// Covering index for the availability predicate.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_room_dates_status
		ON bookings (room_id, check_in_date, check_out_date, status);
	`).Error
	if err != nil {
		return err
	}

	// Promotion usage counts filter on promo_used_at.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_promotion_used
		ON bookings (promotion_id)
		WHERE promo_used_at IS NOT NULL;
	`).Error
	if err != nil {
		return err
	}

	return nil
}
