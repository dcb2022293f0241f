package database

import (
	"roomly/internal/bookings"
	"roomly/internal/hotels"
	"roomly/internal/packages"
	"roomly/internal/promotions"
	"roomly/internal/reviews"
	"roomly/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&hotels.Hotel{},
		&hotels.RoomType{},
		&hotels.Room{},
		&promotions.Promotion{},
		&packages.HotelService{},
		&packages.Package{},
		&packages.PackageItem{},
		&bookings.Booking{},
		&reviews.Review{},
	)
}
