package reviews

import "time"

// Review is a guest's rating of a completed stay. One review per booking;
// its existence blocks cancellation of that booking.
type Review struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	BookingID uint   `json:"booking_id" gorm:"uniqueIndex;not null"`
	UserID    uint   `json:"user_id" gorm:"index;not null"`
	HotelID   uint   `json:"hotel_id" gorm:"index;not null"`
	Rating    int    `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment   string `json:"comment" gorm:"size:2000"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Review) TableName() string { return "reviews" }
