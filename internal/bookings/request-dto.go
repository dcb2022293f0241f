package bookings

// CreateBookingRequest creates a Pending booking. Either a room type with
// optional promotion code, or a package id (promotions are silently
// dropped for package bookings).
type CreateBookingRequest struct {
	RoomTypeID uint   `json:"room_type_id"`
	CheckIn    string `json:"check_in" binding:"required"`  // 2006-01-02
	CheckOut   string `json:"check_out" binding:"required"` // 2006-01-02

	PromotionCode string `json:"promotion_code" binding:"omitempty,max=50"`
	PackageID     *uint  `json:"package_id"`

	// Optional promotion-abuse evidence supplied at booking time
	Phone             string `json:"phone" binding:"omitempty,max=30"`
	DeviceFingerprint string `json:"device_fingerprint" binding:"omitempty,max=128"`
}

// PayBookingRequest captures a simulated payment. Field requirements are
// method-specific and enforced by the service.
type PayBookingRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required,oneof=CREDIT_CARD PAYPAL BANK_TRANSFER"`

	// Credit card
	CardNumber string `json:"card_number" binding:"omitempty,carddigits"`
	CardHolder string `json:"card_holder" binding:"omitempty,max=100"`
	CardExpiry string `json:"card_expiry" binding:"omitempty,max=7"` // MM/YY or MM/YYYY
	CardCVV    string `json:"card_cvv" binding:"omitempty,min=3,max=4"`

	// PayPal
	PayPalEmail string `json:"paypal_email" binding:"omitempty,email"`

	// Bank transfer
	BankName      string `json:"bank_name" binding:"omitempty,max=100"`
	AccountNumber string `json:"account_number" binding:"omitempty,max=34"`
	AccountHolder string `json:"account_holder" binding:"omitempty,max=100"`

	// Optional promotion-abuse evidence supplied at payment time
	Phone             string `json:"phone" binding:"omitempty,max=30"`
	DeviceFingerprint string `json:"device_fingerprint" binding:"omitempty,max=128"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"omitempty,max=500"`
}

type ScanRequest struct {
	Payload string `json:"payload" binding:"required,max=512"`
}
