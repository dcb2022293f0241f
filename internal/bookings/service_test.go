package bookings_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"roomly/internal/bookings"
	"roomly/internal/hotels"
	"roomly/internal/packages"
	"roomly/internal/promotions"
	"roomly/internal/reviews"
	"roomly/internal/shared/config"
	"roomly/pkg/crypto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testKey = "0123456789abcdef0123456789abcdef"

type fixture struct {
	db             *gorm.DB
	service        bookings.Service
	repo           bookings.Repository
	hotelService   hotels.Service
	packageService packages.Service
	roomTypeID     uint
}

func setup(t *testing.T, roomCount int) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&hotels.Hotel{}, &hotels.RoomType{}, &hotels.Room{},
		&promotions.Promotion{},
		&packages.HotelService{}, &packages.Package{}, &packages.PackageItem{},
		&bookings.Booking{}, &reviews.Review{},
	))

	cfg := &config.Config{}
	encryptor, err := crypto.NewEncryptor(testKey)
	require.NoError(t, err)

	hotelService := hotels.NewService(hotels.NewRepository(db), cfg)
	promotionService := promotions.NewService(promotions.NewRepository(db), encryptor)
	packageService := packages.NewService(packages.NewRepository(db), cfg)

	repo := bookings.NewRepository(db)
	service := bookings.NewService(repo, hotelService, promotionService, packageService)

	hotel := hotels.Hotel{Name: "Test Hotel", Address: "1 Test St", City: "Testville"}
	require.NoError(t, db.Create(&hotel).Error)
	roomType := hotels.RoomType{HotelID: hotel.ID, Name: "Standard Queen", BasePrice: 79.99, Capacity: 2}
	require.NoError(t, db.Create(&roomType).Error)
	for i := 0; i < roomCount; i++ {
		room := hotels.Room{RoomTypeID: roomType.ID, RoomNumber: fmt.Sprintf("%d01", i+1), Status: hotels.RoomStatusAvailable}
		require.NoError(t, db.Create(&room).Error)
	}

	return &fixture{
		db:             db,
		service:        service,
		repo:           repo,
		hotelService:   hotelService,
		packageService: packageService,
		roomTypeID:     roomType.ID,
	}
}

func (f *fixture) seedPromotion(t *testing.T, mutate func(*promotions.Promotion)) *promotions.Promotion {
	t.Helper()
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
	require.NoError(t, f.db.Create(promo).Error)
	return promo
}

func futureDate(offset int) string {
	return time.Now().UTC().AddDate(0, 0, offset).Format("2006-01-02")
}

func creditCardPayment() bookings.PayBookingRequest {
	return bookings.PayBookingRequest{
		PaymentMethod: "CREDIT_CARD",
		CardNumber:    "4111-1111-1111-1111",
		CardHolder:    "Aina Rahman",
		CardExpiry:    "12/30",
		CardCVV:       "123",
	}
}

func TestCreate_PricesBaseTimesNights(t *testing.T) {
	f := setup(t, 1)

	resp, err := f.service.Create(context.Background(), 1, "203.0.113.1", bookings.CreateBookingRequest{
		RoomTypeID: f.roomTypeID,
		CheckIn:    futureDate(1),
		CheckOut:   futureDate(4),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Nights)
	assert.Equal(t, 239.97, resp.BasePrice)
	assert.Equal(t, 239.97, resp.TotalPrice)
	assert.Equal(t, "PENDING", resp.Status)
	assert.Equal(t, "ROOM", resp.Origin)
	assert.NotEmpty(t, resp.QRToken)
	_, err = uuid.Parse(resp.QRToken)
	assert.NoError(t, err)
}

func TestCreate_AppliesPercentagePromotion(t *testing.T) {
	f := setup(t, 1)
	f.seedPromotion(t, nil)

	resp, err := f.service.Create(context.Background(), 1, "203.0.113.1", bookings.CreateBookingRequest{
		RoomTypeID:    f.roomTypeID,
		CheckIn:       futureDate(1),
		CheckOut:      futureDate(4),
		PromotionCode: "SAVE10",
	})
	require.NoError(t, err)

	// 79.99 x 3 nights = 239.97, minus 10% = 215.97
	assert.Equal(t, 239.97, resp.BasePrice)
	assert.Equal(t, 24.00, resp.DiscountAmount)
	assert.Equal(t, 215.97, resp.TotalPrice)
	require.NotNil(t, resp.PromotionID)
}

func TestCreate_RejectsIneligiblePromotion(t *testing.T) {
	f := setup(t, 1)
	minNights := 5
	f.seedPromotion(t, func(p *promotions.Promotion) { p.MinimumNights = &minNights })

	_, err := f.service.Create(context.Background(), 1, "203.0.113.1", bookings.CreateBookingRequest{
		RoomTypeID:    f.roomTypeID,
		CheckIn:       futureDate(1),
		CheckOut:      futureDate(4),
		PromotionCode: "SAVE10",
	})

	var validationErr *bookings.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Message, "minimum stay of 5 nights")
}

func TestCreate_NoRoomLeft(t *testing.T) {
	f := setup(t, 1)

	_, err := f.service.Create(context.Background(), 1, "203.0.113.1", bookings.CreateBookingRequest{
		RoomTypeID: f.roomTypeID, CheckIn: futureDate(1), CheckOut: futureDate(4),
	})
	require.NoError(t, err)

	_, err = f.service.Create(context.Background(), 2, "203.0.113.2", bookings.CreateBookingRequest{
		RoomTypeID: f.roomTypeID, CheckIn: futureDate(2), CheckOut: futureDate(3),
	})
	var validationErr *bookings.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestCreate_PackageBookingUsesFixedPriceAndDropsPromotion(t *testing.T) {
	f := setup(t, 1)
	f.seedPromotion(t, nil)

	pkg := packages.Package{
		Name: "Weekend Escape", Price: 199, Nights: 2, IsActive: true,
		Items: []packages.PackageItem{packages.RoomItem(f.roomTypeID, 2)},
	}
	require.NoError(t, f.db.Create(&pkg).Error)

	resp, err := f.service.Create(context.Background(), 1, "203.0.113.1", bookings.CreateBookingRequest{
		PackageID:     &pkg.ID,
		CheckIn:       futureDate(1),
		CheckOut:      futureDate(3),
		PromotionCode: "SAVE10",
	})
	require.NoError(t, err)

	assert.Equal(t, "PACKAGE", resp.Origin)
	assert.Equal(t, 199.0, resp.TotalPrice)
	assert.Zero(t, resp.DiscountAmount)
	assert.Nil(t, resp.PromotionID)
	require.NotNil(t, resp.PackageID)
}

func TestCreate_PackageNightsMustMatchStay(t *testing.T) {
	f := setup(t, 1)
	pkg := packages.Package{
		Name: "Weekend Escape", Price: 199, Nights: 2, IsActive: true,
		Items: []packages.PackageItem{packages.RoomItem(f.roomTypeID, 2)},
	}
	require.NoError(t, f.db.Create(&pkg).Error)

	_, err := f.service.Create(context.Background(), 1, "203.0.113.1", bookings.CreateBookingRequest{
		PackageID: &pkg.ID,
		CheckIn:   futureDate(1),
		CheckOut:  futureDate(4),
	})
	var validationErr *bookings.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Message, "2 nights")
}

func TestPay_CompletesPaymentAndConfirms(t *testing.T) {
	f := setup(t, 1)

	created, err := f.service.Create(context.Background(), 1, "203.0.113.1", bookings.CreateBookingRequest{
		RoomTypeID: f.roomTypeID, CheckIn: futureDate(1), CheckOut: futureDate(3),
	})
	require.NoError(t, err)

	paid, err := f.service.Pay(context.Background(), 1, "aina@example.com", created.ID, "203.0.113.1", creditCardPayment())
	require.NoError(t, err)

	assert.Equal(t, "CONFIRMED", paid.Status)
	assert.Equal(t, "COMPLETED", paid.PaymentStatus)
	assert.NotEmpty(t, paid.TransactionID)
	assert.NotNil(t, paid.PaymentDate)

	// Paying twice conflicts.
	_, err = f.service.Pay(context.Background(), 1, "aina@example.com", created.ID, "203.0.113.1", creditCardPayment())
	var conflictErr *bookings.StateConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, "booking is already paid", conflictErr.Message)
}

func TestPay_MethodSpecificFieldValidation(t *testing.T) {
	f := setup(t, 1)

	created, err := f.service.Create(context.Background(), 1, "203.0.113.1", bookings.CreateBookingRequest{
		RoomTypeID: f.roomTypeID, CheckIn: futureDate(1), CheckOut: futureDate(3),
	})
	require.NoError(t, err)

	cases := []struct {
		name string
		req  bookings.PayBookingRequest
	}{
		{"credit card missing cvv", bookings.PayBookingRequest{
			PaymentMethod: "CREDIT_CARD", CardNumber: "4111111111111111", CardHolder: "A", CardExpiry: "12/30",
		}},
		{"expired card", bookings.PayBookingRequest{
			PaymentMethod: "CREDIT_CARD", CardNumber: "4111111111111111", CardHolder: "A", CardExpiry: "01/20", CardCVV: "123",
		}},
		{"paypal missing email", bookings.PayBookingRequest{PaymentMethod: "PAYPAL"}},
		{"bank transfer missing account", bookings.PayBookingRequest{PaymentMethod: "BANK_TRANSFER", BankName: "Maybank"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.service.Pay(context.Background(), 1, "aina@example.com", created.ID, "203.0.113.1", tc.req)
			var validationErr *bookings.ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestPay_OtherUsersBookingIsHidden(t *testing.T) {
	f := setup(t, 1)

	created, err := f.service.Create(context.Background(), 1, "203.0.113.1", bookings.CreateBookingRequest{
		RoomTypeID: f.roomTypeID, CheckIn: futureDate(1), CheckOut: futureDate(3),
	})
	require.NoError(t, err)

	_, err = f.service.Pay(context.Background(), 99, "mallory@example.com", created.ID, "203.0.113.9", creditCardPayment())
	assert.ErrorIs(t, err, bookings.ErrBookingNotFound)
}

func TestCancel_PaidPendingBookingRefundsEightyPercent(t *testing.T) {
	f := setup(t, 1)

	created, err := f.service.Create(context.Background(), 1, "203.0.113.1", bookings.CreateBookingRequest{
		RoomTypeID: f.roomTypeID, CheckIn: futureDate(2), CheckOut: futureDate(4),
	})
	require.NoError(t, err)

	// Force a paid-but-still-pending booking at a round total.
	booking, err := f.repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	booking.TotalPrice = 200
	booking.PaymentStatus = bookings.PaymentStatusCompleted
	require.NoError(t, f.repo.Save(context.Background(), booking))

	cancelled, err := f.service.Cancel(context.Background(), 1, created.ID, bookings.CancelBookingRequest{Reason: "change of plans"})
	require.NoError(t, err)

	assert.Equal(t, "CANCELLED", cancelled.Status)
	assert.Equal(t, 160.00, cancelled.RefundAmount)
	assert.Equal(t, "REFUNDED", cancelled.PaymentStatus)
	assert.Equal(t, "change of plans", cancelled.CancellationReason)
	assert.NotNil(t, cancelled.CancelledAt)

	// Cancelling again conflicts.
	_, err = f.service.Cancel(context.Background(), 1, created.ID, bookings.CancelBookingRequest{})
	var conflictErr *bookings.StateConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, "booking is already cancelled", conflictErr.Message)
}

func TestCancel_UnpaidBookingHasNoRefund(t *testing.T) {
	f := setup(t, 1)

	created, err := f.service.Create(context.Background(), 1, "203.0.113.1", bookings.CreateBookingRequest{
		RoomTypeID: f.roomTypeID, CheckIn: futureDate(2), CheckOut: futureDate(4),
	})
	require.NoError(t, err)

	cancelled, err := f.service.Cancel(context.Background(), 1, created.ID, bookings.CancelBookingRequest{})
	require.NoError(t, err)
	assert.Zero(t, cancelled.RefundAmount)
	assert.Equal(t, "PENDING", cancelled.PaymentStatus)
}

func TestCancel_ConfirmedBookingCannotBeCancelled(t *testing.T) {
	f := setup(t, 1)

	created, err := f.service.Create(context.Background(), 1, "203.0.113.1", bookings.CreateBookingRequest{
		RoomTypeID: f.roomTypeID, CheckIn: futureDate(1), CheckOut: futureDate(3),
	})
	require.NoError(t, err)
	_, err = f.service.Pay(context.Background(), 1, "aina@example.com", created.ID, "203.0.113.1", creditCardPayment())
	require.NoError(t, err)

	_, err = f.service.Cancel(context.Background(), 1, created.ID, bookings.CancelBookingRequest{})
	var conflictErr *bookings.StateConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Contains(t, conflictErr.Message, "cannot be cancelled")
}

type stubReviewChecker struct {
	hasReview bool
}

func (s *stubReviewChecker) ExistsForBooking(context.Context, uint) (bool, error) {
	return s.hasReview, nil
}

func TestCancel_ReviewBlocksCancellation(t *testing.T) {
	f := setup(t, 1)
	f.service.SetReviewChecker(&stubReviewChecker{hasReview: true})

	created, err := f.service.Create(context.Background(), 1, "203.0.113.1", bookings.CreateBookingRequest{
		RoomTypeID: f.roomTypeID, CheckIn: futureDate(2), CheckOut: futureDate(4),
	})
	require.NoError(t, err)

	_, err = f.service.Cancel(context.Background(), 1, created.ID, bookings.CancelBookingRequest{})
	var conflictErr *bookings.StateConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, "a reviewed booking cannot be cancelled", conflictErr.Message)
}

func TestScan_ChecksInThenRejectsSameDayCheckout(t *testing.T) {
	f := setup(t, 1)

	created, err := f.service.Create(context.Background(), 1, "203.0.113.1", bookings.CreateBookingRequest{
		RoomTypeID: f.roomTypeID, CheckIn: futureDate(1), CheckOut: futureDate(3),
	})
	require.NoError(t, err)
	_, err = f.service.Pay(context.Background(), 1, "aina@example.com", created.ID, "203.0.113.1", creditCardPayment())
	require.NoError(t, err)

	result, err := f.service.Scan(context.Background(), bookings.BuildScanPayload(created.ID, "aina@example.com", "101", time.Now(), time.Now()))
	require.NoError(t, err)
	assert.Equal(t, bookings.ScanActionCheckedIn, result.Action)
	assert.Equal(t, "CHECKED_IN", result.Booking.Status)

	// The second scan the same day must not check the guest out.
	_, err = f.service.Scan(context.Background(), created.QRToken)
	var conflictErr *bookings.StateConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, "cannot check out on the same day as check-in", conflictErr.Message)
}

func TestScan_ChecksOutOnLaterDay(t *testing.T) {
	f := setup(t, 1)

	created, err := f.service.Create(context.Background(), 1, "203.0.113.1", bookings.CreateBookingRequest{
		RoomTypeID: f.roomTypeID, CheckIn: futureDate(1), CheckOut: futureDate(3),
	})
	require.NoError(t, err)

	// Simulate a guest who checked in yesterday.
	booking, err := f.repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	booking.Status = bookings.StatusCheckedIn
	booking.CheckInTime = &yesterday
	require.NoError(t, f.repo.Save(context.Background(), booking))

	result, err := f.service.Scan(context.Background(), created.QRToken)
	require.NoError(t, err)
	assert.Equal(t, bookings.ScanActionCheckedOut, result.Action)
	assert.Equal(t, "CHECKED_OUT", result.Booking.Status)
	assert.NotNil(t, result.Booking.CheckOutTime)

	// Scanning an already checked-out booking is benign.
	result, err = f.service.Scan(context.Background(), created.QRToken)
	require.NoError(t, err)
	assert.Equal(t, bookings.ScanActionAlreadyCheckedOut, result.Action)
}

func TestScan_CancelledBookingConflicts(t *testing.T) {
	f := setup(t, 1)

	created, err := f.service.Create(context.Background(), 1, "203.0.113.1", bookings.CreateBookingRequest{
		RoomTypeID: f.roomTypeID, CheckIn: futureDate(2), CheckOut: futureDate(4),
	})
	require.NoError(t, err)
	_, err = f.service.Cancel(context.Background(), 1, created.ID, bookings.CancelBookingRequest{})
	require.NoError(t, err)

	_, err = f.service.Scan(context.Background(), created.QRToken)
	var conflictErr *bookings.StateConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Contains(t, conflictErr.Message, "cannot be scanned")
}

func TestScan_UnknownPayload(t *testing.T) {
	f := setup(t, 1)

	_, err := f.service.Scan(context.Background(), "BookingID:9999")
	assert.ErrorIs(t, err, bookings.ErrBookingNotFound)

	_, err = f.service.Scan(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, bookings.ErrBookingNotFound)
}

func TestQRCodePNG_OwnershipAndState(t *testing.T) {
	f := setup(t, 1)

	created, err := f.service.Create(context.Background(), 1, "203.0.113.1", bookings.CreateBookingRequest{
		RoomTypeID: f.roomTypeID, CheckIn: futureDate(2), CheckOut: futureDate(4),
	})
	require.NoError(t, err)

	png, err := f.service.QRCodePNG(context.Background(), 1, "aina@example.com", created.ID, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, png)

	// Another user cannot fetch it.
	_, err = f.service.QRCodePNG(context.Background(), 99, "mallory@example.com", created.ID, 0)
	assert.ErrorIs(t, err, bookings.ErrBookingNotFound)

	// Cancelled bookings have no code.
	_, err = f.service.Cancel(context.Background(), 1, created.ID, bookings.CancelBookingRequest{})
	require.NoError(t, err)
	_, err = f.service.QRCodePNG(context.Background(), 1, "aina@example.com", created.ID, 0)
	var conflictErr *bookings.StateConflictError
	assert.ErrorAs(t, err, &conflictErr)
}
