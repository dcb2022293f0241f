package bookings

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"roomly/internal/hotels"
	"roomly/internal/packages"
	"roomly/internal/promotions"
	"roomly/pkg/logger"

	"github.com/google/uuid"
)

const refundRate = 0.80

// ValidationError is a user-facing rejection of the request input
// (bad dates, ineligible promotion, no room free). Mapped to 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// StateConflictError rejects an operation that is invalid for the
// booking's current status. Mapped to 409.
type StateConflictError struct {
	Message string
}

func (e *StateConflictError) Error() string { return e.Message }

// ReviewChecker tells the cancellation path whether a review exists.
// Declared here so bookings does not depend on the reviews package.
type ReviewChecker interface {
	ExistsForBooking(ctx context.Context, bookingID uint) (bool, error)
}

// ConfirmationEvent is emitted after a successful payment.
type ConfirmationEvent struct {
	BookingID    uint      `json:"booking_id"`
	UserID       uint      `json:"user_id"`
	UserEmail    string    `json:"user_email"`
	RoomNumber   string    `json:"room_number"`
	CheckInDate  time.Time `json:"check_in_date"`
	CheckOutDate time.Time `json:"check_out_date"`
	TotalPrice   float64   `json:"total_price"`
}

// NotificationPublisher delivers confirmation events. Failures are logged
// and never fail the payment.
type NotificationPublisher interface {
	PublishBookingConfirmed(ctx context.Context, event ConfirmationEvent) error
}

// Summary is the booking slice other domains consume (reviews).
type Summary struct {
	ID      uint
	UserID  uint
	HotelID uint
	Status  string
}

type Service interface {
	SetReviewChecker(checker ReviewChecker)
	SetNotificationPublisher(publisher NotificationPublisher)

	Create(ctx context.Context, userID uint, clientIP string, req CreateBookingRequest) (*BookingResponse, error)
	Pay(ctx context.Context, userID uint, userEmail string, bookingID uint, clientIP string, req PayBookingRequest) (*BookingResponse, error)
	Cancel(ctx context.Context, userID uint, bookingID uint, req CancelBookingRequest) (*BookingResponse, error)

	ListMine(ctx context.Context, userID uint) ([]BookingResponse, error)
	ListAll(ctx context.Context) ([]BookingResponse, error)
	GetForUser(ctx context.Context, userID uint, bookingID uint) (*BookingResponse, error)

	QRCodePNG(ctx context.Context, userID uint, userEmail string, bookingID uint, size int) ([]byte, error)
	Scan(ctx context.Context, payload string) (*ScanResponse, error)

	GetSummary(ctx context.Context, bookingID uint) (*Summary, error)
}

type service struct {
	repo             Repository
	hotelService     hotels.Service
	promotionService promotions.Service
	packageService   packages.Service

	reviewChecker ReviewChecker
	publisher     NotificationPublisher
	logger        *logger.Logger
}

func NewService(repo Repository, hotelService hotels.Service, promotionService promotions.Service, packageService packages.Service) Service {
	return &service{
		repo:             repo,
		hotelService:     hotelService,
		promotionService: promotionService,
		packageService:   packageService,
		logger:           logger.GetDefault(),
	}
}

func (s *service) SetReviewChecker(checker ReviewChecker) {
	s.reviewChecker = checker
}

func (s *service) SetNotificationPublisher(publisher NotificationPublisher) {
	s.publisher = publisher
}

func (s *service) Create(ctx context.Context, userID uint, clientIP string, req CreateBookingRequest) (*BookingResponse, error) {
	checkIn, checkOut, err := hotels.ParseStayDates(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	nights := int(checkOut.Sub(checkIn).Hours() / 24)

	booking := &Booking{
		UserID:       userID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Nights:       nights,
		Status:       StatusPending,
		Origin:       OriginRoom,
		QRToken:      uuid.NewString(),
	}

	var roomTypeID uint
	switch {
	case req.PackageID != nil:
		// Package bookings carry a fixed price; a promotion code on the
		// request is dropped without error.
		roomTypeID, err = s.applyPackage(ctx, booking, *req.PackageID, nights)
		if err != nil {
			return nil, err
		}
	case req.RoomTypeID != 0:
		roomTypeID = req.RoomTypeID
		if err := s.applyRoomPricing(ctx, booking, req, clientIP, nights); err != nil {
			return nil, err
		}
	default:
		return nil, &ValidationError{Message: "either a room type or a package must be selected"}
	}

	if err := s.repo.CreateWithRoomLock(ctx, booking, roomTypeID); err != nil {
		if errors.Is(err, hotels.ErrNoRoomAvailable) {
			return nil, &ValidationError{Message: err.Error()}
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.logger.LogBookingCreated(ctx, booking.ID, booking.RoomID, userID)
	return toBookingResponse(booking), nil
}

// applyPackage prices the booking at the package's fixed price and returns
// the room type its room item points at.
func (s *service) applyPackage(ctx context.Context, booking *Booking, packageID uint, nights int) (uint, error) {
	pkg, err := s.packageService.GetPackage(ctx, packageID)
	if err != nil {
		if errors.Is(err, packages.ErrPackageNotFound) {
			return 0, &ValidationError{Message: "package not found"}
		}
		return 0, err
	}
	if !pkg.IsActive {
		return 0, &ValidationError{Message: "this package is no longer available"}
	}
	if nights != pkg.Nights {
		return 0, &ValidationError{Message: fmt.Sprintf("this package is for a stay of %d nights", pkg.Nights)}
	}

	var roomTypeID uint
	for _, item := range pkg.Items {
		if item.Kind == packages.ItemKindRoom && item.RoomTypeID != nil {
			roomTypeID = *item.RoomTypeID
			break
		}
	}
	if roomTypeID == 0 {
		return 0, fmt.Errorf("package %d has no room item", pkg.ID)
	}

	booking.Origin = OriginPackage
	booking.PackageID = &pkg.ID
	booking.BasePrice = round2(pkg.Price)
	booking.TotalPrice = booking.BasePrice
	return roomTypeID, nil
}

// applyRoomPricing computes base price from the room type's nightly rate
// and applies an optional promotion.
func (s *service) applyRoomPricing(ctx context.Context, booking *Booking, req CreateBookingRequest, clientIP string, nights int) error {
	roomType, err := s.hotelService.GetRoomType(ctx, req.RoomTypeID)
	if err != nil {
		if errors.Is(err, hotels.ErrRoomTypeNotFound) {
			return &ValidationError{Message: "room type not found"}
		}
		return err
	}

	base := round2(roomType.BasePrice * float64(nights))
	booking.BasePrice = base
	booking.TotalPrice = base

	if req.PromotionCode == "" {
		return nil
	}

	promo, err := s.promotionService.GetByCode(ctx, req.PromotionCode)
	if err != nil {
		if errors.Is(err, promotions.ErrPromotionNotFound) {
			return &ValidationError{Message: "Invalid or inactive promotion code"}
		}
		return err
	}

	input := promotions.ValidationInput{
		PromotionID:       promo.ID,
		UserID:            booking.UserID,
		Phone:             req.Phone,
		DeviceFingerprint: req.DeviceFingerprint,
		IPAddress:         clientIP,
		TotalAmount:       base,
		Nights:            nights,
	}
	result, err := s.promotionService.Validate(ctx, input)
	if err != nil {
		return err
	}
	if !result.OK {
		s.logger.LogPromotionRejected(ctx, promo.ID, booking.UserID, result.Reason)
		return &ValidationError{Message: result.Reason}
	}

	discount := round2(s.promotionService.ComputeDiscount(result.Promotion, base))
	booking.PromotionID = &promo.ID
	booking.DiscountAmount = discount
	booking.TotalPrice = round2(base - discount)
	return nil
}

func (s *service) Pay(ctx context.Context, userID uint, userEmail string, bookingID uint, clientIP string, req PayBookingRequest) (*BookingResponse, error) {
	booking, err := s.getOwned(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}

	switch booking.Status {
	case StatusPending:
	case StatusConfirmed:
		return nil, &StateConflictError{Message: "booking is already paid"}
	default:
		return nil, &StateConflictError{Message: fmt.Sprintf("a %s booking cannot be paid", statusWord(booking.Status))}
	}

	if err := validatePaymentDetails(req); err != nil {
		return nil, err
	}

	// Promotion eligibility is re-checked at payment time, now with the
	// card in hand.
	if booking.PromotionID != nil {
		input := promotions.ValidationInput{
			PromotionID:       *booking.PromotionID,
			UserID:            userID,
			Phone:             req.Phone,
			CardNumber:        req.CardNumber,
			DeviceFingerprint: req.DeviceFingerprint,
			IPAddress:         clientIP,
			TotalAmount:       booking.BasePrice,
			Nights:            booking.Nights,
		}
		result, err := s.promotionService.Validate(ctx, input)
		if err != nil {
			return nil, err
		}
		if !result.OK {
			s.logger.LogPromotionRejected(ctx, *booking.PromotionID, userID, result.Reason)
			return nil, &ValidationError{Message: result.Reason}
		}
	}

	now := time.Now().UTC()
	booking.PaymentMethod = req.PaymentMethod
	booking.PaymentStatus = PaymentStatusCompleted
	booking.TransactionID = uuid.NewString()
	booking.PaymentAmount = booking.TotalPrice
	booking.PaymentDate = &now
	booking.Status = StatusConfirmed

	if err := s.repo.Save(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to capture payment: %w", err)
	}
	s.logger.LogPaymentCaptured(ctx, booking.ID, booking.TransactionID, booking.PaymentAmount)

	// Usage evidence is recorded only for completed payments. A failure
	// here is logged, not returned; the payment has already been taken.
	if booking.PromotionID != nil {
		input := promotions.ValidationInput{
			PromotionID:       *booking.PromotionID,
			UserID:            userID,
			Phone:             req.Phone,
			CardNumber:        req.CardNumber,
			DeviceFingerprint: req.DeviceFingerprint,
			IPAddress:         clientIP,
		}
		if err := s.promotionService.RecordUsage(ctx, booking.ID, *booking.PromotionID, input); err != nil {
			s.logger.ErrorWithContext(ctx, "failed to record promotion usage", err, map[string]interface{}{
				"booking_id":   booking.ID,
				"promotion_id": *booking.PromotionID,
			})
		}
	}

	s.publishConfirmation(ctx, booking, userEmail)
	return toBookingResponse(booking), nil
}

func (s *service) publishConfirmation(ctx context.Context, booking *Booking, userEmail string) {
	if s.publisher == nil {
		return
	}
	event := ConfirmationEvent{
		BookingID:    booking.ID,
		UserID:       booking.UserID,
		UserEmail:    userEmail,
		CheckInDate:  booking.CheckInDate,
		CheckOutDate: booking.CheckOutDate,
		TotalPrice:   booking.TotalPrice,
	}
	if booking.Room != nil {
		event.RoomNumber = booking.Room.RoomNumber
	}
	if err := s.publisher.PublishBookingConfirmed(ctx, event); err != nil {
		s.logger.ErrorWithContext(ctx, "failed to publish booking confirmation", err, map[string]interface{}{
			"booking_id": booking.ID,
		})
	}
}

func (s *service) Cancel(ctx context.Context, userID uint, bookingID uint, req CancelBookingRequest) (*BookingResponse, error) {
	booking, err := s.getOwned(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.Status == StatusCancelled {
		return nil, &StateConflictError{Message: "booking is already cancelled"}
	}
	if !booking.Status.CanBeCancelled() {
		return nil, &StateConflictError{Message: fmt.Sprintf("a %s booking cannot be cancelled", statusWord(booking.Status))}
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	if booking.CheckInDate.Before(today) {
		return nil, &StateConflictError{Message: "bookings cannot be cancelled after the check-in date"}
	}

	if s.reviewChecker != nil {
		hasReview, err := s.reviewChecker.ExistsForBooking(ctx, bookingID)
		if err != nil {
			return nil, err
		}
		if hasReview {
			return nil, &StateConflictError{Message: "a reviewed booking cannot be cancelled"}
		}
	}

	now := time.Now().UTC()
	booking.Status = StatusCancelled
	booking.CancelledAt = &now
	booking.CancellationReason = req.Reason
	if booking.IsPaid() {
		booking.RefundAmount = round2(booking.TotalPrice * refundRate)
		booking.PaymentStatus = PaymentStatusRefunded
	}

	if err := s.repo.Save(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}

	s.logger.LogBookingCancelled(ctx, booking.ID, booking.RefundAmount)
	return toBookingResponse(booking), nil
}

func (s *service) ListMine(ctx context.Context, userID uint) ([]BookingResponse, error) {
	bookings, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toBookingResponses(bookings), nil
}

func (s *service) ListAll(ctx context.Context) ([]BookingResponse, error) {
	bookings, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return toBookingResponses(bookings), nil
}

func (s *service) GetForUser(ctx context.Context, userID uint, bookingID uint) (*BookingResponse, error) {
	booking, err := s.getOwned(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}
	return toBookingResponse(booking), nil
}

func (s *service) QRCodePNG(ctx context.Context, userID uint, userEmail string, bookingID uint, size int) ([]byte, error) {
	booking, err := s.getOwned(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status == StatusCancelled || booking.Status == StatusNoShow {
		return nil, &StateConflictError{Message: fmt.Sprintf("a %s booking has no check-in code", statusWord(booking.Status))}
	}

	roomNumber := ""
	if booking.Room != nil {
		roomNumber = booking.Room.RoomNumber
	}
	payload := BuildScanPayload(booking.ID, userEmail, roomNumber, booking.CheckInDate, booking.CheckOutDate)
	return RenderQRCode(payload, size)
}

func (s *service) Scan(ctx context.Context, payload string) (*ScanResponse, error) {
	var (
		booking *Booking
		err     error
	)
	if id, ok := ParseScanPayload(payload); ok {
		booking, err = s.repo.GetByID(ctx, id)
	} else {
		// Not the structured payload; try it as a raw QR token.
		booking, err = s.repo.GetByQRToken(ctx, strings.TrimSpace(payload))
	}
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	switch {
	case booking.Status.CanCheckIn():
		booking.Status = StatusCheckedIn
		booking.CheckInTime = &now
		if err := s.repo.Save(ctx, booking); err != nil {
			return nil, fmt.Errorf("failed to check in: %w", err)
		}
		s.logger.LogCheckIn(ctx, booking.ID)
		return &ScanResponse{
			Action:  ScanActionCheckedIn,
			Message: "guest checked in",
			Booking: toBookingResponse(booking),
		}, nil

	case booking.Status == StatusCheckedIn:
		if booking.CheckInTime != nil && sameUTCDay(*booking.CheckInTime, now) {
			return nil, &StateConflictError{Message: "cannot check out on the same day as check-in"}
		}
		booking.Status = StatusCheckedOut
		booking.CheckOutTime = &now
		if err := s.repo.Save(ctx, booking); err != nil {
			return nil, fmt.Errorf("failed to check out: %w", err)
		}
		s.logger.LogCheckOut(ctx, booking.ID)
		return &ScanResponse{
			Action:  ScanActionCheckedOut,
			Message: "guest checked out",
			Booking: toBookingResponse(booking),
		}, nil

	case booking.Status == StatusCheckedOut:
		return &ScanResponse{
			Action:  ScanActionAlreadyCheckedOut,
			Message: "booking is already checked out",
			Booking: toBookingResponse(booking),
		}, nil

	default:
		return nil, &StateConflictError{Message: fmt.Sprintf("a %s booking cannot be scanned", statusWord(booking.Status))}
	}
}

func (s *service) GetSummary(ctx context.Context, bookingID uint) (*Summary, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	summary := &Summary{
		ID:     booking.ID,
		UserID: booking.UserID,
		Status: string(booking.Status),
	}
	if booking.Room != nil && booking.Room.RoomType != nil {
		summary.HotelID = booking.Room.RoomType.HotelID
	}
	return summary, nil
}

// getOwned loads a booking and hides other users' bookings behind
// not-found.
func (s *service) getOwned(ctx context.Context, userID uint, bookingID uint) (*Booking, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

func validatePaymentDetails(req PayBookingRequest) error {
	switch PaymentMethod(req.PaymentMethod) {
	case PaymentMethodCreditCard:
		if req.CardNumber == "" || req.CardHolder == "" || req.CardExpiry == "" || req.CardCVV == "" {
			return &ValidationError{Message: "card number, holder, expiry and CVV are required for credit card payments"}
		}
		expiry, err := parseCardExpiry(req.CardExpiry)
		if err != nil {
			return &ValidationError{Message: "card expiry must be MM/YY or MM/YYYY"}
		}
		if expiry.Before(time.Now().UTC()) {
			return &ValidationError{Message: "card has expired"}
		}
	case PaymentMethodPayPal:
		if req.PayPalEmail == "" {
			return &ValidationError{Message: "a PayPal email is required for PayPal payments"}
		}
	case PaymentMethodBankTransfer:
		if req.BankName == "" || req.AccountNumber == "" || req.AccountHolder == "" {
			return &ValidationError{Message: "bank name, account number and account holder are required for bank transfers"}
		}
	default:
		return &ValidationError{Message: "unsupported payment method"}
	}
	return nil
}

// parseCardExpiry returns the instant the card stops being valid, i.e.
// the first moment of the month after the one printed on the card.
func parseCardExpiry(value string) (time.Time, error) {
	var parsed time.Time
	var err error
	for _, layout := range []string{"01/06", "01/2006"} {
		parsed, err = time.Parse(layout, value)
		if err == nil {
			return parsed.AddDate(0, 1, 0), nil
		}
	}
	return time.Time{}, err
}

func toBookingResponses(bookings []Booking) []BookingResponse {
	responses := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, *toBookingResponse(&bookings[i]))
	}
	return responses
}

func sameUTCDay(a, b time.Time) bool {
	a, b = a.UTC(), b.UTC()
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func statusWord(s Status) string {
	return strings.ToLower(strings.ReplaceAll(string(s), "_", "-"))
}

// round2 keeps money as two-decimal floats end to end.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
