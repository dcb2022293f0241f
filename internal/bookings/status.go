package bookings

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusConfirmed  Status = "CONFIRMED"
	StatusCancelled  Status = "CANCELLED"
	StatusCheckedIn  Status = "CHECKED_IN"
	StatusCheckedOut Status = "CHECKED_OUT"
	StatusNoShow     Status = "NO_SHOW"
)

// IsValid checks if the booking status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCheckedIn, StatusCheckedOut, StatusNoShow:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further transitions are possible. Terminal
// bookings no longer block a room's availability.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCancelled, StatusCheckedOut, StatusNoShow:
		return true
	}
	return false
}

// CanBeCancelled checks if a booking with this status can be cancelled.
// Only unpaid-or-paid-but-not-yet-checked-in Pending bookings qualify.
func (s Status) CanBeCancelled() bool {
	return s == StatusPending
}

// CanCheckIn reports whether a QR scan may advance this booking to
// checked-in.
func (s Status) CanCheckIn() bool {
	return s == StatusPending || s == StatusConfirmed
}

// ActiveStatuses are the states that block a room for overlapping dates.
func ActiveStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed, StatusCheckedIn}
}

// TerminalStatuses as raw strings, for availability predicates.
func TerminalStatuses() []string {
	return []string{string(StatusCancelled), string(StatusCheckedOut), string(StatusNoShow)}
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
)

type PaymentMethod string

const (
	PaymentMethodCreditCard   PaymentMethod = "CREDIT_CARD"
	PaymentMethodPayPal       PaymentMethod = "PAYPAL"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCreditCard, PaymentMethodPayPal, PaymentMethodBankTransfer:
		return true
	}
	return false
}

// OriginKind records how a booking was priced. Stored explicitly rather
// than inferred from price arithmetic.
type OriginKind string

const (
	OriginRoom    OriginKind = "ROOM"
	OriginPackage OriginKind = "PACKAGE"
)
