package services

import "errors"

const (
	BookingStatusPending    = "pending"
	BookingStatusConfirmed  = "confirmed"
	BookingStatusInProgress = "in-progress"
	BookingStatusCompleted  = "completed"
	BookingStatusCancelled  = "cancelled"
	BookingStatusNoShow     = "no-show"
)

const (
	PaymentStatusPending  = "pending"
	PaymentStatusRefunded = "refunded"
)

// ActiveStatuses occupy the tutor's calendar: slots overlapping these are
// never offered as available.
var ActiveStatuses = []string{BookingStatusConfirmed, BookingStatusInProgress}

// BlockingStatuses guard booking creation and reschedule. Pending requests
// also block, so two students racing for the same interval cannot both end
// up awaiting the tutor's confirmation.
var BlockingStatuses = []string{BookingStatusPending, BookingStatusConfirmed, BookingStatusInProgress}

var ErrInvalidTransition = errors.New("transition not allowed from current status")

type Command string

const (
	CommandConfirm  Command = "confirm"
	CommandStart    Command = "start"
	CommandComplete Command = "complete"
	CommandCancel   Command = "cancel"
	CommandNoShow   Command = "no-show"
)

// transitions is the full lifecycle table. Terminal statuses (completed,
// cancelled, no-show) have no row and so reject every command.
var transitions = map[string]map[Command]string{
	BookingStatusPending: {
		CommandConfirm: BookingStatusConfirmed,
		CommandCancel:  BookingStatusCancelled,
		CommandNoShow:  BookingStatusNoShow,
	},
	BookingStatusConfirmed: {
		CommandStart:    BookingStatusInProgress,
		CommandComplete: BookingStatusCompleted,
		CommandCancel:   BookingStatusCancelled,
		CommandNoShow:   BookingStatusNoShow,
	},
	BookingStatusInProgress: {
		CommandComplete: BookingStatusCompleted,
		CommandCancel:   BookingStatusCancelled,
		CommandNoShow:   BookingStatusNoShow,
	},
}

// NextStatus resolves a lifecycle command against the transition table.
// It never mutates anything; callers apply the returned status themselves.
func NextStatus(current string, cmd Command) (string, error) {
	row, ok := transitions[current]
	if !ok {
		return "", ErrInvalidTransition
	}
	next, ok := row[cmd]
	if !ok {
		return "", ErrInvalidTransition
	}
	return next, nil
}

// IsTerminal reports whether no further transitions are possible.
func IsTerminal(status string) bool {
	_, ok := transitions[status]
	return !ok
}

// CanReschedule limits rescheduling to bookings that have not started.
func CanReschedule(status string) bool {
	return status == BookingStatusPending || status == BookingStatusConfirmed
}
