package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the boundary can map it without parsing messages.
type Kind string

const (
	KindInvalidRange              Kind = "INVALID_RANGE"
	KindInvalidAvailabilityRange  Kind = "INVALID_AVAILABILITY_RANGE"
	KindPastDate                  Kind = "PAST_DATE"
	KindOutsideAvailabilityWindow Kind = "OUTSIDE_AVAILABILITY_WINDOW"
	KindOverlappingReservation    Kind = "OVERLAPPING_RESERVATION"

	KindAccommodationNotFound Kind = "ACCOMMODATION_NOT_FOUND"
	KindHostNotFound          Kind = "HOST_NOT_FOUND"
	KindUserNotFound          Kind = "USER_NOT_FOUND"
	KindReservationNotFound   Kind = "RESERVATION_NOT_FOUND"
	KindFeedbackNotFound      Kind = "FEEDBACK_NOT_FOUND"

	KindDuplicateHost Kind = "DUPLICATE_HOST"
	KindDuplicateUser Kind = "DUPLICATE_USER"

	KindInvalidArgument Kind = "INVALID_ARGUMENT"
	KindInvalidQuery    Kind = "INVALID_QUERY"
	KindStorage         Kind = "STORAGE_ERROR"
)

// Error is the single error type returned by services and repositories.
type Error struct {
	Kind    Kind
	Message string
	Details map[string]any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error of the same kind, so errors.Is(err, &Error{Kind: k}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func NewError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// With attaches a detail value for the boundary to render.
func (e *Error) With(key string, v any) *Error {
	if e.Details == nil {
		e.Details = map[string]any{}
	}
	e.Details[key] = v
	return e
}

// KindOf returns the kind of err, or "" when err is not a *Error.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

func IsKind(err error, k Kind) bool { return err != nil && KindOf(err) == k }

func InvalidArgument(format string, args ...any) *Error {
	return NewError(KindInvalidArgument, fmt.Sprintf(format, args...))
}

func Storage(op string, err error) *Error {
	return &Error{Kind: KindStorage, Message: op, Err: err}
}

func UserNotFound(field string, v any) *Error {
	return NewError(KindUserNotFound, fmt.Sprintf("user not found: %s=%v", field, v)).With(field, v)
}

func HostNotFound(id int64) *Error {
	return NewError(KindHostNotFound, fmt.Sprintf("host %d not found", id)).With("hostId", id)
}

func AccommodationNotFound(id int64) *Error {
	return NewError(KindAccommodationNotFound, fmt.Sprintf("accommodation %d not found", id)).With("accommodationId", id)
}

func ReservationNotFound(id int64) *Error {
	return NewError(KindReservationNotFound, fmt.Sprintf("reservation %d not found", id)).With("reservationId", id)
}

func FeedbackNotFound(id int64) *Error {
	return NewError(KindFeedbackNotFound, fmt.Sprintf("feedback %d not found", id)).With("feedbackId", id)
}

func DuplicateHost(userID int64) *Error {
	return NewError(KindDuplicateHost, fmt.Sprintf("user %d is already a host", userID)).With("userId", userID)
}

func DuplicateUser(email string) *Error {
	return NewError(KindDuplicateUser, fmt.Sprintf("email %s already registered", email)).With("email", email)
}
