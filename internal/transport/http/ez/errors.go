package ez

import (
	"errors"
	"fmt"

	"booking-platform/internal/domain"
	resp "booking-platform/internal/transport/http/response"
)

// AErr is an error already classified for the envelope.
type AErr struct {
	Code int
	Msg  string
	Data any
	Err  error
}

func (e *AErr) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d %s: %v", e.Code, e.Msg, e.Err)
	}
	return fmt.Sprintf("%d %s", e.Code, e.Msg)
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) *AErr          { return &AErr{Code: resp.CodeBadRequest, Msg: msg} }
func NotFound(msg string) *AErr            { return &AErr{Code: resp.CodeNotFound, Msg: msg} }
func Internal(msg string, err error) *AErr { return &AErr{Code: resp.CodeServerError, Msg: msg, Err: err} }

var kindCodes = map[domain.Kind]int{
	domain.KindInvalidRange:              resp.CodeBadRequest,
	domain.KindInvalidAvailabilityRange:  resp.CodeBadRequest,
	domain.KindPastDate:                  resp.CodeBadRequest,
	domain.KindInvalidArgument:           resp.CodeBadRequest,
	domain.KindInvalidQuery:              resp.CodeBadRequest,
	domain.KindOutsideAvailabilityWindow: resp.CodeUnprocessable,
	domain.KindAccommodationNotFound:     resp.CodeNotFound,
	domain.KindHostNotFound:              resp.CodeNotFound,
	domain.KindUserNotFound:              resp.CodeNotFound,
	domain.KindReservationNotFound:       resp.CodeNotFound,
	domain.KindFeedbackNotFound:          resp.CodeNotFound,
	domain.KindDuplicateHost:             resp.CodeConflict,
	domain.KindDuplicateUser:             resp.CodeConflict,
	domain.KindOverlappingReservation:    resp.CodeConflict,
	domain.KindStorage:                   resp.CodeServerError,
}

// ErrorBody is the data part of a failed envelope.
type ErrorBody struct {
	Kind    domain.Kind    `json:"kind"`
	Details map[string]any `json:"details,omitempty"`
}

// FromError classifies err. Storage and unknown errors keep their cause
// out of the message.
func FromError(err error) *AErr {
	var ae *AErr
	if errors.As(err, &ae) {
		return ae
	}
	var de *domain.Error
	if errors.As(err, &de) {
		code, ok := kindCodes[de.Kind]
		if !ok {
			code = resp.CodeServerError
		}
		msg := de.Message
		if code == resp.CodeServerError {
			msg = resp.CodeMsgMap[code]
		}
		return &AErr{Code: code, Msg: msg, Data: ErrorBody{Kind: de.Kind, Details: de.Details}, Err: err}
	}
	return Internal(resp.CodeMsgMap[resp.CodeServerError], err)
}
