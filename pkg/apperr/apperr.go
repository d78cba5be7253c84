package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a business failure with a machine-readable code and the HTTP
// status the handler layer should answer with.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

// WithMessagef returns a copy of e with a formatted message, so the sentinel
// values below stay comparable via errors.Is.
func (e *Error) WithMessagef(format string, args ...interface{}) *Error {
	clone := *e
	clone.Message = fmt.Sprintf(format, args...)
	return &clone
}

// Is matches by code so wrapped copies still compare equal to the sentinel.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// As extracts an *Error from an error chain.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

func notFound(code, message string) *Error {
	return &Error{Code: code, Message: message, Status: http.StatusNotFound}
}

func conflict(code, message string) *Error {
	return &Error{Code: code, Message: message, Status: http.StatusConflict}
}

// Not-found taxonomy.
var (
	ErrRoomNotFound         = notFound("room_not_found", "room not found")
	ErrStudentNotFound      = notFound("student_not_found", "student not found")
	ErrContractNotFound     = notFound("contract_not_found", "contract not found")
	ErrContractTypeNotFound = notFound("contract_type_not_found", "contract type not found")
	ErrServiceNotFound      = notFound("service_not_found", "service not found")
	ErrPaymentNotFound      = notFound("payment_not_found", "payment not found")
	ErrUserNotFound         = notFound("user_not_found", "user not found")
)

// Business-rule taxonomy.
var (
	ErrCapacityExceeded   = conflict("capacity_exceeded", "room is already at maximum capacity")
	ErrStudentHoused      = conflict("student_already_housed", "student is already assigned to a room")
	ErrContractPending    = conflict("contract_pending", "student already has a pending contract")
	ErrContractActive     = conflict("contract_still_active", "student already has an active contract")
	ErrExceedsGraduation  = conflict("exceeds_graduation", "contract end date exceeds the student's graduation date")
	ErrAlreadyConfirmed   = conflict("already_confirmed", "contract has already been confirmed")
	ErrInvalidTransition  = conflict("invalid_state_transition", "contract is not in a state that allows this transition")
	ErrNotCheckedIn       = conflict("not_checked_in", "contract has no recorded check-in date")
	ErrCannotDelete       = conflict("cannot_delete", "only pending contracts can be deleted")
	ErrServiceNotAttached = conflict("service_not_attached", "service is not attached to this contract")
	ErrDuplicateRoom      = conflict("duplicate_room", "a room with this name and floor already exists")
	ErrDuplicateStudent   = conflict("duplicate_student", "a student with this code already exists")
)

// ErrInvalidAmount rejects non-positive settlement amounts.
var ErrInvalidAmount = &Error{
	Code:    "invalid_amount",
	Message: "amount must be positive",
	Status:  http.StatusBadRequest,
}

// ErrInvalidUnit rejects unknown contract type duration units.
var ErrInvalidUnit = &Error{
	Code:    "invalid_unit",
	Message: "unit must be YEAR, MONTH or DAY",
	Status:  http.StatusBadRequest,
}

// ErrOccupancyUnderflow means a decrement would push a room's registered
// count below zero. That is a prior invariant breach, not a caller error.
var ErrOccupancyUnderflow = &Error{
	Code:    "occupancy_underflow",
	Message: "room occupancy would become negative",
	Status:  http.StatusInternalServerError,
}
