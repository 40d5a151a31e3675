package apierror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is what services hand back to routes instead of raw
// errors: an HTTP status, a user-facing message, and (for validation
// failures) per-field messages for re-rendering the form.
type ErrorResponse interface {
	Code() int
	Message() string
	Fields() map[string]string
}

type simpleError struct {
	code    int
	message string
}

func (s *simpleError) Code() int                 { return s.code }
func (s *simpleError) Message() string           { return s.message }
func (s *simpleError) Fields() map[string]string { return nil }

func NewSimple(code int, message string) ErrorResponse {
	return &simpleError{code: code, message: message}
}

func NewMissingParamError(name string) ErrorResponse {
	return NewSimple(http.StatusBadRequest, fmt.Sprintf("Missing required parameter %q", name))
}

var (
	InternalServerError = NewSimple(http.StatusInternalServerError, "Something went wrong, please try again")
	MalformedFormError  = NewSimple(http.StatusBadRequest, "Could not understand the submitted form")
	NotFoundError       = NewSimple(http.StatusNotFound, "Not found")
	AccessDeniedError   = NewSimple(http.StatusForbidden, "You do not have access to this page")
	UnknownIntentError  = NewSimple(http.StatusBadRequest, "Unknown form intent")

	EndBeforeStartError = NewSimple(http.StatusBadRequest, "End time must be after the start time")
	BreakTooLongError   = NewSimple(http.StatusBadRequest, "Break cannot exceed the worked time span")

	RegistrationFailedError = NewSimple(http.StatusInternalServerError, "Registration failed")
	ReportFailedError       = NewSimple(http.StatusInternalServerError, "Report submission failed")
	InviteFailedError       = NewSimple(http.StatusInternalServerError, "Invite failed")
	DeletionFailedError     = NewSimple(http.StatusInternalServerError, "Deletion failed")

	ScheduleNotOwnedError    = NewSimple(http.StatusNotFound, "Schedule not found")
	ScheduleNotEndedError    = NewSimple(http.StatusConflict, "The schedule has not ended yet")
	ReportExistsError        = NewSimple(http.StatusConflict, "A report was already filed for this schedule")
	MemberNotEligibleError   = NewSimple(http.StatusConflict, "This address is not a workspace member")
	MemberAlreadyExistsError = NewSimple(http.StatusConflict, "A member with this email already exists")
)

type validationError struct {
	fields map[string]string
}

func (v *validationError) Code() int                 { return http.StatusBadRequest }
func (v *validationError) Message() string           { return "Some fields are invalid" }
func (v *validationError) Fields() map[string]string { return v.fields }

// FromValidationError converts a validator.ValidationErrors into
// per-field messages keyed by the struct field's form name.
func FromValidationError(err error) ErrorResponse {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return MalformedFormError
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return &validationError{fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "iso8601":
		return "Must be an RFC 3339 timestamp"
	case "min":
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "gtefield":
		return fmt.Sprintf("Must not be before %s", fe.Param())
	default:
		return "Invalid value"
	}
}
