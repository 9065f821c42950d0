package errors

import (
	"bytes"
	"strings"
)

// ErrorCode represents a specific error code in the system.
type ErrorCode string

const (
	// GeneralInternalServerError represents a generic internal error.
	GeneralInternalServerError ErrorCode = "general_internal_server_error"
	// GeneralBadRequestError represents a generic bad request error.
	GeneralBadRequestError ErrorCode = "general_bad_request_error"

	// InvalidCommandError represents a command line that does not match any grammar.
	InvalidCommandError ErrorCode = "invalid_command"
	// UnknownVerbError represents a command line whose verb is not recognized.
	UnknownVerbError ErrorCode = "unknown_verb"
	// InvalidPriceError represents a non-numeric or non-positive price token.
	InvalidPriceError ErrorCode = "invalid_price"
	// InvalidQuantityError represents a non-numeric or non-positive quantity token.
	InvalidQuantityError ErrorCode = "invalid_quantity"
	// UnknownTimeInForceError represents a time-in-force token that is neither IOC nor GFD.
	UnknownTimeInForceError ErrorCode = "unknown_time_in_force"
	// UnknownSideError represents a side token that is neither BUY nor SELL.
	UnknownSideError ErrorCode = "unknown_side"
	// EmptyOrderIDError represents a missing order id token.
	EmptyOrderIDError ErrorCode = "empty_order_id"

	// UnknownOrderError represents a reference to an order id that is not resting in the book.
	UnknownOrderError ErrorCode = "unknown_order"
	// DuplicateOrderError represents an incoming order whose id is already resting in the book.
	DuplicateOrderError ErrorCode = "duplicate_order_id"

	// SinkWriteError represents a failure to append to the trade/snapshot sink.
	SinkWriteError ErrorCode = "sink_write_error"
	// CommandSourceError represents a failure while reading from the command source.
	CommandSourceError ErrorCode = "command_source_error"
)

// Severity represents the severity level of an error.
type Severity string

const (
	// SeverityCritical indicates a critical error that requires immediate attention.
	SeverityCritical Severity = "critical"
	// SeverityHigh indicates a high severity error that should be addressed promptly.
	SeverityHigh Severity = "high"
	// SeverityMedium indicates a medium severity error that should be addressed in due course.
	SeverityMedium Severity = "medium"
	// SeverityLow indicates a low severity error that can be addressed at a later time.
	SeverityLow Severity = "low"
)

// Category represents the category of an error.
type Category string

const (
	// CategoryValidation indicates an error related to validation of input data.
	CategoryValidation Category = "validation"
	// CategoryBusinessLogic indicates an error related to business logic processing.
	CategoryBusinessLogic Category = "business_logic"
	// CategoryExternal indicates an error related to external services or IO.
	CategoryExternal Category = "external"
	// CategoryUnknown indicates an unknown error category.
	CategoryUnknown Category = "unknown"
)

// BaseError is an `error` type containing an array of ErrorDetails.
// This error provides basic functions for performing transformations
// on a list of ErrorDetails.
type BaseError struct {
	details []*ErrorDetails
}

// NewBaseError create BaseError with ErrorDetails
func NewBaseError(details ...*ErrorDetails) *BaseError {
	return &BaseError{details: details}
}

// AddErrorDetails add more ErrorDetails to BaseError
func (b *BaseError) AddErrorDetails(errors ...*ErrorDetails) {
	b.details = append(b.details, errors...)
}

// GetDetails get array ErrorDetails on BaseError
func (b *BaseError) GetDetails() []*ErrorDetails {
	return b.details
}

// Error implement error interface
func (b *BaseError) Error() string {
	buff := bytes.NewBufferString("")
	buff.WriteString("Error on\n")
	for _, err := range b.details {
		buff.WriteString("code: ")
		buff.WriteString(err.Code)
		buff.WriteString("; error: ")
		buff.WriteString(err.Error())
		buff.WriteString("; field: ")
		buff.WriteString(err.Field)
		buff.WriteString("\n")
	}

	return strings.TrimSpace(buff.String())
}
