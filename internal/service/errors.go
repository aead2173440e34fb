package service

import "errors"

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when the request clashes with current state
	ErrConflict = errors.New("resource conflict")

	// ErrUnauthorized is returned when no agent is attached to the request
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the agent may not act on a resource
	ErrForbidden = errors.New("forbidden")
)

// Entity lookups. Each wraps ErrNotFound so handlers can map them in one place.
var (
	ErrTourNotFound     = notFound("tour not found")
	ErrDiscountNotFound = notFound("discount not found")
	ErrHotelNotFound    = notFound("hotel not found")
	ErrRoomNotFound     = notFound("room not found")
	ErrBookingNotFound  = notFound("booking not found")
	ErrInquiryNotFound  = notFound("inquiry not found")
	ErrImageNotFound    = notFound("image not found")
)

var (
	// ErrDiscountNotApplicable is returned when a booking names an offer the agent may not use
	ErrDiscountNotApplicable = errors.New("discount is not applicable")

	// ErrInvalidDateRange is returned when check-out is not after check-in
	ErrInvalidDateRange = errors.New("check-out must be after check-in")

	// ErrRoomNotInHotel is returned when a booking names a room of another hotel
	ErrRoomNotInHotel = errors.New("room does not belong to hotel")

	// ErrBookingTargetRequired is returned when a booking names neither a tour nor a hotel
	ErrBookingTargetRequired = errors.New("booking needs a tour or a hotel")

	// ErrBookingCancelled is returned when changing a cancelled booking
	ErrBookingCancelled = errors.New("booking is cancelled")

	// ErrNoImages is returned when an upload request carries no files
	ErrNoImages = errors.New("no images in request")

	// ErrAllImagesFailed is returned alongside the result when every file of an upload failed
	ErrAllImagesFailed = errors.New("no image could be stored")
)

type notFoundError struct{ msg string }

func notFound(msg string) error { return &notFoundError{msg} }

func (e *notFoundError) Error() string { return e.msg }

func (e *notFoundError) Is(target error) bool { return target == ErrNotFound }
