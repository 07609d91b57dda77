package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type createEventRequest struct {
	Title       string    `json:"title"       validate:"required"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"        validate:"required"`
	Venue       string    `json:"venue"       validate:"required"`
	Capacity    *int      `json:"capacity"    validate:"omitempty,gt=0"`
}

// updateEventRequest is a partial update; absent fields are left untouched.
// Status is deliberately not accepted here — moderation has its own endpoints.
type updateEventRequest struct {
	Title       *string    `json:"title"       validate:"omitempty,min=1"`
	Description *string    `json:"description"`
	Date        *time.Time `json:"date"`
	Venue       *string    `json:"venue"       validate:"omitempty,min=1"`
	Capacity    *int       `json:"capacity"    validate:"omitempty,gt=0"`
}
