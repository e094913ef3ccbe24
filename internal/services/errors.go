package services

import "errors"

var (
	// ErrValidation marks user-fixable input problems (400-class).
	ErrValidation = errors.New("validation failed")

	ErrReportNotFound     = errors.New("report not found")
	ErrVolunteerNotFound  = errors.New("volunteer not found")
	ErrEmailTaken         = errors.New("volunteer with this email already exists")
	ErrInvalidCredentials = errors.New("invalid password")
)
