package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrInvalidCredentials  = errors.New("invalid terminal credentials")
	ErrTerminalInactive    = errors.New("terminal is inactive")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrValidation            = errors.New("validation failed")
	ErrVersionIsNotSpecified = errors.New("application version is not specified")
	ErrServerIDNotSpecified  = errors.New("server id is not specified")
)
