package domain

import "errors"

var (
	ErrRateConfigMissing = errors.New("rate configuration missing for scheme")
	ErrInvalidRateConfig = errors.New("invalid rate configuration")
	ErrUnknownField      = errors.New("unknown form field")
	ErrInvalidProfile    = errors.New("salary profile does not match expected format")
	ErrInvalidTrigger    = errors.New("unknown validation trigger")
	ErrSessionNotFound   = errors.New("form session not found")
	ErrRateSheetInvalid  = errors.New("rate sheet does not match expected layout")
	ErrMalformedNumber   = errors.New("value is not a plain decimal number")
)
