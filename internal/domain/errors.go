package domain

import "errors"

var (
	ErrMalformedTime        = errors.New("malformed HH:mm time")
	ErrInvalidTimeRange     = errors.New("hour or minute out of range")
	ErrInvalidConfiguration = errors.New("invalid notification settings")
	ErrRuleNotFound         = errors.New("rule not found")
)
