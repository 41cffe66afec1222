package repository

import "errors"

var (
	ErrInvalidRuleData = errors.New("invalid rule data")
)
