package catalog

import (
	"errors"
	"fmt"
)

// Validation error codes.
const (
	CodeEmptyCatalog         = "EMPTY_CATALOG"
	CodeEmptyLanes           = "EMPTY_LANES"
	CodeInvalidName          = "INVALID_NAME"
	CodeInvalidShields       = "INVALID_SHIELDS"
	CodeInvalidSpeed         = "INVALID_SPEED"
	CodeInvalidPowerUpChance = "INVALID_POWERUP_CHANCE"
	CodeLaneOutOfRange       = "LANE_OUT_OF_RANGE"
)

// ValidationError describes a catalog that must not start a session.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// IsValidationError reports whether err (or anything it wraps) is a
// ValidationError, optionally with the given code. Pass "" for any code.
func IsValidationError(err error, code string) bool {
	var ve ValidationError
	if !errors.As(err, &ve) {
		return false
	}
	return code == "" || ve.Code == code
}
