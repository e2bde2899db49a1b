package taxonomy

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSeed = errors.New("taxonomy: invalid seed document")
	ErrSource      = errors.New("taxonomy: source unavailable")
)

func seedError(group Group, index int) error {
	return fmt.Errorf("%w: %s[%d] has no code", ErrInvalidSeed, group, index)
}
