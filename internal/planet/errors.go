package planet

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrUnknownSurfaceType = errors.New("planet: unknown surface type")
	ErrSeedOutOfRange     = errors.New("planet: seed out of 32-bit range")
	ErrInvalidSeed        = errors.New("planet: seed is not an integer")
)

// ParseSeed parses a decimal 32-bit seed.
func ParseSeed(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %s", ErrSeedOutOfRange, s)
		}
		return 0, fmt.Errorf("%w: %q", ErrInvalidSeed, s)
	}
	return int32(v), nil
}
