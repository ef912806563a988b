package mask

import (
	"fmt"
	"strings"
)

// Mode selects the adjacency scheme used for reduction.
type Mode int

const (
	// Mode2x2 reduces to four corner bits (16 masks).
	Mode2x2 Mode = iota
	// Mode3x3 reduces to one of the 47 blob shapes.
	Mode3x3
)

// Max is the largest mask a table in this mode may hold.
func (m Mode) Max() uint32 {
	if m == Mode2x2 {
		return 1<<4 - 1
	}
	return 1<<9 - 1
}

func (m Mode) String() string {
	switch m {
	case Mode2x2:
		return "2x2"
	case Mode3x3:
		return "3x3"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts "2x2" or "3x3".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "2x2":
		return Mode2x2, nil
	case "3x3":
		return Mode3x3, nil
	default:
		return 0, fmt.Errorf("unknown mask mode %q: must be '2x2' or '3x3'", s)
	}
}

// MaskRangeError reports a mask that does not fit the configured mode.
type MaskRangeError struct {
	Mask uint32
	Mode Mode
}

func (e *MaskRangeError) Error() string {
	return fmt.Sprintf("mask %d is out of range for %s mode (max %d)", e.Mask, e.Mode, e.Mode.Max())
}

// CheckRange returns a *MaskRangeError when mask exceeds mode's range.
func CheckRange(mask uint32, mode Mode) error {
	if mask > mode.Max() {
		return &MaskRangeError{Mask: mask, Mode: mode}
	}
	return nil
}
