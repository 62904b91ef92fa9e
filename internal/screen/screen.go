// Package screen enumerates the attached displays.
package screen

import (
	"errors"
	"fmt"
	"math"

	"inputhook/internal/hookerr"
)

// ScreenInfo describes one display in virtual desktop coordinates.
type ScreenInfo struct {
	Index  uint8  `json:"index"`
	X      int16  `json:"x"`
	Y      int16  `json:"y"`
	Width  uint16 `json:"width"`
	Height uint16 `json:"height"`
}

// bounds is a display rectangle as reported by the platform, before range checks.
type bounds struct {
	x, y          int64
	width, height int64
}

// ListScreens returns one entry per active display in platform enumeration order. The
// result is never cached and never partial: any failure yields hookerr.ErrPlatformQueryFailed.
func ListScreens() ([]ScreenInfo, error) {
	raw, err := platformBounds()
	if err != nil {
		return nil, queryFailed(err)
	}
	return fromBounds(raw)
}

func fromBounds(raw []bounds) ([]ScreenInfo, error) {
	if len(raw) == 0 {
		return nil, queryFailed(errors.New("no active displays"))
	}
	if len(raw) > math.MaxUint8+1 {
		return nil, queryFailed(fmt.Errorf("%d displays exceed the index range", len(raw)))
	}

	screens := make([]ScreenInfo, 0, len(raw))
	for i, b := range raw {
		if b.x < math.MinInt16 || b.x > math.MaxInt16 || b.y < math.MinInt16 || b.y > math.MaxInt16 {
			return nil, queryFailed(fmt.Errorf("display %d origin (%d,%d) out of range", i, b.x, b.y))
		}
		if b.width <= 0 || b.width > math.MaxUint16 || b.height <= 0 || b.height > math.MaxUint16 {
			return nil, queryFailed(fmt.Errorf("display %d size %dx%d out of range", i, b.width, b.height))
		}
		screens = append(screens, ScreenInfo{
			Index:  uint8(i),
			X:      int16(b.x),
			Y:      int16(b.y),
			Width:  uint16(b.width),
			Height: uint16(b.height),
		})
	}
	return screens, nil
}

func queryFailed(err error) error {
	return fmt.Errorf("screen: list screens: %w: %w", hookerr.ErrPlatformQueryFailed, err)
}
