//go:build darwin && cgo

package screen

/*
#cgo LDFLAGS: -framework CoreGraphics
#include <CoreGraphics/CoreGraphics.h>
*/
import "C"

import "fmt"

const maxDisplays = 32

func platformBounds() ([]bounds, error) {
	var (
		ids   [maxDisplays]C.CGDirectDisplayID
		count C.uint32_t
	)
	if rc := C.CGGetActiveDisplayList(maxDisplays, &ids[0], &count); rc != C.kCGErrorSuccess {
		return nil, fmt.Errorf("CGGetActiveDisplayList returned %d", int(rc))
	}

	out := make([]bounds, 0, int(count))
	for _, id := range ids[:count] {
		r := C.CGDisplayBounds(id)
		out = append(out, bounds{
			x:      int64(r.origin.x),
			y:      int64(r.origin.y),
			width:  int64(r.size.width),
			height: int64(r.size.height),
		})
	}
	return out, nil
}
