//go:build linux

package settings

import (
	"errors"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xprop"
)

var errNoXKB = errors.New("keyboard repeat needs the XKB extension")

// withDisplay runs fn on a short-lived connection so queries never share state with a
// running capture session.
func withDisplay(op string, fn func(xu *xgbutil.XUtil) (int64, error)) (int64, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return 0, queryFailed(op, err)
	}
	defer xu.Conn().Close()
	v, err := fn(xu)
	if err != nil {
		return 0, queryFailed(op, err)
	}
	return v, nil
}

func pointerControl(op string, pick func(*xproto.GetPointerControlReply) int64) (int64, error) {
	return withDisplay(op, func(xu *xgbutil.XUtil) (int64, error) {
		reply, err := xproto.GetPointerControl(xu.Conn()).Reply()
		if err != nil {
			return 0, err
		}
		return pick(reply), nil
	})
}

// AutoRepeatRate is not available over the core protocol.
func AutoRepeatRate() (int64, error) {
	return 0, queryFailed("auto-repeat rate", errNoXKB)
}

// AutoRepeatDelay is not available over the core protocol.
func AutoRepeatDelay() (int64, error) {
	return 0, queryFailed("auto-repeat delay", errNoXKB)
}

// PointerAccelerationMultiplier returns the acceleration denominator.
func PointerAccelerationMultiplier() (int64, error) {
	return pointerControl("pointer acceleration multiplier", func(r *xproto.GetPointerControlReply) int64 {
		return int64(r.AccelerationDenominator)
	})
}

// PointerAccelerationThreshold returns the motion threshold in pixels.
func PointerAccelerationThreshold() (int64, error) {
	return pointerControl("pointer acceleration threshold", func(r *xproto.GetPointerControlReply) int64 {
		return int64(r.Threshold)
	})
}

// PointerSensitivity returns the acceleration numerator.
func PointerSensitivity() (int64, error) {
	return pointerControl("pointer sensitivity", func(r *xproto.GetPointerControlReply) int64 {
		return int64(r.AccelerationNumerator)
	})
}

// MultiClickTime reads multiClickTime from the root window's resource database.
func MultiClickTime() (int64, error) {
	return withDisplay("multi-click time", func(xu *xgbutil.XUtil) (int64, error) {
		db, err := xprop.PropValStr(xprop.GetProperty(xu, xu.RootWin(), "RESOURCE_MANAGER"))
		if err != nil {
			return 0, err
		}
		return multiClickTimeResource(db)
	})
}
