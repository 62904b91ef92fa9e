//go:build !windows && !linux && !(darwin && cgo)

package settings

import "inputhook/internal/hookerr"

func AutoRepeatRate() (int64, error) {
	return 0, queryFailed("auto-repeat rate", hookerr.ErrUnsupportedPlatform)
}

func AutoRepeatDelay() (int64, error) {
	return 0, queryFailed("auto-repeat delay", hookerr.ErrUnsupportedPlatform)
}

func PointerAccelerationMultiplier() (int64, error) {
	return 0, queryFailed("pointer acceleration multiplier", hookerr.ErrUnsupportedPlatform)
}

func PointerAccelerationThreshold() (int64, error) {
	return 0, queryFailed("pointer acceleration threshold", hookerr.ErrUnsupportedPlatform)
}

func PointerSensitivity() (int64, error) {
	return 0, queryFailed("pointer sensitivity", hookerr.ErrUnsupportedPlatform)
}

func MultiClickTime() (int64, error) {
	return 0, queryFailed("multi-click time", hookerr.ErrUnsupportedPlatform)
}
