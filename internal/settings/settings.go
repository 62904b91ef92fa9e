// Package settings reads the input-related parts of the desktop configuration: keyboard
// auto-repeat, pointer acceleration and the multi-click interval.
//
// Every query goes to the operating system on each call. Values are reported in the
// platform's own units, except MultiClickTime which is always milliseconds. A value the
// platform does not expose fails with hookerr.ErrPlatformQueryFailed.
package settings

import (
	"fmt"

	"inputhook/internal/hookerr"
)

// Snapshot holds the result of every query. A field is nil when its query failed.
type Snapshot struct {
	AutoRepeatRate                *int64 `json:"auto_repeat_rate"`
	AutoRepeatDelay               *int64 `json:"auto_repeat_delay"`
	PointerAccelerationMultiplier *int64 `json:"pointer_acceleration_multiplier"`
	PointerAccelerationThreshold  *int64 `json:"pointer_acceleration_threshold"`
	PointerSensitivity            *int64 `json:"pointer_sensitivity"`
	MultiClickTime                *int64 `json:"multi_click_time"`
}

// Read runs all six queries. Failures leave the matching field nil and are returned
// in errs keyed by field name.
func Read() (Snapshot, map[string]error) {
	var snap Snapshot
	errs := make(map[string]error)
	queries := []struct {
		name string
		dst  **int64
		fn   func() (int64, error)
	}{
		{"auto_repeat_rate", &snap.AutoRepeatRate, AutoRepeatRate},
		{"auto_repeat_delay", &snap.AutoRepeatDelay, AutoRepeatDelay},
		{"pointer_acceleration_multiplier", &snap.PointerAccelerationMultiplier, PointerAccelerationMultiplier},
		{"pointer_acceleration_threshold", &snap.PointerAccelerationThreshold, PointerAccelerationThreshold},
		{"pointer_sensitivity", &snap.PointerSensitivity, PointerSensitivity},
		{"multi_click_time", &snap.MultiClickTime, MultiClickTime},
	}
	for _, q := range queries {
		v, err := q.fn()
		if err != nil {
			errs[q.name] = err
			continue
		}
		*q.dst = &v
	}
	return snap, errs
}

func queryFailed(op string, err error) error {
	if err == nil {
		return fmt.Errorf("settings: %s: %w", op, hookerr.ErrPlatformQueryFailed)
	}
	return fmt.Errorf("settings: %s: %w: %w", op, hookerr.ErrPlatformQueryFailed, err)
}
