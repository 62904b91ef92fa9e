package screen

import (
	"errors"
	"testing"

	"inputhook/internal/hookerr"
)

func TestFromBounds(t *testing.T) {
	raw := []bounds{
		{x: 0, y: 0, width: 1920, height: 1080},
		{x: -1280, y: 120, width: 1280, height: 1024},
	}
	got, err := fromBounds(raw)
	if err != nil {
		t.Fatalf("fromBounds() error = %v", err)
	}
	want := []ScreenInfo{
		{Index: 0, X: 0, Y: 0, Width: 1920, Height: 1080},
		{Index: 1, X: -1280, Y: 120, Width: 1280, Height: 1024},
	}
	if len(got) != len(want) {
		t.Fatalf("Expected %d screens, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("screen %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestFromBoundsNeverPartial(t *testing.T) {
	cases := []struct {
		name string
		raw  []bounds
	}{
		{"empty", nil},
		{"origin out of range", []bounds{{width: 800, height: 600}, {x: 40000, width: 800, height: 600}}},
		{"zero size", []bounds{{width: 800, height: 600}, {width: 0, height: 600}}},
		{"too tall", []bounds{{width: 800, height: 70000}}},
		{"too many", make([]bounds, 257)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := fromBounds(c.raw)
			if !errors.Is(err, hookerr.ErrPlatformQueryFailed) {
				t.Errorf("Expected ErrPlatformQueryFailed, got %v", err)
			}
			if got != nil {
				t.Errorf("Expected no screens, got %v", got)
			}
		})
	}
}

func TestListScreensResult(t *testing.T) {
	screens, err := ListScreens()
	if err != nil {
		if !errors.Is(err, hookerr.ErrPlatformQueryFailed) {
			t.Fatalf("Expected ErrPlatformQueryFailed, got %v", err)
		}
		t.Skipf("no display available: %v", err)
	}
	for i, s := range screens {
		if int(s.Index) != i {
			t.Errorf("Expected index %d, got %d", i, s.Index)
		}
		if s.Width == 0 || s.Height == 0 {
			t.Errorf("screen %d has empty size", i)
		}
	}
}
