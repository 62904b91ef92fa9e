package input

import (
	"testing"
	"time"

	"inputhook/internal/event"
)

func TestClickCounterCountsRepeatedPresses(t *testing.T) {
	c := NewClickCounter(200 * time.Millisecond)

	if got := c.Press(event.Button1, 1000, 10, 10); got != 1 {
		t.Errorf("Expected first press to count 1, got %d", got)
	}
	if clicks, clicked := c.Release(event.Button1, 10, 10); clicks != 1 || !clicked {
		t.Errorf("Expected click with count 1, got %d, %v", clicks, clicked)
	}
	if got := c.Press(event.Button1, 1150, 10, 10); got != 2 {
		t.Errorf("Expected double click count 2, got %d", got)
	}
	if got := c.Press(event.Button1, 1300, 10, 10); got != 3 {
		t.Errorf("Expected triple click count 3, got %d", got)
	}
}

func TestClickCounterResets(t *testing.T) {
	cases := []struct {
		name   string
		second func(c *ClickCounter) uint16
	}{
		{"interval expired", func(c *ClickCounter) uint16 {
			return c.Press(event.Button1, 1201, 10, 10)
		}},
		{"different button", func(c *ClickCounter) uint16 {
			return c.Press(event.Button2, 1050, 10, 10)
		}},
		{"pointer moved", func(c *ClickCounter) uint16 {
			c.Move(20, 10)
			return c.Press(event.Button1, 1050, 20, 10)
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewClickCounter(200 * time.Millisecond)
			c.Press(event.Button1, 1000, 10, 10)
			c.Release(event.Button1, 10, 10)
			if got := tc.second(c); got != 1 {
				t.Errorf("Expected count to reset to 1, got %d", got)
			}
		})
	}
}

func TestClickCounterNoClickAfterDrag(t *testing.T) {
	c := NewClickCounter(0)
	if c.Interval != DefaultMultiClickInterval {
		t.Errorf("Expected default interval, got %v", c.Interval)
	}
	c.Press(event.Button1, 1000, 10, 10)
	c.Move(50, 50)
	if got := c.Count(); got != 0 {
		t.Errorf("Expected motion to report count 0, got %d", got)
	}
	if clicks, clicked := c.Release(event.Button1, 50, 50); clicked || clicks != 1 {
		t.Errorf("Expected release to keep the press count without a click, got %d, %v", clicks, clicked)
	}
}

func TestClickCounterDragKeepsMultiClickCount(t *testing.T) {
	c := NewClickCounter(200 * time.Millisecond)
	c.Press(event.Button1, 1000, 10, 10)
	c.Release(event.Button1, 10, 10)
	if got := c.Press(event.Button1, 1100, 10, 10); got != 2 {
		t.Fatalf("Expected double click count 2, got %d", got)
	}
	c.Move(11, 10)
	if clicks, clicked := c.Release(event.Button1, 11, 10); clicks != 2 || clicked {
		t.Errorf("Expected release after drag to report 2 without a click, got %d, %v", clicks, clicked)
	}
	if got := c.Press(event.Button1, 1150, 11, 10); got != 1 {
		t.Errorf("Expected drag to end the multi-click sequence, got %d", got)
	}
}

func TestModifierStateTracksKeysAndButtons(t *testing.T) {
	var s ModifierState
	s.Key(event.VCShiftL, true)
	s.Key(event.VCControlR, true)
	s.Button(event.Button1, true)

	want := event.MaskShiftL | event.MaskCtrlR | event.MaskButton1
	if s.Mask() != want {
		t.Errorf("Expected %s, got %s", want, s.Mask())
	}

	s.Key(event.VCShiftL, false)
	s.Button(event.Button1, false)
	if s.Mask() != event.MaskCtrlR {
		t.Errorf("Expected Ctrl-R only, got %s", s.Mask())
	}

	if got := s.Key(event.VCA, true); got != event.MaskCtrlR {
		t.Errorf("Expected ordinary key to leave mask alone, got %s", got)
	}
}

func TestModifierStateLocksToggleOnPress(t *testing.T) {
	var s ModifierState
	s.SetLocks(true, false, false)
	if !s.Mask().Has(event.MaskNumLock) {
		t.Fatalf("Expected NumLock seeded")
	}

	s.Key(event.VCCapsLock, true)
	s.Key(event.VCCapsLock, false)
	if !s.Mask().Has(event.MaskCapsLock) {
		t.Errorf("Expected CapsLock on after one tap")
	}
	s.Key(event.VCCapsLock, true)
	if s.Mask().Has(event.MaskCapsLock) {
		t.Errorf("Expected CapsLock off after second tap")
	}
}

func TestModifierFor(t *testing.T) {
	if ModifierFor(event.VCAltR) != event.MaskAltR {
		t.Errorf("Expected Alt-R bit for VCAltR")
	}
	if ModifierFor(event.VCScrollLock) != event.MaskScrollLock {
		t.Errorf("Expected ScrollLock bit for VCScrollLock")
	}
	if ModifierFor(event.VCSpace) != 0 {
		t.Errorf("Expected no bit for VCSpace")
	}
}
