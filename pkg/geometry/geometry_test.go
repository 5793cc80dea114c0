package geometry

import (
	"testing"
)

func TestParseMode(t *testing.T) {
	cases := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"fit", Fit, false},
		{"Fill", Fill, false},
		{"STRETCH", Stretch, false},
		{"cover", "", true},
		{"", "", true},
	}

	for _, tc := range cases {
		got, err := ParseMode(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseMode(%q) expected error, got %v", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMode(%q) unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestComputeStretch(t *testing.T) {
	sizes := [][4]int{
		{400, 300, 200, 200},
		{100, 900, 688, 459},
		{1, 1, 2400, 1200},
	}

	for _, s := range sizes {
		l := Compute(s[0], s[1], s[2], s[3], Stretch)
		if l.ScaledWidth != s[2] || l.ScaledHeight != s[3] {
			t.Errorf("Stretch %v: scaled %dx%d, want %dx%d", s, l.ScaledWidth, l.ScaledHeight, s[2], s[3])
		}
		if l.Op != None {
			t.Errorf("Stretch %v: expected no crop/pad, got op %d", s, l.Op)
		}
		if l.OffsetX != 0 || l.OffsetY != 0 {
			t.Errorf("Stretch %v: expected zero offsets, got %d,%d", s, l.OffsetX, l.OffsetY)
		}
	}
}

func TestComputeFillWiderSource(t *testing.T) {
	// 4:3 source into a square: scale by height, crop width.
	l := Compute(400, 300, 200, 200, Fill)

	if l.Op != Crop {
		t.Fatalf("expected Crop, got op %d", l.Op)
	}
	if l.ScaledHeight != 200 {
		t.Errorf("expected scaled height 200, got %d", l.ScaledHeight)
	}
	// 200 * (400/300) = 266.66 -> 266 (floored)
	if l.ScaledWidth != 266 {
		t.Errorf("expected scaled width 266, got %d", l.ScaledWidth)
	}
	// (266-200)/2 = 33
	if l.OffsetX != 33 || l.OffsetY != 0 {
		t.Errorf("expected offsets 33,0, got %d,%d", l.OffsetX, l.OffsetY)
	}
}

func TestComputeFillTallerSource(t *testing.T) {
	// 3:4 source into a wide box: scale by width, crop height.
	l := Compute(300, 400, 400, 200, Fill)

	if l.Op != Crop {
		t.Fatalf("expected Crop, got op %d", l.Op)
	}
	if l.ScaledWidth != 400 {
		t.Errorf("expected scaled width 400, got %d", l.ScaledWidth)
	}
	// 400 / (300/400) = 533.33 -> 533
	if l.ScaledHeight != 533 {
		t.Errorf("expected scaled height 533, got %d", l.ScaledHeight)
	}
	// (533-200)/2 = 166
	if l.OffsetX != 0 || l.OffsetY != 166 {
		t.Errorf("expected offsets 0,166, got %d,%d", l.OffsetX, l.OffsetY)
	}
}

func TestComputeFillCoversTarget(t *testing.T) {
	cases := [][4]int{
		{400, 300, 200, 200},
		{300, 400, 688, 459},
		{1920, 1080, 1000, 1500},
		{333, 777, 2000, 2000},
	}

	for _, s := range cases {
		l := Compute(s[0], s[1], s[2], s[3], Fill)
		if l.ScaledWidth < s[2] || l.ScaledHeight < s[3] {
			t.Errorf("Fill %v: scaled %dx%d does not cover target %dx%d",
				s, l.ScaledWidth, l.ScaledHeight, s[2], s[3])
		}
		if l.OffsetX < 0 || l.OffsetY < 0 {
			t.Errorf("Fill %v: negative offsets %d,%d", s, l.OffsetX, l.OffsetY)
		}
	}
}

func TestComputeFitWiderSource(t *testing.T) {
	// 4:3 source into a square: scale by width, pad height.
	l := Compute(400, 300, 200, 200, Fit)

	if l.Op != Pad {
		t.Fatalf("expected Pad, got op %d", l.Op)
	}
	if l.ScaledWidth != 200 {
		t.Errorf("expected scaled width 200, got %d", l.ScaledWidth)
	}
	// 200 / (400/300) = 150
	if l.ScaledHeight != 150 {
		t.Errorf("expected scaled height 150, got %d", l.ScaledHeight)
	}
	// (200-150)/2 = 25
	if l.OffsetX != 0 || l.OffsetY != 25 {
		t.Errorf("expected offsets 0,25, got %d,%d", l.OffsetX, l.OffsetY)
	}
}

func TestComputeFitStaysInsideTarget(t *testing.T) {
	cases := [][4]int{
		{400, 300, 200, 200},
		{300, 400, 688, 459},
		{1920, 1080, 1000, 1500},
		{777, 333, 2000, 2000},
	}

	for _, s := range cases {
		l := Compute(s[0], s[1], s[2], s[3], Fit)
		if l.ScaledWidth > s[2] || l.ScaledHeight > s[3] {
			t.Errorf("Fit %v: scaled %dx%d overflows target %dx%d",
				s, l.ScaledWidth, l.ScaledHeight, s[2], s[3])
		}
		if l.OffsetX < 0 || l.OffsetY < 0 {
			t.Errorf("Fit %v: negative paste offsets %d,%d", s, l.OffsetX, l.OffsetY)
		}
	}
}

func TestComputeFloorsDimensions(t *testing.T) {
	// 3x2 into 2x2 under Fill: scaled width = 2 * 1.5 = 3, offset (3-2)/2 = 0 (floored from 0.5).
	l := Compute(3, 2, 2, 2, Fill)
	if l.ScaledWidth != 3 || l.OffsetX != 0 {
		t.Errorf("expected floored width 3 offset 0, got width %d offset %d", l.ScaledWidth, l.OffsetX)
	}

	// 5x3 into 4x4 under Fit: scaled height = 4 / (5/3) = 2.4 -> 2.
	l = Compute(5, 3, 4, 4, Fit)
	if l.ScaledHeight != 2 {
		t.Errorf("expected floored height 2, got %d", l.ScaledHeight)
	}
	// (4-2)/2 = 1
	if l.OffsetY != 1 {
		t.Errorf("expected paste offset 1, got %d", l.OffsetY)
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	for _, mode := range []Mode{Fit, Fill, Stretch} {
		a := Compute(1234, 567, 688, 459, mode)
		b := Compute(1234, 567, 688, 459, mode)
		if a != b {
			t.Errorf("mode %s: repeated calls differ: %+v vs %+v", mode, a, b)
		}
	}
}
