package schedule

import "testing"

func TestTimeToMinutes(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"09:00", 540},
		{"09:30", 570},
		{"17:00", 1020},
		{"23:59", 1439},
	}

	for _, c := range cases {
		got, err := TimeToMinutes(c.in)
		if err != nil {
			t.Fatalf("TimeToMinutes(%q) returned error: %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("TimeToMinutes(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestTimeToMinutes_Invalid(t *testing.T) {
	for _, in := range []string{"", "9", "ab:cd", "09:xx", "25:00", "09:75", "09:00:00"} {
		if _, err := TimeToMinutes(in); err == nil {
			t.Errorf("TimeToMinutes(%q) expected error, got none", in)
		}
	}
}

func TestMinutesToTime_RoundTrip(t *testing.T) {
	for m := 0; m < 1440; m++ {
		hm := MinutesToTime(m)
		back, err := TimeToMinutes(hm)
		if err != nil {
			t.Fatalf("round trip of %d failed to parse %q: %v", m, hm, err)
		}
		if back != m {
			t.Fatalf("round trip of %d gave %d via %q", m, back, hm)
		}
	}
}

func TestMinutesToTime_ZeroPadding(t *testing.T) {
	if got := MinutesToTime(65); got != "01:05" {
		t.Errorf("MinutesToTime(65) = %q, want 01:05", got)
	}
}
