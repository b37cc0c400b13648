package utils

import "testing"

func TestValidPhone(t *testing.T) {
	valid := []string{"13812345678", "19912345678", "15000000000"}
	for _, s := range valid {
		if !ValidPhone(s) {
			t.Errorf("ValidPhone(%q) = false, want true", s)
		}
	}

	invalid := []string{
		"",
		"12812345678",  // second digit out of range
		"1381234567",   // too short
		"138123456789", // too long
		"23812345678",  // wrong prefix
		"1381234567a",
		"+8613812345678",
	}
	for _, s := range invalid {
		if ValidPhone(s) {
			t.Errorf("ValidPhone(%q) = true, want false", s)
		}
	}
}

func TestValidEmployeeID(t *testing.T) {
	valid := []string{"D001", "abc", "A1B2C3", "12345678901234567890"}
	for _, s := range valid {
		if !ValidEmployeeID(s) {
			t.Errorf("ValidEmployeeID(%q) = false, want true", s)
		}
	}

	invalid := []string{
		"",
		"ab",                     // too short
		"D-001",                  // hyphen not allowed
		"工号001",                  // non-ASCII
		"123456789012345678901",  // 21 chars
		"D 01",
	}
	for _, s := range invalid {
		if ValidEmployeeID(s) {
			t.Errorf("ValidEmployeeID(%q) = true, want false", s)
		}
	}
}

func TestValidCoordinates(t *testing.T) {
	if !ValidLatitude(0) || !ValidLatitude(90) || !ValidLatitude(-90) {
		t.Error("boundary latitudes should be valid")
	}
	if ValidLatitude(90.01) || ValidLatitude(-90.01) {
		t.Error("out-of-range latitudes should be invalid")
	}
	if !ValidLongitude(180) || !ValidLongitude(-180) {
		t.Error("boundary longitudes should be valid")
	}
	if ValidLongitude(180.01) || ValidLongitude(-180.01) {
		t.Error("out-of-range longitudes should be invalid")
	}
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"08:00", 480},
		{"08:30", 510},
		{"23:59", 1439},
	}
	for _, c := range cases {
		got, err := ParseClock(c.in)
		if err != nil {
			t.Errorf("ParseClock(%q) error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseClock(%q) = %d, want %d", c.in, got, c.want)
		}
	}

	for _, s := range []string{"", "8:00:00", "24:00", "08:60", "ab:cd"} {
		if _, err := ParseClock(s); err == nil {
			t.Errorf("ParseClock(%q) expected error", s)
		}
	}
}
