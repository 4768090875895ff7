package phone

import (
	"testing"

	"ems-admin/internal/refdata"
)

func TestSplitJoinRoundTrip(t *testing.T) {
	table := refdata.CountryCodes()

	cases := []struct {
		code  string
		local string
	}{
		{"+1", "5551234567"},
		{"+44", "2079460000"},
		{"+971", "501234567"},
		{"+94", "771234567"},
		{"+91", "9876543210"},
	}

	for _, tc := range cases {
		code, local := Split(Join(tc.code, tc.local), table)
		if code != tc.code || local != tc.local {
			t.Errorf("round trip (%s, %s): got (%s, %s)", tc.code, tc.local, code, local)
		}
	}
}

func TestSplitLongestPrefixWins(t *testing.T) {
	// "+971..." must match the UAE code, not a shorter overlapping one.
	code, local := Split("+971501234567", refdata.CountryCodes())
	if code != "+971" {
		t.Fatalf("expected +971, got %s", code)
	}
	if local != "501234567" {
		t.Fatalf("expected 501234567, got %s", local)
	}
}

func TestSplitMissingPlusFallsBack(t *testing.T) {
	for _, raw := range []string{"5551234567", "", "not a number"} {
		code, local := Split(raw, refdata.CountryCodes())
		if code != refdata.DefaultCountryCode {
			t.Errorf("Split(%q): expected default code, got %s", raw, code)
		}
		if local != raw {
			t.Errorf("Split(%q): local changed to %q", raw, local)
		}
	}
}

func TestSplitUnknownPrefixFallsBack(t *testing.T) {
	// "+999" is not in the table.
	code, local := Split("+9991234567", refdata.CountryCodes())
	if code != refdata.DefaultCountryCode {
		t.Fatalf("expected default code, got %s", code)
	}
	if local != "+9991234567" {
		t.Fatalf("expected input unchanged, got %s", local)
	}
}

func TestFormat(t *testing.T) {
	cases := map[string]string{
		"+15551234567":  "+1 555 123 4567",
		"+442079460000": "+44 207 946 0000",
		"+1":            "+1",
	}
	for in, want := range cases {
		if got := Format(in); got != want {
			t.Errorf("Format(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatNonDigitsPassThrough(t *testing.T) {
	if got := Format("+1555-123"); got != "+1555-123" {
		t.Fatalf("expected pass-through, got %q", got)
	}
}
