package refdata

import "testing"

func TestCountryCodesDefaultFirst(t *testing.T) {
	codes := CountryCodes()
	if len(codes) == 0 {
		t.Fatal("country table must not be empty")
	}
	if codes[0].Code != DefaultCountryCode {
		t.Fatalf("expected %s first, got %s", DefaultCountryCode, codes[0].Code)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	codes := CountryCodes()
	codes[0].Code = "+999"
	if CountryCodes()[0].Code != DefaultCountryCode {
		t.Error("mutating the returned slice must not affect the table")
	}

	deps := FallbackDepartments()
	deps[0] = "mutated"
	if FallbackDepartments()[0] == "mutated" {
		t.Error("mutating the returned departments must not affect the table")
	}
}

func TestLookupCountry(t *testing.T) {
	c, ok := LookupCountry("+971")
	if !ok || c.Name == "" {
		t.Fatalf("expected a match for +971, got %+v ok=%v", c, ok)
	}
	if _, ok := LookupCountry("+99999"); ok {
		t.Error("unknown code must not match")
	}
}
