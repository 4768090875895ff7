// Package refdata holds the shared reference tables used by every form and
// list controller: the country-code table and the fallback department /
// position lists. Several historical copies of these arrays existed in the
// source system and had drifted apart; this is the single consolidated set.
package refdata

// CountryCode is one entry of the dialing-code table.
type CountryCode struct {
	Code string // dialing prefix, always starts with "+"
	Name string
	Flag string
}

// DefaultCountryCode is used whenever a stored phone number cannot be
// matched against the table.
const DefaultCountryCode = "+1"

var countryCodes = []CountryCode{
	{Code: "+1", Name: "United States", Flag: "🇺🇸"},
	{Code: "+44", Name: "United Kingdom", Flag: "🇬🇧"},
	{Code: "+49", Name: "Germany", Flag: "🇩🇪"},
	{Code: "+33", Name: "France", Flag: "🇫🇷"},
	{Code: "+34", Name: "Spain", Flag: "🇪🇸"},
	{Code: "+39", Name: "Italy", Flag: "🇮🇹"},
	{Code: "+31", Name: "Netherlands", Flag: "🇳🇱"},
	{Code: "+46", Name: "Sweden", Flag: "🇸🇪"},
	{Code: "+41", Name: "Switzerland", Flag: "🇨🇭"},
	{Code: "+52", Name: "Mexico", Flag: "🇲🇽"},
	{Code: "+55", Name: "Brazil", Flag: "🇧🇷"},
	{Code: "+54", Name: "Argentina", Flag: "🇦🇷"},
	{Code: "+91", Name: "India", Flag: "🇮🇳"},
	{Code: "+86", Name: "China", Flag: "🇨🇳"},
	{Code: "+81", Name: "Japan", Flag: "🇯🇵"},
	{Code: "+82", Name: "South Korea", Flag: "🇰🇷"},
	{Code: "+61", Name: "Australia", Flag: "🇦🇺"},
	{Code: "+64", Name: "New Zealand", Flag: "🇳🇿"},
	{Code: "+971", Name: "United Arab Emirates", Flag: "🇦🇪"},
	{Code: "+94", Name: "Sri Lanka", Flag: "🇱🇰"},
}

var fallbackDepartments = []string{
	"IT",
	"HR",
	"Finance",
	"Marketing",
	"Sales",
	"Operations",
	"R&D",
	"Support",
}

var fallbackPositions = []string{
	"Software Engineer",
	"HR Manager",
	"Financial Analyst",
	"Marketing Specialist",
	"Sales Manager",
	"Operations Manager",
	"System Administrator",
	"Frontend Developer",
	"Backend Developer",
	"UI/UX Designer",
	"Data Analyst",
	"Project Manager",
}

// CountryCodes returns a copy of the dialing-code table. The default entry
// ("+1") is always first.
func CountryCodes() []CountryCode {
	out := make([]CountryCode, len(countryCodes))
	copy(out, countryCodes)
	return out
}

// LookupCountry returns the table entry for an exact code.
func LookupCountry(code string) (CountryCode, bool) {
	for _, c := range countryCodes {
		if c.Code == code {
			return c, true
		}
	}
	return CountryCode{}, false
}

// FallbackDepartments returns a copy of the hardcoded department list shown
// while (or instead of) the remote list.
func FallbackDepartments() []string {
	out := make([]string, len(fallbackDepartments))
	copy(out, fallbackDepartments)
	return out
}

// FallbackPositions returns a copy of the hardcoded position list.
func FallbackPositions() []string {
	out := make([]string, len(fallbackPositions))
	copy(out, fallbackPositions)
	return out
}
