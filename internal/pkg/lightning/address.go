package lightning

import (
	"strings"
)

// Payment providers known to the program. Each provider has its own address
// grammar; ProviderLightning accepts any syntactically valid
// local@domain Lightning address.
const (
	ProviderBlink           = "blink"
	ProviderWalletOfSatoshi = "walletofsatoshi"
	ProviderCoinos          = "coinos"
	ProviderFedi            = "fedi"
	ProviderMachankura      = "machankura"
	ProviderLightning       = "lightning"
)

// maxAddressLen caps input length; RFC 5321's address limit is a sane bound
// for every provider format in use.
const maxAddressLen = 320

// emailProviderDomains maps email-style providers to their allowed domains.
var emailProviderDomains = map[string][]string{
	ProviderBlink:           {"blink.sv"},
	ProviderWalletOfSatoshi: {"walletofsatoshi.com"},
	ProviderCoinos:          {"coinos.io"},
	ProviderFedi:            {"fedi.xyz"},
}

// phoneCountryRule describes one whitelisted calling code for phone-style
// addresses: the exact national digit count and the leading digits national
// numbers may start with.
type phoneCountryRule struct {
	code           string
	nationalDigits int
	mobilePrefixes []string
}

// machankuraCountries is the calling-code whitelist for the phone-style
// provider, covering the program's active countries.
var machankuraCountries = []phoneCountryRule{
	{code: "254", nationalDigits: 9, mobilePrefixes: []string{"7", "1"}},       // Kenya
	{code: "255", nationalDigits: 9, mobilePrefixes: []string{"6", "7"}},       // Tanzania
	{code: "256", nationalDigits: 9, mobilePrefixes: []string{"7", "3"}},       // Uganda
	{code: "234", nationalDigits: 10, mobilePrefixes: []string{"7", "8", "9"}}, // Nigeria
	{code: "233", nationalDigits: 9, mobilePrefixes: []string{"2", "5"}},       // Ghana
	{code: "27", nationalDigits: 9, mobilePrefixes: []string{"6", "7", "8"}},   // South Africa
	{code: "260", nationalDigits: 9, mobilePrefixes: []string{"7", "9"}},       // Zambia
	{code: "265", nationalDigits: 9, mobilePrefixes: []string{"8", "9"}},       // Malawi
}

// ValidationResult is the outcome of a syntactic address check.
type ValidationResult struct {
	Valid             bool   `json:"valid"`
	NormalizedAddress string `json:"normalized_address,omitempty"`
	Error             string `json:"error,omitempty"`
}

func invalid(msg string) ValidationResult {
	return ValidationResult{Valid: false, Error: msg}
}

// ValidateAddress checks an address against one provider's format rules.
// Input is trimmed and case-folded first; address formats are
// case-insensitive. Pure function, no I/O.
func ValidateAddress(address, provider string) ValidationResult {
	addr := strings.ToLower(strings.TrimSpace(address))
	prov := strings.ToLower(strings.TrimSpace(provider))

	if addr == "" {
		return invalid("address is empty")
	}
	if len(addr) > maxAddressLen {
		return invalid("address exceeds maximum length")
	}

	switch prov {
	case ProviderMachankura:
		return validatePhoneAddress(addr)
	case ProviderBlink, ProviderWalletOfSatoshi, ProviderCoinos, ProviderFedi:
		return validateEmailAddress(addr, prov, emailProviderDomains[prov])
	case ProviderLightning:
		return validateEmailAddress(addr, prov, nil)
	default:
		return invalid("unknown payment provider: " + prov)
	}
}

func validateEmailAddress(addr, provider string, allowedDomains []string) ValidationResult {
	at := strings.Count(addr, "@")
	if at == 0 {
		return invalid("address is missing @")
	}
	if at > 1 {
		return invalid("address contains more than one @")
	}

	parts := strings.SplitN(addr, "@", 2)
	local, domain := parts[0], parts[1]
	if local == "" {
		return invalid("address has an empty local part")
	}
	if domain == "" || !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return invalid("address has an invalid domain")
	}
	for _, r := range local {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '.' && r != '_' && r != '-' {
			return invalid("address contains disallowed characters")
		}
	}

	if len(allowedDomains) > 0 {
		matched := false
		for _, d := range allowedDomains {
			if domain == d {
				matched = true
				break
			}
		}
		if !matched {
			return invalid("address does not match provider " + provider)
		}
	}

	return ValidationResult{Valid: true, NormalizedAddress: addr}
}

func validatePhoneAddress(addr string) ValidationResult {
	if !strings.HasPrefix(addr, "+") {
		return invalid("phone address must start with +")
	}
	digits := addr[1:]
	if digits == "" {
		return invalid("phone address has no digits")
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return invalid("phone address contains non-digit characters")
		}
	}

	for _, rule := range machankuraCountries {
		if !strings.HasPrefix(digits, rule.code) {
			continue
		}
		national := digits[len(rule.code):]
		if len(national) != rule.nationalDigits {
			return invalid("phone address has wrong digit count for country +" + rule.code)
		}
		for _, p := range rule.mobilePrefixes {
			if strings.HasPrefix(national, p) {
				return ValidationResult{Valid: true, NormalizedAddress: addr}
			}
		}
		return invalid("phone address has an invalid mobile prefix for country +" + rule.code)
	}

	return invalid("phone address country code is not supported")
}
