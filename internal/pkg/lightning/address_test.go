package lightning

import (
	"strings"
	"testing"
)

func TestValidateAddressEmailProviders(t *testing.T) {
	tests := []struct {
		address  string
		provider string
		valid    bool
	}{
		{"maria@blink.sv", "blink", true},
		{"  Maria@Blink.SV  ", "blink", true},
		{"maria@walletofsatoshi.com", "walletofsatoshi", true},
		{"shop_42@coinos.io", "coinos", true},
		{"my.shop@fedi.xyz", "fedi", true},
		{"anyone@custom-node.example.org", "lightning", true},

		{"maria@walletofsatoshi.com", "blink", false},
		{"maria@blink.sv", "walletofsatoshi", false},
		{"mariablink.sv", "blink", false},
		{"maria@@blink.sv", "blink", false},
		{"@blink.sv", "blink", false},
		{"maria@", "blink", false},
		{"maria@blinksv", "lightning", false},
		{"maria@.blink.sv", "lightning", false},
		{"mar ia@blink.sv", "blink", false},
		{"maría@blink.sv", "blink", false},
		{"", "blink", false},
	}

	for _, tt := range tests {
		got := ValidateAddress(tt.address, tt.provider)
		if got.Valid != tt.valid {
			t.Fatalf("ValidateAddress(%q, %q).Valid = %v, want %v (error: %s)",
				tt.address, tt.provider, got.Valid, tt.valid, got.Error)
		}
	}
}

func TestValidateAddressNormalizes(t *testing.T) {
	got := ValidateAddress("  MARIA@Blink.SV ", "blink")
	if !got.Valid {
		t.Fatalf("expected valid, got error: %s", got.Error)
	}
	if got.NormalizedAddress != "maria@blink.sv" {
		t.Fatalf("NormalizedAddress = %q, want %q", got.NormalizedAddress, "maria@blink.sv")
	}
}

func TestValidateAddressWrongDomainMessage(t *testing.T) {
	got := ValidateAddress("maria@walletofsatoshi.com", "blink")
	if got.Valid {
		t.Fatalf("expected invalid")
	}
	if !strings.Contains(got.Error, "does not match provider") {
		t.Fatalf("unexpected error message: %s", got.Error)
	}
}

func TestValidateAddressMachankura(t *testing.T) {
	tests := []struct {
		address string
		valid   bool
	}{
		{"+254712345678", true},    // Kenya mobile
		{"+254112345678", true},    // Kenya, 1-prefix range
		{"+254812345678", false},   // Kenya, bad prefix
		{"+25471234567", false},    // Kenya, too short
		{"+2547123456789", false},  // Kenya, too long
		{"+255712345678", true},    // Tanzania
		{"+2347012345678", true},   // Nigeria, 10 national digits
		{"+234701234567", false},   // Nigeria, too short
		{"+27612345678", true},     // South Africa
		{"+233212345678", true},    // Ghana
		{"+112345678901", false},   // unsupported country
		{"254712345678", false},    // missing +
		{"+2547a2345678", false},   // non-digit
		{"+", false},
	}

	for _, tt := range tests {
		got := ValidateAddress(tt.address, "machankura")
		if got.Valid != tt.valid {
			t.Fatalf("ValidateAddress(%q, machankura).Valid = %v, want %v (error: %s)",
				tt.address, got.Valid, tt.valid, got.Error)
		}
	}
}

func TestValidateAddressUnknownProvider(t *testing.T) {
	got := ValidateAddress("maria@blink.sv", "paypal")
	if got.Valid {
		t.Fatalf("expected invalid for unknown provider")
	}
	if !strings.Contains(got.Error, "unknown payment provider") {
		t.Fatalf("unexpected error message: %s", got.Error)
	}
}

func TestValidateAddressTooLong(t *testing.T) {
	long := strings.Repeat("a", maxAddressLen) + "@blink.sv"
	got := ValidateAddress(long, "blink")
	if got.Valid {
		t.Fatalf("expected invalid for overlong address")
	}
}
