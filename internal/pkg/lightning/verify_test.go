package lightning

import (
	"context"
	"testing"
)

func TestResolveLNURLEndpoint(t *testing.T) {
	tests := []struct {
		address string
		want    string
		wantErr bool
	}{
		{"satoshi@blink.sv", "https://blink.sv/.well-known/lnurlp/satoshi", false},
		{"merchant@walletofsatoshi.com", "https://walletofsatoshi.com/.well-known/lnurlp/merchant", false},
		{"  Satoshi@Blink.sv  ", "https://blink.sv/.well-known/lnurlp/satoshi", false}, // trimmed and folded
		{"+254712345678", "https://8333.mobi/.well-known/lnurlp/254712345678", false},  // phone wallet
		{"no-at-sign", "", true},
		{"@blink.sv", "", true},
		{"satoshi@", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ResolveLNURLEndpoint(tt.address)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ResolveLNURLEndpoint(%q): expected error, got %q", tt.address, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ResolveLNURLEndpoint(%q): unexpected error %v", tt.address, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ResolveLNURLEndpoint(%q) = %q, want %q", tt.address, got, tt.want)
		}
	}
}

func TestVerifyAddressReachableRejectsUnresolvable(t *testing.T) {
	if err := VerifyAddressReachable(context.Background(), "not-an-address"); err == nil {
		t.Fatal("expected error for an unresolvable address")
	}
}
