package lightning

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const verifyTimeout = 10 * time.Second

// ResolveLNURLEndpoint converts a validated address into its LNURL-pay
// well-known URL. Phone-style addresses route through the provider's
// address domain.
func ResolveLNURLEndpoint(address string) (string, error) {
	addr := strings.ToLower(strings.TrimSpace(address))

	if strings.HasPrefix(addr, "+") {
		// Machankura exposes phone wallets as <digits>@8333.mobi.
		return "https://8333.mobi/.well-known/lnurlp/" + addr[1:], nil
	}

	parts := strings.SplitN(addr, "@", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", fmt.Errorf("unresolvable address %q", address)
	}
	return "https://" + parts[1] + "/.well-known/lnurlp/" + parts[0], nil
}

// VerifyAddressReachable checks that the address resolves to a live
// LNURL-pay endpoint. This is a distinct, optional operation: the syntactic
// result from ValidateAddress never depends on it.
func VerifyAddressReachable(ctx context.Context, address string) error {
	endpoint, err := ResolveLNURLEndpoint(address)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, verifyTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("address unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("address unreachable: status=%d", resp.StatusCode)
	}
	return nil
}
