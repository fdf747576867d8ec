//go:build go1.18

package domain

import (
	"strings"
	"testing"
)

// FuzzParseAddress tests that parsing never panics on arbitrary input and
// that every accepted address round-trips unchanged.
func FuzzParseAddress(f *testing.F) {
	f.Add("")
	f.Add("creator")
	f.Add(strings.Repeat("A", maxAddressLen))
	f.Add(strings.Repeat("A", maxAddressLen+1))
	f.Add("with space")
	f.Add("'; DROP TABLE issuer_accounts;--")
	f.Add(string([]byte{0x00, 0x01, 0x02}))

	f.Fuzz(func(t *testing.T, input string) {
		addr, err := ParseAddress(input)
		if err != nil {
			return
		}

		// Accepted values round-trip and stay within bounds.
		again, err2 := ParseAddress(addr.String())
		if err2 != nil {
			t.Errorf("accepted address failed round-trip: %v", err2)
		}
		if again != addr {
			t.Error("round-trip changed the address")
		}
		if len(addr.String()) > maxAddressLen {
			t.Error("accepted address exceeds length bound")
		}
		if strings.ContainsAny(addr.String(), " \t\n") {
			t.Error("accepted address contains whitespace")
		}
	})
}
