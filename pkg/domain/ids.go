// Package domain holds the value types shared across the ledger state
// machines. Construct them via the Parse functions at trust boundaries;
// direct casting bypasses validation.
package domain

import (
	"strings"

	dErrors "github.com/Eklavvyaaaaa/Carbonx/pkg/domain-errors"
)

// Address identifies an account on the settlement layer.
type Address string

// maxAddressLen bounds addresses to the longest encoding the settlement
// layer produces (58 for Algorand-style base32 application accounts).
const maxAddressLen = 58

// ParseAddress constructs an Address from external input.
//
// Errors: returns CodeInvalidInput when the value is empty, too long, or
// contains whitespace; no other errors are expected.
func ParseAddress(s string) (Address, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "address cannot be empty")
	}
	if len(s) > maxAddressLen {
		return "", dErrors.New(dErrors.CodeInvalidInput, "address too long")
	}
	if strings.ContainsAny(s, " \t\n") {
		return "", dErrors.New(dErrors.CodeInvalidInput, "address contains whitespace")
	}
	return Address(s), nil
}

// IsNil returns true if the address is empty.
func (a Address) IsNil() bool {
	return a == ""
}

// String returns the string representation of the address.
func (a Address) String() string {
	return string(a)
}

// AssetID identifies a fungible token on the settlement layer. Zero means
// "unset"; a bound asset is always nonzero.
type AssetID uint64

// ParseAssetID constructs an AssetID from external input.
//
// Errors: returns CodeInvalidInput when the id is zero; the zero value is
// reserved for "no asset bound".
func ParseAssetID(id uint64) (AssetID, error) {
	if id == 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "asset id cannot be zero")
	}
	return AssetID(id), nil
}

// IsZero returns true if no asset is bound.
func (a AssetID) IsZero() bool {
	return a == 0
}

// VoteKey is the canonical replay-guard key for a (voter, candidate) pair.
// The two addresses are sorted before joining so the key is identical
// regardless of argument order.
type VoteKey string

// NewVoteKey builds the canonical key for the unordered pair.
func NewVoteKey(voter, candidate Address) VoteKey {
	a, b := voter.String(), candidate.String()
	if a > b {
		a, b = b, a
	}
	return VoteKey(a + "|" + b)
}

// String returns the string representation of the vote key.
func (k VoteKey) String() string {
	return string(k)
}
