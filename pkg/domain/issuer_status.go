package domain

// IssuerStatus is the tri-state approval status of an issuer account.
type IssuerStatus string

const (
	// IssuerStatusNotRegistered means the account has never applied.
	IssuerStatusNotRegistered IssuerStatus = "not_registered"

	// IssuerStatusPending means the account registered and is awaiting
	// admin approval or a vote quorum.
	IssuerStatusPending IssuerStatus = "pending"

	// IssuerStatusApproved means the account currently holds issuer trust.
	IssuerStatusApproved IssuerStatus = "approved"
)

// String returns the string representation of the status.
func (s IssuerStatus) String() string {
	return string(s)
}

// IsValid checks if the status is one of the supported enum values.
func (s IssuerStatus) IsValid() bool {
	switch s {
	case IssuerStatusNotRegistered, IssuerStatusPending, IssuerStatusApproved:
		return true
	}
	return false
}
