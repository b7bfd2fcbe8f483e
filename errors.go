package covenant

import (
	"github.com/Laisky/errors/v2"
)

var (
	// ErrPreconditionViolation malformed input to a primitive, caller bug
	ErrPreconditionViolation = errors.New("precondition violation")
	// ErrAuthorizationFailure signature or threshold check did not pass
	ErrAuthorizationFailure = errors.New("authorization failure")
	// ErrCommitmentMismatch declared output commitment differs from the expected one
	ErrCommitmentMismatch = errors.New("commitment mismatch")
	// ErrConservationViolation coin value changed across a rotation
	ErrConservationViolation = errors.New("conservation violation")
)

var rejectionKinds = []error{
	ErrPreconditionViolation,
	ErrAuthorizationFailure,
	ErrCommitmentMismatch,
	ErrConservationViolation,
}

// RejectionKind return the taxonomy sentinel wrapped by err,
// or nil if err is nil or not a rejection
func RejectionKind(err error) error {
	if err == nil {
		return nil
	}

	for _, kind := range rejectionKinds {
		if errors.Is(err, kind) {
			return kind
		}
	}

	return nil
}

// IsRejection whether err is a verification rejection
func IsRejection(err error) bool {
	return RejectionKind(err) != nil
}
