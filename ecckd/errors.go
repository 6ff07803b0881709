package ecckd

import "github.com/pkg/errors"

// Errors returned while building, deriving or decoding extended keys.  Wrapped
// errors keep these as their cause, so match them with errors.Is.
var (
	ErrInvalidSeed        = errors.New("seed length must be between 128 and 512 bits")
	ErrInvalidMasterKey   = errors.New("invalid master key supplied")
	ErrInvalidKey         = errors.New("key is invalid")
	ErrInvalidKeyLen      = errors.New("serialized extended key length is invalid")
	ErrInvalidPrivateFlag = errors.New("key private flag does not match version")
	ErrBadChecksum        = errors.New("bad extended key checksum")
	ErrNotPrivExtKey      = errors.New("extended key is not a private key")
	ErrInvalidPath        = errors.New("invalid derivation path")

	// Derivation.
	ErrDerivingChild              = errors.New("error deriving child key")
	ErrDerivingHardenedFromPublic = errors.New("cannot derive a hardened key from public key")
	ErrMaxDepthExceeded           = errors.New("max depth exceeded")
)
