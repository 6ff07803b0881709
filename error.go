// Copyright (c) 2020-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

// ErrorKind identifies a kind of error.  It has full support for errors.Is and
// errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
//
// Every specific kind belongs to one of the broad categories ErrDecode,
// ErrRange, ErrInvalidPoint or ErrInsufficientEntropy, and errors.Is also
// reports a match against the category of a kind.
type ErrorKind string

// These constants are the broad error categories.
const (
	// ErrDecode is the category of malformed encodings such as wrong lengths,
	// unknown format bytes and invalid DER structure.
	ErrDecode = ErrorKind("ErrDecode")

	// ErrRange is the category of values that decode structurally but are
	// outside the range permitted for their type, such as scalars that are
	// zero or not less than the group order.
	ErrRange = ErrorKind("ErrRange")

	// ErrInvalidPoint is the category of coordinates that do not describe a
	// point on the curve, including the point at infinity where a public key
	// is required.
	ErrInvalidPoint = ErrorKind("ErrInvalidPoint")

	// ErrInsufficientEntropy is returned when the random source used to
	// generate a key fails or only produces unusable values.
	ErrInsufficientEntropy = ErrorKind("ErrInsufficientEntropy")
)

// These constants are used to identify a specific key or encoding Error.
const (
	// ErrPubKeyInvalidLen indicates that the length of a serialized public
	// key is not one of the allowed lengths.
	ErrPubKeyInvalidLen = ErrorKind("ErrPubKeyInvalidLen")

	// ErrPubKeyInvalidFormat indicates an attempt was made to parse a public
	// key that does not specify one of the supported formats.
	ErrPubKeyInvalidFormat = ErrorKind("ErrPubKeyInvalidFormat")

	// ErrPubKeyXTooBig indicates that the x coordinate for a public key
	// is greater than or equal to the prime of the field underlying the group.
	ErrPubKeyXTooBig = ErrorKind("ErrPubKeyXTooBig")

	// ErrPubKeyYTooBig indicates that the y coordinate for a public key is
	// greater than or equal to the prime of the field underlying the group.
	ErrPubKeyYTooBig = ErrorKind("ErrPubKeyYTooBig")

	// ErrPubKeyNotOnCurve indicates that a public key is not a point on the
	// secp256k1 curve.
	ErrPubKeyNotOnCurve = ErrorKind("ErrPubKeyNotOnCurve")

	// ErrPubKeyMismatchedOddness indicates that a hybrid public key specified
	// an oddness of the y coordinate that does not match the actual oddness of
	// the provided y coordinate.
	ErrPubKeyMismatchedOddness = ErrorKind("ErrPubKeyMismatchedOddness")

	// ErrPointAtInfinity indicates that an operation that requires a finite
	// point, such as constructing a public key, was given the identity.
	ErrPointAtInfinity = ErrorKind("ErrPointAtInfinity")

	// ErrPrivKeyInvalidLen indicates that a serialized private key is not
	// exactly 32 bytes.
	ErrPrivKeyInvalidLen = ErrorKind("ErrPrivKeyInvalidLen")

	// ErrPrivKeyOutOfRange indicates that a private key is zero or greater
	// than or equal to the group order.
	ErrPrivKeyOutOfRange = ErrorKind("ErrPrivKeyOutOfRange")

	// ErrFieldInvalidLen indicates that a serialized field element is not
	// exactly 32 bytes.
	ErrFieldInvalidLen = ErrorKind("ErrFieldInvalidLen")

	// ErrFieldOverflow indicates that a serialized field element is greater
	// than or equal to the field prime.
	ErrFieldOverflow = ErrorKind("ErrFieldOverflow")

	// ErrScalarInvalidLen indicates that a serialized scalar is not exactly
	// 32 bytes.
	ErrScalarInvalidLen = ErrorKind("ErrScalarInvalidLen")

	// ErrScalarOverflow indicates that a serialized scalar is greater than or
	// equal to the group order.
	ErrScalarOverflow = ErrorKind("ErrScalarOverflow")

	// ErrSchnorrSigInvalidLen indicates that a Schnorr signature is not
	// exactly 64 bytes.
	ErrSchnorrSigInvalidLen = ErrorKind("ErrSchnorrSigInvalidLen")

	// ErrSchnorrSigRTooBig indicates that the r component of a Schnorr
	// signature is greater than or equal to the field prime.
	ErrSchnorrSigRTooBig = ErrorKind("ErrSchnorrSigRTooBig")

	// ErrSchnorrSigSTooBig indicates that the s component of a Schnorr
	// signature is greater than or equal to the group order.
	ErrSchnorrSigSTooBig = ErrorKind("ErrSchnorrSigSTooBig")

	// ErrSignRetriesExhausted indicates that every nonce tried while signing
	// produced a degenerate signature.
	ErrSignRetriesExhausted = ErrorKind("ErrSignRetriesExhausted")

	// ErrSignSelfCheckFailed indicates that a freshly produced signature
	// did not verify against the signing key.
	ErrSignSelfCheckFailed = ErrorKind("ErrSignSelfCheckFailed")
)

// categories maps each specific kind to its broad category.  Category kinds
// map to themselves implicitly.
var categories = map[ErrorKind]ErrorKind{
	ErrPubKeyInvalidLen:        ErrDecode,
	ErrPubKeyInvalidFormat:     ErrDecode,
	ErrPubKeyXTooBig:           ErrRange,
	ErrPubKeyYTooBig:           ErrRange,
	ErrPubKeyNotOnCurve:        ErrInvalidPoint,
	ErrPubKeyMismatchedOddness: ErrDecode,
	ErrPointAtInfinity:         ErrInvalidPoint,
	ErrPointNotOnCurve:         ErrInvalidPoint,
	ErrPrivKeyInvalidLen:       ErrDecode,
	ErrPrivKeyOutOfRange:       ErrRange,
	ErrFieldInvalidLen:         ErrDecode,
	ErrFieldOverflow:           ErrRange,
	ErrScalarInvalidLen:        ErrDecode,
	ErrScalarOverflow:          ErrRange,
	ErrSchnorrSigInvalidLen:    ErrDecode,
	ErrSchnorrSigRTooBig:       ErrRange,
	ErrSchnorrSigSTooBig:       ErrRange,
	ErrSignRetriesExhausted:    ErrRange,
	ErrSignSelfCheckFailed:     ErrRange,
	ErrSigTooShort:             ErrDecode,
	ErrSigTooLong:              ErrDecode,
	ErrSigInvalidSeqID:         ErrDecode,
	ErrSigInvalidDataLen:       ErrDecode,
	ErrSigMissingSTypeID:       ErrDecode,
	ErrSigMissingSLen:          ErrDecode,
	ErrSigInvalidSLen:          ErrDecode,
	ErrSigInvalidRIntID:        ErrDecode,
	ErrSigZeroRLen:             ErrDecode,
	ErrSigNegativeR:            ErrDecode,
	ErrSigTooMuchRPadding:      ErrDecode,
	ErrSigRIsZero:              ErrRange,
	ErrSigRTooBig:              ErrRange,
	ErrSigInvalidSIntID:        ErrDecode,
	ErrSigZeroSLen:             ErrDecode,
	ErrSigNegativeS:            ErrDecode,
	ErrSigTooMuchSPadding:      ErrDecode,
	ErrSigSIsZero:              ErrRange,
	ErrSigSTooBig:              ErrRange,
	ErrSigInvalidLen:           ErrDecode,
	ErrSigInvalidRecoveryCode:  ErrDecode,
	ErrSigOverflowsPrime:       ErrRange,
}

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Category returns the broad category the kind belongs to.  Category kinds
// and unknown kinds return themselves.
func (e ErrorKind) Category() ErrorKind {
	if c, ok := categories[e]; ok {
		return c
	}
	return e
}

// Is reports whether target is the same kind as e or is the category e
// belongs to.  This allows errors.Is(err, ErrRange) to match any range error.
func (e ErrorKind) Is(target error) bool {
	kind, ok := target.(ErrorKind)
	if !ok {
		return false
	}
	return kind == e || kind == e.Category()
}

// Error identifies an error related to secp256k1 keys, encodings and
// signatures.  It has full support for errors.Is and errors.As, so the caller
// can ascertain the specific reason for the error by checking the underlying
// error.
type Error struct {
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// makeError creates an Error given a set of arguments.
func makeError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
