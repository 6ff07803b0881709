// Copyright (c) 2020-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

// Kinds reported while parsing DER encoded ECDSA signatures.  All of them
// except the range checks on R and S fall in the ErrDecode category.
const (
	// ErrSigTooShort: fewer bytes than the smallest possible DER signature.
	ErrSigTooShort = ErrorKind("ErrSigTooShort")

	// ErrSigTooLong: more bytes than the largest possible DER signature.
	ErrSigTooLong = ErrorKind("ErrSigTooLong")

	// ErrSigInvalidSeqID: the first byte is not the ASN.1 SEQUENCE tag.
	ErrSigInvalidSeqID = ErrorKind("ErrSigInvalidSeqID")

	// ErrSigInvalidDataLen: the sequence length disagrees with the input.
	ErrSigInvalidDataLen = ErrorKind("ErrSigInvalidDataLen")

	// ErrSigMissingSTypeID: the input ends before the tag of S.
	ErrSigMissingSTypeID = ErrorKind("ErrSigMissingSTypeID")

	// ErrSigMissingSLen: the input ends before the length of S.
	ErrSigMissingSLen = ErrorKind("ErrSigMissingSLen")

	// ErrSigInvalidSLen: the length of S does not consume the rest of the
	// sequence.
	ErrSigInvalidSLen = ErrorKind("ErrSigInvalidSLen")

	// ErrSigInvalidRIntID: R is not tagged as an ASN.1 INTEGER.
	ErrSigInvalidRIntID = ErrorKind("ErrSigInvalidRIntID")

	// ErrSigZeroRLen: R is encoded with no bytes.
	ErrSigZeroRLen = ErrorKind("ErrSigZeroRLen")

	// ErrSigNegativeR: the sign bit of R is set.
	ErrSigNegativeR = ErrorKind("ErrSigNegativeR")

	// ErrSigTooMuchRPadding: R has a leading zero that is not needed to
	// clear the sign bit.
	ErrSigTooMuchRPadding = ErrorKind("ErrSigTooMuchRPadding")

	// ErrSigInvalidSIntID: S is not tagged as an ASN.1 INTEGER.
	ErrSigInvalidSIntID = ErrorKind("ErrSigInvalidSIntID")

	// ErrSigZeroSLen: S is encoded with no bytes.
	ErrSigZeroSLen = ErrorKind("ErrSigZeroSLen")

	// ErrSigNegativeS: the sign bit of S is set.
	ErrSigNegativeS = ErrorKind("ErrSigNegativeS")

	// ErrSigTooMuchSPadding: S has a leading zero that is not needed to
	// clear the sign bit.
	ErrSigTooMuchSPadding = ErrorKind("ErrSigTooMuchSPadding")
)

// Range failures shared by every ECDSA encoding.  These are ErrRange.
const (
	ErrSigRIsZero = ErrorKind("ErrSigRIsZero")
	ErrSigRTooBig = ErrorKind("ErrSigRTooBig")
	ErrSigSIsZero = ErrorKind("ErrSigSIsZero")
	ErrSigSTooBig = ErrorKind("ErrSigSTooBig")
)

// Kinds specific to the fixed size compact and recoverable encodings and to
// public key recovery.
const (
	// ErrSigInvalidLen: a compact signature is not 64 bytes or a
	// recoverable one is not 65 bytes.
	ErrSigInvalidLen = ErrorKind("ErrSigInvalidLen")

	// ErrSigInvalidRecoveryCode: the header byte of a recoverable signature
	// is outside 27..34.
	ErrSigInvalidRecoveryCode = ErrorKind("ErrSigInvalidRecoveryCode")

	// ErrSigOverflowsPrime: the recovery code asks for R + N as the x
	// coordinate but that value is not less than the field prime.
	ErrSigOverflowsPrime = ErrorKind("ErrSigOverflowsPrime")

	// ErrPointNotOnCurve: the recovered x coordinate has no point on the
	// curve.
	ErrPointNotOnCurve = ErrorKind("ErrPointNotOnCurve")
)

func signatureError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
