// Package ctcheck holds source checks that keep variable-time constructs out
// of the secp256k1 package.
//
// The package has no exported API.  Its tests load the secp256k1 package with
// golang.org/x/tools/go/packages and fail when code that handles secret data
// compares byte slices with ==, calls bytes.Equal or imports math/big.
package ctcheck
