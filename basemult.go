// Copyright (c) 2015-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import "sync"

// baseTable is the precomputed comb table used by ScalarBaseMult.  Row i
// holds j * 16^i * G for j in [0, 15], so a scalar multiplication of the
// generator only needs one lookup and one addition per 4-bit window of the
// scalar and no doublings.
type baseTable [64]pointTable16

var (
	baseTableOnce sync.Once
	basePoints    *baseTable
)

// computeBaseTable builds the comb table for the generator.
func computeBaseTable() *baseTable {
	t := new(baseTable)
	base := Generator()
	for i := range t {
		row := &t[i]
		row[0].SetIdentity()
		row[1].Set(&base)
		for j := 2; j < 16; j++ {
			AddPoints(&row[j-1], &base, &row[j])
		}

		// The base of the next row is 16 times the current one.
		AddPoints(&row[15], &base, &base)
	}
	return t
}

// precomputedBaseTable returns the comb table, building it on first use.  The
// table is never modified afterwards, so it is safe for concurrent readers.
func precomputedBaseTable() *baseTable {
	baseTableOnce.Do(func() {
		basePoints = computeBaseTable()
	})
	return basePoints
}

// ScalarBaseMult multiplies k*G where G is the base point of the group and k
// is a scalar modulo the curve order and stores the result in result.
//
// Every window performs a full scan of its table row and one complete
// addition, so this runs in constant time with respect to k.
func ScalarBaseMult(k *ModNScalar, result *ProjectivePoint) {
	t := precomputedBaseTable()

	var acc, entry ProjectivePoint
	acc.SetIdentity()
	for i := range t {
		t[i].lookup(k.nibble(i), &entry)
		AddPoints(&acc, &entry, &acc)
	}
	result.Set(&acc)
}
