package ecckd

const (
	// HardenedBit marks a child index as hardened.  Indices at or above it
	// can only be derived from private extended keys.
	HardenedBit = 0x80000000

	// serializedKeyLen is the length of a serialized extended key without
	// the trailing checksum.
	//   version (4) || depth (1) || parent fingerprint (4) ||
	//   child num (4) || chain code (32) || key data (33)
	serializedKeyLen = 4 + 1 + 4 + 4 + 32 + 33

	chainCodeLen = 32

	// minSeedBytes and maxSeedBytes bound the seed length to the 128 to 512
	// bits allowed by BIP-32.
	minSeedBytes = 16
	maxSeedBytes = 64
)

type KeyVersion [4]byte

var (
	BitcoinMainnetPublic  = KeyVersion{0x04, 0x88, 0xb2, 0x1e}
	BitcoinMainnetPrivate = KeyVersion{0x04, 0x88, 0xad, 0xe4}
	BitcoinTestnetPublic  = KeyVersion{0x04, 0x35, 0x87, 0xcf}
	BitcoinTestnetPrivate = KeyVersion{0x04, 0x35, 0x83, 0x94}
)

// IsPrivate returns true if the version is for a private key
func (kv KeyVersion) IsPrivate() bool {
	switch kv {
	case BitcoinMainnetPrivate, BitcoinTestnetPrivate:
		return true
	}
	return false
}

// ToPublic returns the public counterpart of a private version.  Public and
// unknown versions are returned unchanged.
func (kv KeyVersion) ToPublic() KeyVersion {
	switch kv {
	case BitcoinMainnetPrivate:
		return BitcoinMainnetPublic
	case BitcoinTestnetPrivate:
		return BitcoinTestnetPublic
	}
	return kv
}
