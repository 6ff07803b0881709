package ecckd

import (
	"bytes"
	"crypto/ecdsa"
	"encoding/binary"
	"fmt"

	"github.com/ModChain/base58"
	"github.com/mapxus/secp256k1"
)

// ExtendedKey is a BIP-32 extended key.  A private extended key holds the
// 32-byte secret in KeyData and a public one the 33-byte compressed public
// key.
type ExtendedKey struct {
	Version     KeyVersion
	Depth       uint8
	Fingerprint [4]byte
	ChildNumber uint32 // ser32(i) for i in xi = xpar/i, with xi the key being serialized. (0x00000000 if master key)
	KeyData     []byte // 33 bytes serP(K) for public keys, 32 bytes ser256(k) for private keys
	ChainCode   []byte // 32 bytes, the chain code
}

// FromBitcoinSeed returns a master node for a bitcoin wallet
func FromBitcoinSeed(seed []byte) (*ExtendedKey, error) {
	return FromSeed(seed, []byte("Bitcoin seed"))
}

// FromSeed returns a master private extended key for the given seed, using
// masterSecret as the HMAC key.
func FromSeed(seed, masterSecret []byte) (*ExtendedKey, error) {
	if len(seed) < minSeedBytes || len(seed) > maxSeedBytes {
		return nil, ErrInvalidSeed
	}

	il, chainCode, err := hmacCKD(seed, masterSecret)
	if err != nil {
		return nil, ErrInvalidMasterKey
	}
	key := il.Bytes()
	il.Zero()

	res := &ExtendedKey{
		Version:     BitcoinMainnetPrivate,
		Depth:       0,
		Fingerprint: [4]byte{0, 0, 0, 0},
		ChildNumber: 0,
		KeyData:     key[:],
		ChainCode:   chainCode,
	}
	return res, nil
}

// FromPublicKey returns a master public extended key for the given public key
// and 32-byte chain code.
func FromPublicKey(pubKey *secp256k1.PublicKey, chainCode []byte) (*ExtendedKey, error) {
	if len(chainCode) != chainCodeLen {
		return nil, ErrInvalidKeyLen
	}
	return &ExtendedKey{
		Version:   BitcoinMainnetPublic,
		KeyData:   pubKey.SerializeCompressed(),
		ChainCode: append([]byte(nil), chainCode...),
	}, nil
}

// FromString parses a base58 encoded extended key such as "xprv..." or
// "xpub...".
func FromString(str string) (*ExtendedKey, error) {
	bin, err := base58.Bitcoin.Decode(str)
	if err != nil {
		return nil, err
	}

	e := &ExtendedKey{}
	return e, e.UnmarshalBinary(bin)
}

func (k *ExtendedKey) IsPrivate() bool {
	return k.Version.IsPrivate()
}

// Child derives extended key at a given index i.
// If parent is private, then derived key is also private. If parent is public, then derived is public.
//
// If i >= HardenedBit, then hardened key is generated.
// You can only generate hardened keys from private parent keys.
// If you try generating hardened key form public parent key, ErrDerivingHardenedFromPublic is returned.
//
// There are four CKD (child key derivation) scenarios:
// 1) Private extended key -> Hardened child private extended key
// 2) Private extended key -> Non-hardened child private extended key
// 3) Public extended key -> Non-hardened child public extended key
// 4) Public extended key -> Hardened child public extended key (INVALID!)
func (k *ExtendedKey) Child(i uint32) (*ExtendedKey, error) {
	il, child, err := k.childWithIL(i)
	il.Zero()
	return child, err
}

// childWithIL derives the child at index i and also returns parse256(IL),
// the tweak that was added to the parent key.
func (k *ExtendedKey) childWithIL(i uint32) (secp256k1.ModNScalar, *ExtendedKey, error) {
	var il secp256k1.ModNScalar
	if k.Depth == 0xff {
		return il, nil, ErrMaxDepthExceeded
	}

	// A hardened child may not be created from a public extended key (Case #4).
	isChildHardened := i&HardenedBit == HardenedBit
	if !k.IsPrivate() && isChildHardened {
		return il, nil, ErrDerivingHardenedFromPublic
	}

	parentPub, err := k.pubKeyBytes()
	if err != nil {
		return il, nil, err
	}

	const keyLen = 33
	seed := make([]byte, keyLen+4)
	if isChildHardened {
		// Case #1: 0x00 || ser256(parentKey) || ser32(i)
		copy(seed[1:], k.KeyData)
	} else {
		// Case #2 and #3: serP(parentPubKey) || ser32(i)
		copy(seed, parentPub)
	}
	binary.BigEndian.PutUint32(seed[keyLen:], i)

	il, chainCode, err := hmacCKD(seed, k.ChainCode)
	for j := range seed {
		seed[j] = 0
	}
	if err != nil {
		return il, nil, err
	}

	child := &ExtendedKey{
		ChainCode:   chainCode,
		Depth:       k.Depth + 1,
		ChildNumber: i,
	}
	// The fingerprint for the derived child is the first 4 bytes of the
	// parent's key identifier.
	copy(child.Fingerprint[:], rmd160sha256(parentPub))

	if k.IsPrivate() {
		// Case #1 or #2: childKey = parse256(IL) + parentKey
		parent, err := secp256k1.ParsePrivateKey(k.KeyData)
		if err != nil {
			return il, nil, err
		}
		defer parent.Zero()

		var childKey secp256k1.ModNScalar
		childKey.Add2(&il, &parent.Key)
		if childKey.IsZero() {
			return il, nil, ErrInvalidKey
		}
		keyData := childKey.Bytes()
		childKey.Zero()

		child.KeyData = keyData[:]
		child.Version = k.Version
	} else {
		// Case #3: childKey = serP(point(parse256(IL)) + parentKey)
		pubKey, err := secp256k1.ParsePubKey(k.KeyData)
		if err != nil {
			return il, nil, err
		}
		var ilG, parentPoint, sum secp256k1.ProjectivePoint
		secp256k1.ScalarBaseMult(&il, &ilG)
		pubKey.AsProjective(&parentPoint)
		secp256k1.AddPoints(&ilG, &parentPoint, &sum)
		if sum.IsIdentity() {
			return il, nil, ErrInvalidKey
		}
		sum.ToAffine()
		pk, err := secp256k1.NewPublicKey(&sum.X, &sum.Y)
		if err != nil {
			return il, nil, err
		}
		child.KeyData = pk.SerializeCompressed()
		child.Version = k.Version.ToPublic()
	}
	return il, child, nil
}

// Derive returns a derived child key at a given path
func (k *ExtendedKey) Derive(path []uint32) (*ExtendedKey, error) {
	il, extKey, err := k.DeriveWithIL(path)
	if il != nil {
		il.Zero()
	}
	return extKey, err
}

// DeriveWithIL returns a derived child key at a given path along with the sum
// of the IL tweaks of every step modulo the group order.  For non-hardened
// paths the public key of the result is the public key of k plus IL*G, which
// lets holders of shares of the parent secret derive their child shares.
func (k *ExtendedKey) DeriveWithIL(path []uint32) (*secp256k1.ModNScalar, *ExtendedKey, error) {
	var ilSum secp256k1.ModNScalar
	extKey := k
	for _, i := range path {
		il, child, err := extKey.childWithIL(i)
		if err != nil {
			ilSum.Zero()
			return nil, nil, fmt.Errorf("%w: index %d: %w", ErrDerivingChild, i, err)
		}
		ilSum.Add(&il)
		il.Zero()
		extKey = child
	}

	return &ilSum, extKey, nil
}

// Public returns a new extended public key from a give extended private key.
// If the input extended key is already public, it will be returned unaltered.
func (k *ExtendedKey) Public() (*ExtendedKey, error) {
	// Already an extended public key.
	if !k.IsPrivate() {
		return k, nil
	}

	// Convert it to an extended public key.  The key for the new extended
	// key will simply be the pubkey of the current extended private key.
	pub, err := k.pubKeyBytes()
	if err != nil {
		return nil, err
	}
	return &ExtendedKey{
		Version:     k.Version.ToPublic(),
		KeyData:     pub,
		ChainCode:   k.ChainCode,
		Fingerprint: k.Fingerprint,
		Depth:       k.Depth,
		ChildNumber: k.ChildNumber,
	}, nil
}

// MarshalBinary encodes the key in standard format that can be base58 encoded for humans
func (k *ExtendedKey) MarshalBinary() ([]byte, error) {
	var childNumBytes [4]byte
	binary.BigEndian.PutUint32(childNumBytes[:], k.ChildNumber)

	// The serialized format is:
	//   version (4) || depth (1) || parent fingerprint (4)) ||
	//   child num (4) || chain code (32) || key data (33) || checksum (4)
	serializedBytes := make([]byte, 0, serializedKeyLen+4)
	serializedBytes = append(serializedBytes, k.Version[:]...)
	serializedBytes = append(serializedBytes, k.Depth)
	serializedBytes = append(serializedBytes, k.Fingerprint[:]...)
	serializedBytes = append(serializedBytes, childNumBytes[:]...)
	serializedBytes = append(serializedBytes, k.ChainCode...)
	if k.IsPrivate() {
		if len(k.KeyData) != secp256k1.PrivKeyBytesLen {
			return nil, ErrInvalidKeyLen
		}
		serializedBytes = append(serializedBytes, 0x00)
		serializedBytes = append(serializedBytes, k.KeyData...)
	} else {
		if len(k.KeyData) != secp256k1.PubKeyBytesLenCompressed {
			return nil, ErrInvalidKeyLen
		}
		serializedBytes = append(serializedBytes, k.KeyData...)
	}

	checkSum := doubleSha256(serializedBytes)[:4]
	serializedBytes = append(serializedBytes, checkSum...)
	return serializedBytes, nil
}

func (k *ExtendedKey) String() string {
	bin, err := k.MarshalBinary()
	if err != nil {
		return ""
	}
	return base58.Bitcoin.Encode(bin)
}

// pubKeyBytes returns bytes for the serialized compressed public key associated
// with this extended key.
//
// When the extended key is already a public key, the key is simply returned as
// is since it's already in the correct form.
func (k *ExtendedKey) pubKeyBytes() ([]byte, error) {
	if !k.IsPrivate() {
		return k.KeyData, nil
	}

	pubKey, err := k.PublicKey()
	if err != nil {
		return nil, err
	}
	return pubKey.SerializeCompressed(), nil
}

// PrivateKey returns the private key of a private extended key.  The caller
// owns the returned key and should wipe it with Zero when done.
func (k *ExtendedKey) PrivateKey() (*secp256k1.PrivateKey, error) {
	if !k.IsPrivate() {
		return nil, ErrNotPrivExtKey
	}
	return secp256k1.ParsePrivateKey(k.KeyData)
}

// PublicKey returns the public key of the extended key.
func (k *ExtendedKey) PublicKey() (*secp256k1.PublicKey, error) {
	if !k.IsPrivate() {
		return secp256k1.ParsePubKey(k.KeyData)
	}
	var pubKey *secp256k1.PublicKey
	err := secp256k1.WithPrivateKey(k.KeyData, func(priv *secp256k1.PrivateKey) error {
		pubKey = priv.PubKey()
		return nil
	})
	return pubKey, err
}

// ToECDSA returns the key data as ecdsa.PrivateKey
func (k *ExtendedKey) ToECDSA() (*ecdsa.PrivateKey, error) {
	privKey, err := k.PrivateKey()
	if err != nil {
		return nil, err
	}
	defer privKey.Zero()
	return privKey.ToECDSA(), nil
}

func (k *ExtendedKey) UnmarshalBinary(data []byte) error {
	if len(data) != serializedKeyLen+4 {
		return ErrInvalidKeyLen
	}

	// The serialized format is:
	//   version (4) || depth (1) || parent fingerprint (4)) ||
	//   child num (4) || chain code (32) || key data (33) || checksum (4)

	// Split the payload and checksum up and ensure the checksum matches.
	payload := data[:len(data)-4]
	checkSum := data[len(data)-4:]
	expectedCheckSum := doubleSha256(payload)[:4]
	if !bytes.Equal(checkSum, expectedCheckSum) {
		return ErrBadChecksum
	}

	// Deserialize each of the payload fields.
	var version KeyVersion
	copy(version[:], payload[:4])
	depth := payload[4]
	var fingerprint [4]byte
	copy(fingerprint[:], payload[5:9])
	childNumber := binary.BigEndian.Uint32(payload[9:13])
	chainCode := append([]byte(nil), payload[13:45]...)
	keyData := append([]byte(nil), payload[45:78]...)

	// The key data is a private key if it starts with 0x00.  Serialized
	// compressed pubkeys either start with 0x02 or 0x03.
	isPrivate := keyData[0] == 0x00
	if isPrivate != version.IsPrivate() {
		return ErrInvalidPrivateFlag
	}

	if isPrivate {
		// Ensure the private key is within [1, N-1].
		keyData = keyData[1:]
		if err := secp256k1.WithPrivateKey(keyData, func(*secp256k1.PrivateKey) error {
			return nil
		}); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidKey, err)
		}
	} else {
		// Ensure the public key parses correctly and is actually on the
		// secp256k1 curve.
		if _, err := secp256k1.ParsePubKey(keyData); err != nil {
			return err
		}
	}

	k.Version = version
	k.KeyData = keyData
	k.ChainCode = chainCode
	k.Fingerprint = fingerprint
	k.Depth = depth
	k.ChildNumber = childNumber
	return nil
}
