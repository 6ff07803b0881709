package keycache

import (
	"crypto/sha256"
	"errors"
	"sync"
	"testing"

	"github.com/mapxus/secp256k1"
	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T, b byte) *secp256k1.PrivateKey {
	t.Helper()
	raw := make([]byte, 32)
	raw[31] = b
	key, err := secp256k1.ParsePrivateKey(raw)
	require.NoError(t, err)
	return key
}

func TestParseCachesValidKeys(t *testing.T) {
	c, err := New(4)
	require.NoError(t, err)

	pub := testKey(t, 9).PubKey()
	serialized := pub.SerializeCompressed()

	first, err := c.Parse(serialized)
	require.NoError(t, err)
	require.True(t, first.IsEqual(pub))
	require.Equal(t, 1, c.Len())

	second, err := c.Parse(serialized)
	require.NoError(t, err)
	require.Same(t, first, second)
	require.Equal(t, 1, c.Len())

	c.Purge()
	require.Equal(t, 0, c.Len())
}

func TestParseDoesNotCacheInvalidKeys(t *testing.T) {
	c, err := New(4)
	require.NoError(t, err)

	bad := make([]byte, 33)
	bad[0] = 0x05
	_, err = c.Parse(bad)
	require.True(t, errors.Is(err, secp256k1.ErrPubKeyInvalidFormat))
	require.True(t, errors.Is(err, secp256k1.ErrDecode))
	require.Equal(t, 0, c.Len())
}

func TestCacheEvicts(t *testing.T) {
	c, err := New(2)
	require.NoError(t, err)
	for i := byte(1); i <= 5; i++ {
		_, err := c.Parse(testKey(t, i).PubKey().SerializeCompressed())
		require.NoError(t, err)
	}
	require.LessOrEqual(t, c.Len(), 2)
}

func TestNewRejectsBadSize(t *testing.T) {
	_, err := New(0)
	require.Error(t, err)
}

func TestVerify(t *testing.T) {
	c, err := New(8)
	require.NoError(t, err)

	priv := testKey(t, 42)
	hash := sha256.Sum256([]byte("keycache"))
	sig := secp256k1.Sign(priv, hash[:])
	pubBytes := priv.PubKey().SerializeCompressed()

	ok, err := c.Verify(pubBytes, hash[:], sig.Serialize())
	require.NoError(t, err)
	require.True(t, ok)

	other := sha256.Sum256([]byte("other"))
	ok, err = c.Verify(pubBytes, other[:], sig.Serialize())
	require.NoError(t, err)
	require.False(t, ok)

	_, err = c.Verify(pubBytes, hash[:], []byte{0x30})
	require.True(t, errors.Is(err, secp256k1.ErrSigTooShort))
}

func TestConcurrentParse(t *testing.T) {
	c, err := New(16)
	require.NoError(t, err)

	keys := make([][]byte, 8)
	for i := range keys {
		keys[i] = testKey(t, byte(i+1)).PubKey().SerializeUncompressed()
	}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				k := keys[(g+i)%len(keys)]
				pub, err := c.Parse(k)
				if err != nil {
					t.Errorf("unexpected parse error: %v", err)
					return
				}
				if !pub.IsOnCurve() {
					t.Errorf("cached key is not on the curve")
					return
				}
			}
		}(g)
	}
	wg.Wait()
}
