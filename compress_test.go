package mlkem

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompressRange(t *testing.T) {
	for _, d := range []int{1, 4, 5, 6, 10, 11} {
		for x := 0; x < q; x++ {
			c := compress(d, FieldElement(x))
			require.Less(t, uint16(c), uint16(1)<<d, "d=%d x=%d", d, x)
		}
	}
}

func TestCompressDecompressError(t *testing.T) {
	// Decompress(Compress(x)) differs from x by at most round(q / 2^(d+1)).
	for _, d := range []int{1, 4, 5, 6, 10, 11} {
		bound := (q + (1 << d)) >> (d + 1)
		for x := 0; x < q; x++ {
			y := decompress(d, compress(d, FieldElement(x)))
			diff := int(x) - int(y)
			if diff < 0 {
				diff = -diff
			}
			if diff > q/2 {
				diff = q - diff
			}
			require.LessOrEqual(t, diff, bound, "d=%d x=%d", d, x)
		}
	}
}

func TestDecompressCompressIdentity(t *testing.T) {
	// Compress is a left inverse of Decompress for every d-bit value.
	for _, d := range []int{1, 4, 5, 6, 10, 11} {
		for y := 0; y < 1<<d; y++ {
			require.Equal(t, FieldElement(y), compress(d, decompress(d, FieldElement(y))), "d=%d y=%d", d, y)
		}
	}
}

func TestMessageRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(30))
	for iter := 0; iter < 100; iter++ {
		msg := make([]byte, MessageSize)
		rng.Read(msg)

		f, err := PolynomialFromMessage(msg)
		require.NoError(t, err)

		// A set bit decompresses to round(q/2).
		for i, v := range f {
			bit := msg[i/8] >> (i % 8) & 1
			if bit == 1 {
				require.Equal(t, FieldElement((q+1)/2), v)
			} else {
				require.Equal(t, FieldElement(0), v)
			}
		}

		require.Equal(t, msg, f.ToMessage())
	}

	_, err := PolynomialFromMessage(make([]byte, MessageSize-1))
	require.ErrorIs(t, err, errEncodedSize)
}

func TestMessageNoiseTolerance(t *testing.T) {
	// Threshold decoding survives per-coefficient noise up to q/4.
	msg := make([]byte, MessageSize)
	for i := range msg {
		msg[i] = byte(0x5a + i)
	}
	f, err := PolynomialFromMessage(msg)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(31))
	var noisy Polynomial
	for i, v := range f {
		e := FieldElement(rng.Intn(q / 4))
		if rng.Intn(2) == 0 {
			noisy[i] = fieldAdd(v, e)
		} else {
			noisy[i] = fieldSub(v, e)
		}
	}

	require.Equal(t, msg, noisy.ToMessage())
}

func TestVectorCompress(t *testing.T) {
	rng := rand.New(rand.NewSource(32))
	v := make(PolynomialVector, 3)
	for i := range v {
		v[i] = randomPolynomial(rng)
	}

	c := v.Compress(10)
	for i := range c {
		require.Equal(t, v[i].Compress(10), c[i])
	}
	require.Equal(t, c, c.Decompress(10).Compress(10))
}
