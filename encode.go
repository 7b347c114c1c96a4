package mlkem

import "errors"

var errEncodedSize = errors.New("mlkem: invalid encoded length")

// ByteEncode packs 256 coefficients of d bits each into 32*d bytes,
// little-endian. The supported widths are d in {1, 4, 5, 6, 10, 11, 12};
// coefficients must lie in [0, 2^d) (for d = 12, in [0, q)).
// Implements FIPS 203 Algorithm 5 (ByteEncode_d).
func ByteEncode[T ~[n]FieldElement](d int, f T) []byte {
	b := make([]byte, n*d/8)
	var acc uint64
	accBits := 0
	idx := 0
	for _, v := range f {
		acc |= uint64(v) << accBits
		accBits += d
		for accBits >= 8 {
			b[idx] = byte(acc)
			acc >>= 8
			accBits -= 8
			idx++
		}
	}
	return b
}

// ByteDecode unpacks 32*d bytes into 256 coefficients of d bits each.
// For d = 12 the extracted values are reduced mod q, as required by
// FIPS 203; for smaller widths the d-bit mask already bounds the value.
// Implements FIPS 203 Algorithm 6 (ByteDecode_d).
func ByteDecode[T ~[n]FieldElement](d int, b []byte) (T, error) {
	var f T
	if len(b) != n*d/8 {
		return f, errEncodedSize
	}

	mask := uint64(1)<<d - 1
	var acc uint64
	accBits := 0
	idx := 0
	for i := range f {
		for accBits < d {
			acc |= uint64(b[idx]) << accBits
			idx++
			accBits += 8
		}
		v := uint16(acc & mask)
		acc >>= d
		accBits -= d
		if d == 12 {
			v %= q
		}
		f[i] = FieldElement(v)
	}
	return f, nil
}

// encodeVector encodes each polynomial at width d and concatenates the
// results in vector order.
func encodeVector[T ~[n]FieldElement](d int, vec []T) []byte {
	b := make([]byte, 0, len(vec)*n*d/8)
	for i := range vec {
		b = append(b, ByteEncode(d, vec[i])...)
	}
	return b
}

// decodeVector splits b into k equal slices and decodes each at width d.
func decodeVector[T ~[n]FieldElement](d, k int, b []byte) ([]T, error) {
	step := n * d / 8
	if len(b) != k*step {
		return nil, errEncodedSize
	}
	vec := make([]T, k)
	for i := range vec {
		f, err := ByteDecode[T](d, b[i*step:(i+1)*step])
		if err != nil {
			return nil, err
		}
		vec[i] = f
	}
	return vec, nil
}

// Encode packs the vector at width d, one polynomial after another.
func (v PolynomialVector) Encode(d int) []byte { return encodeVector(d, v) }

// Encode packs the vector at width d, one polynomial after another.
func (v NttVector) Encode(d int) []byte { return encodeVector(d, v) }

// DecodePolynomialVector decodes k concatenated width-d polynomials.
func DecodePolynomialVector(d, k int, b []byte) (PolynomialVector, error) {
	vec, err := decodeVector[Polynomial](d, k, b)
	return PolynomialVector(vec), err
}

// DecodeNttVector decodes k concatenated width-d NTT polynomials.
func DecodeNttVector(d, k int, b []byte) (NttVector, error) {
	vec, err := decodeVector[NttPolynomial](d, k, b)
	return NttVector(vec), err
}
