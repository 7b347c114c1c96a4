package mlkem

// compress maps x to the nearest multiple of q/2^d, expressed as a d-bit
// value: round(2^d / q * x) mod 2^d.
// Implements the Compress_d function of FIPS 203 section 4.2.1.
func compress(d int, x FieldElement) FieldElement {
	v := (uint32(x)<<d + q/2) / q
	return FieldElement(v & (1<<d - 1))
}

// decompress is the approximate inverse of compress:
// round(q / 2^d * y).
func decompress(d int, y FieldElement) FieldElement {
	return FieldElement((uint32(y)*q + 1<<(d-1)) >> d)
}

// polyCompress compresses every coefficient to d bits.
func polyCompress[T ~[n]FieldElement](d int, f T) (g T) {
	for i := range g {
		g[i] = compress(d, f[i])
	}
	return g
}

// polyDecompress maps every d-bit value back to the field.
func polyDecompress[T ~[n]FieldElement](d int, f T) (g T) {
	for i := range g {
		g[i] = decompress(d, f[i])
	}
	return g
}

// Compress compresses every coefficient to d bits.
func (f Polynomial) Compress(d int) Polynomial { return polyCompress(d, f) }

// Decompress maps every d-bit coefficient back to the field.
func (f Polynomial) Decompress(d int) Polynomial { return polyDecompress(d, f) }

// Compress compresses every coefficient of every component to d bits.
func (v PolynomialVector) Compress(d int) PolynomialVector {
	out := make(PolynomialVector, len(v))
	for i := range v {
		out[i] = v[i].Compress(d)
	}
	return out
}

// Decompress maps every component back to the field.
func (v PolynomialVector) Decompress(d int) PolynomialVector {
	out := make(PolynomialVector, len(v))
	for i := range v {
		out[i] = v[i].Decompress(d)
	}
	return out
}

// PolynomialFromMessage maps a 32-byte message to a polynomial: bit i of
// the message becomes coefficient i, decompressed from one bit, so a set
// bit turns into round(q/2) = 1665.
func PolynomialFromMessage(msg []byte) (Polynomial, error) {
	f, err := ByteDecode[Polynomial](1, msg)
	if err != nil {
		return Polynomial{}, err
	}
	return f.Decompress(1), nil
}

// ToMessage recovers a 32-byte message from a polynomial by threshold
// decoding: coefficients closer to q/2 than to 0 map to set bits.
func (f Polynomial) ToMessage() []byte {
	return ByteEncode(1, f.Compress(1))
}
