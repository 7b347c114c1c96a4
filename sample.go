package mlkem

import "errors"

var errEta = errors.New("mlkem: eta must be 2 or 3")

// fieldElementReader streams accepted 12-bit candidates out of a XOF.
// It buffers 96 bytes at a time; 96 is a multiple of 3, so a candidate
// never straddles a refill boundary and the number of bytes pulled from
// the XOF depends only on the rejection pattern. When both candidates of
// a 3-byte group are accepted, the second is held in next and delivered
// before any more bytes are consumed.
type fieldElementReader struct {
	xof     XOF
	data    [96]byte
	start   int
	next    FieldElement
	hasNext bool
}

func newFieldElementReader(xof XOF) *fieldElementReader {
	r := &fieldElementReader{xof: xof}
	r.refill()
	return r
}

func (r *fieldElementReader) refill() {
	if _, err := r.xof.Read(r.data[:]); err != nil {
		// The XOF is an unbounded deterministic stream; a read failure
		// is a programming error, not a runtime condition.
		panic("mlkem: xof read failed: " + err.Error())
	}
	r.start = 0
}

// readFieldElement returns the next accepted candidate.
func (r *fieldElementReader) readFieldElement() FieldElement {
	if r.hasNext {
		r.hasNext = false
		return r.next
	}

	for {
		if r.start == len(r.data) {
			r.refill()
		}

		b0 := uint16(r.data[r.start])
		b1 := uint16(r.data[r.start+1])
		b2 := uint16(r.data[r.start+2])
		r.start += 3

		d1 := b0 | (b1&0xf)<<8
		d2 := b1>>4 | b2<<4

		if d1 < q {
			if d2 < q {
				r.next = FieldElement(d2)
				r.hasNext = true
			}
			return FieldElement(d1)
		}
		if d2 < q {
			return FieldElement(d2)
		}
	}
}

// SampleUniform draws a uniformly random NTT-domain polynomial from the
// XOF by rejection sampling of 12-bit candidates.
// Implements FIPS 203 Algorithm 7 (SampleNTT).
func SampleUniform(xof XOF) NttPolynomial {
	r := newFieldElementReader(xof)
	var f NttPolynomial
	for i := range f {
		f[i] = r.readFieldElement()
	}
	return f
}

// onesDiff is a lookup table for CBD sampling:
//
//	onesDiff[x][y] = popcount(x) - popcount(y) mod q
//
// for x, y in [0, 8), which covers eta <= 3. The table trades two
// popcounts and a signed subtraction for a branch-free load.
var onesDiff = [8][8]FieldElement{
	{0, 3328, 3328, 3327, 3328, 3327, 3327, 3326},
	{1, 0, 0, 3328, 0, 3328, 3328, 3327},
	{1, 0, 0, 3328, 0, 3328, 3328, 3327},
	{2, 1, 1, 0, 1, 0, 0, 3328},
	{1, 0, 0, 3328, 0, 3328, 3328, 3327},
	{2, 1, 1, 0, 1, 0, 0, 3328},
	{2, 1, 1, 0, 1, 0, 0, 3328},
	{3, 2, 2, 1, 2, 1, 1, 0},
}

// SamplePolyCBD maps 64*eta bytes of PRF output to a polynomial whose
// coefficients follow the centered binomial distribution with parameter
// eta (2 or 3). Instead of walking individual bits, the input is decoded
// as 256 values of width 2*eta and each value is split into its low and
// high eta-bit halves.
// Implements FIPS 203 Algorithm 8 (SamplePolyCBD).
func SamplePolyCBD(b []byte, eta int) (Polynomial, error) {
	if eta != 2 && eta != 3 {
		return Polynomial{}, errEta
	}

	vals, err := ByteDecode[Polynomial](2*eta, b)
	if err != nil {
		return Polynomial{}, err
	}

	mask := FieldElement(1<<eta - 1)
	var f Polynomial
	for i, v := range vals {
		x := v & mask
		y := v >> eta
		f[i] = onesDiff[x][y]
	}
	return f, nil
}
