package mlkem

// Precomputed twiddle tables for the NTT and the NTT-domain multiply.
//
//	zetaPowBitrev[i] = zeta^BitRev7(i) mod q
//	gamma[i]         = zeta^(2*BitRev7(i)+1) mod q
//
// with zeta = 17, the primitive 256th root of unity mod q. The tables are
// re-derived from scratch in the tests.
var zetaPowBitrev = [128]FieldElement{
	1, 1729, 2580, 3289, 2642, 630, 1897, 848,
	1062, 1919, 193, 797, 2786, 3260, 569, 1746,
	296, 2447, 1339, 1476, 3046, 56, 2240, 1333,
	1426, 2094, 535, 2882, 2393, 2879, 1974, 821,
	289, 331, 3253, 1756, 1197, 2304, 2277, 2055,
	650, 1977, 2513, 632, 2865, 33, 1320, 1915,
	2319, 1435, 807, 452, 1438, 2868, 1534, 2402,
	2647, 2617, 1481, 648, 2474, 3110, 1227, 910,
	17, 2761, 583, 2649, 1637, 723, 2288, 1100,
	1409, 2662, 3281, 233, 756, 2156, 3015, 3050,
	1703, 1651, 2789, 1789, 1847, 952, 1461, 2687,
	939, 2308, 2437, 2388, 733, 2337, 268, 641,
	1584, 2298, 2037, 3220, 375, 2549, 2090, 1645,
	1063, 319, 2773, 757, 2099, 561, 2466, 2594,
	2804, 1092, 403, 1026, 1143, 2150, 2775, 886,
	1722, 1212, 1874, 1029, 2110, 2935, 885, 2154,
}

var gamma = [128]FieldElement{
	17, 3312, 2761, 568, 583, 2746, 2649, 680,
	1637, 1692, 723, 2606, 2288, 1041, 1100, 2229,
	1409, 1920, 2662, 667, 3281, 48, 233, 3096,
	756, 2573, 2156, 1173, 3015, 314, 3050, 279,
	1703, 1626, 1651, 1678, 2789, 540, 1789, 1540,
	1847, 1482, 952, 2377, 1461, 1868, 2687, 642,
	939, 2390, 2308, 1021, 2437, 892, 2388, 941,
	733, 2596, 2337, 992, 268, 3061, 641, 2688,
	1584, 1745, 2298, 1031, 2037, 1292, 3220, 109,
	375, 2954, 2549, 780, 2090, 1239, 1645, 1684,
	1063, 2266, 319, 3010, 2773, 556, 757, 2572,
	2099, 1230, 561, 2768, 2466, 863, 2594, 735,
	2804, 525, 1092, 2237, 403, 2926, 1026, 2303,
	1143, 2186, 2150, 1179, 2775, 554, 886, 2443,
	1722, 1607, 1212, 2117, 1874, 1455, 1029, 2300,
	2110, 1219, 2935, 394, 885, 2444, 2154, 1175,
}

// nInverse is 128^(-1) mod q, the final scaling factor of the inverse NTT.
// The transform stops at length 2, so only 7 of the 8 halving layers run.
const nInverse = 3303

// NTT transforms f to the NTT domain.
// Implements FIPS 203 Algorithm 9 (Cooley-Tukey, in place on a copy).
func (f Polynomial) NTT() NttPolynomial {
	k := 1
	for length := 128; length >= 2; length /= 2 {
		for start := 0; start < n; start += 2 * length {
			z := zetaPowBitrev[k]
			k++
			for j := start; j < start+length; j++ {
				t := fieldMul(z, f[j+length])
				f[j+length] = fieldSub(f[j], t)
				f[j] = fieldAdd(f[j], t)
			}
		}
	}
	return NttPolynomial(f)
}

// NTTInverse transforms f back to the coefficient domain.
// Implements FIPS 203 Algorithm 10 (Gentleman-Sande, in place on a copy).
func (f NttPolynomial) NTTInverse() Polynomial {
	k := 127
	for length := 2; length <= 128; length *= 2 {
		for start := 0; start < n; start += 2 * length {
			z := zetaPowBitrev[k]
			k--
			for j := start; j < start+length; j++ {
				t := f[j]
				f[j] = fieldAdd(t, f[j+length])
				f[j+length] = fieldMul(z, fieldSub(f[j+length], t))
			}
		}
	}
	return polyScalarMul(nInverse, Polynomial(f))
}

// baseCaseMultiply multiplies (a0 + a1*X) and (b0 + b1*X) in
// Z_q[X]/(X^2 - gamma[i]).
// Implements FIPS 203 Algorithm 12 (BaseCaseMultiply).
//
// This is a hot loop, so products are widened once and reduced as few
// times as possible. b1*g is reduced first to keep a0*b0 + a1*b1g below
// 2^32.
func baseCaseMultiply(a0, a1, b0, b1 FieldElement, i int) (FieldElement, FieldElement) {
	g := uint32(gamma[i])

	b1g := uint32(barrettReduce(uint32(b1) * g))

	c0 := barrettReduce(uint32(a0)*uint32(b0) + uint32(a1)*b1g)
	c1 := barrettReduce(uint32(a0)*uint32(b1) + uint32(a1)*uint32(b0))
	return c0, c1
}

// Mul multiplies two NTT-domain polynomials pairwise.
// Implements FIPS 203 Algorithm 11 (MultiplyNTTs).
func (f NttPolynomial) Mul(g NttPolynomial) NttPolynomial {
	var out NttPolynomial
	for i := 0; i < n/2; i++ {
		out[2*i], out[2*i+1] = baseCaseMultiply(f[2*i], f[2*i+1], g[2*i], g[2*i+1], i)
	}
	return out
}
