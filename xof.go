package mlkem

import "golang.org/x/crypto/sha3"

// XOF is a streaming byte source with unbounded output. Read always
// fills the whole buffer. The uniform sampler consumes one of these per
// matrix entry.
type XOF interface {
	Read(p []byte) (int, error)
}

// NewXOF returns the XOF for seed rho and indices i, j: SHAKE-128
// absorbing rho || i || j. rho must be 32 bytes.
func NewXOF(rho []byte, i, j byte) XOF {
	h := sha3.NewShake128()
	h.Write(rho)
	h.Write([]byte{i, j})
	return h
}

// PRF returns 64*eta bytes derived from sigma and the counter n:
// SHAKE-256 of sigma || n truncated to the required length. sigma must
// be 32 bytes and eta 2 or 3.
func PRF(eta int, sigma []byte, n byte) []byte {
	h := sha3.NewShake256()
	h.Write(sigma)
	h.Write([]byte{n})
	out := make([]byte, 64*eta)
	h.Read(out)
	return out
}
