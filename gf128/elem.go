// Package gf128 implements arithmetic over GF(2^128), the field of
// polynomials over GF(2) reduced modulo the irreducible polynomial
// p(x) = x^128 + x^7 + x^2 + x + 1.
//
// An element is represented as an ordered pair (Hi, Lo) of 64-bit halves:
// bit i of Lo is the coefficient of x^i for i in [0,63], and bit i of Hi is
// the coefficient of x^(64+i) for i in [0,63]. The zero element is (0,0)
// and the multiplicative identity is (0,1).
package gf128

import (
	"encoding/binary"
	"fmt"
)

// Elem is an element of GF(2^128).
type Elem struct {
	Hi, Lo uint64
}

// Zero is the additive identity.
var Zero = Elem{}

// One is the multiplicative identity.
var One = Elem{Hi: 0, Lo: 1}

// IsZero reports whether e is the additive identity.
func (e Elem) IsZero() bool {
	return e.Hi == 0 && e.Lo == 0
}

// Equal reports whether e and o represent the same field element.
func (e Elem) Equal(o Elem) bool {
	return e.Hi == o.Hi && e.Lo == o.Lo
}

// Add returns a+b, computed as bitwise XOR. Total: defined for all inputs.
func Add(a, b Elem) Elem {
	return Elem{Hi: a.Hi ^ b.Hi, Lo: a.Lo ^ b.Lo}
}

// Square returns a*a.
func Square(a Elem) Elem {
	return Mul(a, a)
}

// String implements fmt.Stringer.
func (e Elem) String() string {
	return fmt.Sprintf("%016x%016x", e.Hi, e.Lo)
}

// BinarySize returns the serialized size of an Elem in bytes.
func (Elem) BinarySize() int { return 16 }

// Bytes encodes e as 16 bytes, little-endian (lo then hi). The OKVS storage
// wire format (okvs.Storage.MarshalBinary) does not use it: it writes each
// element as its Hi word then its Lo word.
func (e Elem) Bytes() [16]byte {
	var b [16]byte
	binary.LittleEndian.PutUint64(b[0:8], e.Lo)
	binary.LittleEndian.PutUint64(b[8:16], e.Hi)
	return b
}

// FromBytes decodes an Elem from 16 little-endian bytes (lo then hi).
func FromBytes(b []byte) (Elem, error) {
	if len(b) != 16 {
		return Elem{}, fmt.Errorf("gf128: FromBytes: need 16 bytes, got %d", len(b))
	}
	return Elem{
		Lo: binary.LittleEndian.Uint64(b[0:8]),
		Hi: binary.LittleEndian.Uint64(b[8:16]),
	}, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (e Elem) MarshalBinary() ([]byte, error) {
	b := e.Bytes()
	return b[:], nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (e *Elem) UnmarshalBinary(p []byte) error {
	v, err := FromBytes(p)
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// Inv returns a^(2^128-2), the multiplicative inverse of a for a != Zero.
// Inv(Zero) returns Zero by documented sentinel convention: callers must
// never invert a denominator that can be zero (see shamir.LagrangeAt,
// which guarantees distinct abscissae and so never hits this case).
func Inv(a Elem) Elem {
	if a.IsZero() {
		return Zero
	}

	// Left-to-right binary exponentiation realizing the exponent
	// 2^128-2, whose 128-bit representation is 127 ones (bits 127..1)
	// followed by a zero bit (bit 0).
	result := One
	for i := 127; i >= 1; i-- {
		result = Square(result)
		result = Mul(result, a)
	}
	result = Square(result) // bit 0 is clear: final squaring, no multiply
	return result
}
