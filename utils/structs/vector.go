// Package structs provides small generic serializable containers — Vector
// and Matrix — giving a flat or 2D slice of numeric values a
// length-prefixed binary wire form. Vector[uint64] carries the OKVS
// storage vector (okvs package); Matrix is not used elsewhere in this
// module.
package structs

import (
	"bytes"
	"encoding/binary"

	"golang.org/x/exp/constraints"
)

// Number is the set of types Vector and Matrix can hold.
type Number interface {
	constraints.Float | constraints.Integer
}

// Vector is a length-prefixed, binary-(de)serializable slice of numbers.
type Vector[T Number] []T

// MarshalBinary encodes the vector as a little-endian uint64 length
// followed by the elements, little-endian.
func (v Vector[T]) MarshalBinary() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, uint64(len(v))); err != nil {
		return nil, err
	}
	if len(v) > 0 {
		if err := binary.Write(buf, binary.LittleEndian, []T(v)); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a slice of bytes produced by MarshalBinary.
func (v *Vector[T]) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)
	var n uint64
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return err
	}
	out := make([]T, n)
	if n > 0 {
		if err := binary.Read(r, binary.LittleEndian, out); err != nil {
			return err
		}
	}
	*v = out
	return nil
}
