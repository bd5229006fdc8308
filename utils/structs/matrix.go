package structs

import (
	"bytes"
	"encoding/binary"
)

// Matrix is a binary-(de)serializable slice of rows, each an independent
// Vector — rows need not share a length.
type Matrix[T Number] [][]T

// MarshalBinary encodes the row count followed by each row's own
// Vector.MarshalBinary encoding back to back.
func (m Matrix[T]) MarshalBinary() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, uint64(len(m))); err != nil {
		return nil, err
	}
	for _, row := range m {
		data, err := Vector[T](row).MarshalBinary()
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a slice of bytes produced by MarshalBinary.
func (m *Matrix[T]) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)
	var rows uint64
	if err := binary.Read(r, binary.LittleEndian, &rows); err != nil {
		return err
	}

	out := make([][]T, rows)
	for i := range out {
		var n uint64
		if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
			return err
		}
		row := make([]T, n)
		if n > 0 {
			if err := binary.Read(r, binary.LittleEndian, row); err != nil {
				return err
			}
		}
		out[i] = row
	}
	*m = out
	return nil
}
