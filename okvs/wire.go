package okvs

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/8888flbu/OTPSI/gf128"
	"github.com/8888flbu/OTPSI/utils/structs"
)

// MarshalBinary flattens the storage into a structs.Vector[uint64] — each
// gf128.Elem contributing its Hi then Lo word — and encodes that vector.
// This is the concrete wire form spec.md section 6 leaves unspecified.
func (s Storage) MarshalBinary() ([]byte, error) {
	flat := make(structs.Vector[uint64], 2*len(s))
	for i, e := range s {
		flat[2*i] = e.Hi
		flat[2*i+1] = e.Lo
	}
	return flat.MarshalBinary()
}

// UnmarshalBinary decodes a Storage produced by MarshalBinary.
func (s *Storage) UnmarshalBinary(data []byte) error {
	var flat structs.Vector[uint64]
	if err := flat.UnmarshalBinary(data); err != nil {
		return err
	}
	if len(flat)%2 != 0 {
		return fmt.Errorf("okvs: corrupt storage encoding: odd word count %d", len(flat))
	}
	out := make(Storage, len(flat)/2)
	for i := range out {
		out[i] = gf128.Elem{Hi: flat[2*i], Lo: flat[2*i+1]}
	}
	*s = out
	return nil
}

// MarshalBinary encodes Params as four little-endian uint64/uint32 fields.
func (p Params) MarshalBinary() ([]byte, error) {
	buf := new(bytes.Buffer)
	for _, v := range []interface{}{p.M, p.W, p.SeedR1, p.SeedR2} {
		if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a Params produced by MarshalBinary.
func (p *Params) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)
	if err := binary.Read(r, binary.LittleEndian, &p.M); err != nil {
		return err
	}
	if err := binary.Read(r, binary.LittleEndian, &p.W); err != nil {
		return err
	}
	if err := binary.Read(r, binary.LittleEndian, &p.SeedR1); err != nil {
		return err
	}
	if err := binary.Read(r, binary.LittleEndian, &p.SeedR2); err != nil {
		return err
	}
	return nil
}
