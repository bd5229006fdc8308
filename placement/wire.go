package placement

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/8888flbu/OTPSI/gf128"
)

// shareWireSize is the fixed encoded size of one Share: a 4-byte party id
// plus two 16-byte field elements (spec.md section 6).
const shareWireSize = 4 + 16 + 16

// MarshalBinary encodes a share as {party_id: u32, fx_i: 16 bytes, tag: 16
// bytes}: party_id big-endian, fx_i and tag in gf128.Elem.Bytes form
// (little-endian, lo then hi).
func (s Share) MarshalBinary() ([]byte, error) {
	buf := make([]byte, shareWireSize)
	binary.BigEndian.PutUint32(buf[0:4], s.PartyID)
	fx := s.Fx.Bytes()
	copy(buf[4:4+16], fx[:])
	tag := s.Tag.Bytes()
	copy(buf[4+16:], tag[:])
	return buf, nil
}

// UnmarshalBinary decodes a share produced by MarshalBinary.
func (s *Share) UnmarshalBinary(data []byte) error {
	if len(data) != shareWireSize {
		return fmt.Errorf("placement: share: want %d bytes, got %d", shareWireSize, len(data))
	}
	s.PartyID = binary.BigEndian.Uint32(data[0:4])
	fx, err := gf128.FromBytes(data[4 : 4+16])
	if err != nil {
		return fmt.Errorf("placement: share fx: %w", err)
	}
	tag, err := gf128.FromBytes(data[4+16:])
	if err != nil {
		return fmt.Errorf("placement: share tag: %w", err)
	}
	s.Fx = fx
	s.Tag = tag
	return nil
}

// MarshalBinary encodes the bucket as a uint64 share count followed by
// each share's fixed-size encoding back to back.
func (b Bucket) MarshalBinary() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, uint64(len(b))); err != nil {
		return nil, err
	}
	for _, s := range b {
		data, err := s.MarshalBinary()
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a bucket produced by MarshalBinary.
func (b *Bucket) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)
	var n uint64
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return err
	}
	out := make(Bucket, n)
	shareBuf := make([]byte, shareWireSize)
	for i := range out {
		if _, err := r.Read(shareBuf); err != nil {
			return fmt.Errorf("placement: bucket share %d: %w", i, err)
		}
		if err := out[i].UnmarshalBinary(shareBuf); err != nil {
			return err
		}
	}
	*b = out
	return nil
}

// MarshalBinary encodes the table as a uint64 bucket count followed by
// each bucket's own length-prefixed encoding.
func (t Table) MarshalBinary() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, uint64(len(t))); err != nil {
		return nil, err
	}
	for _, bucket := range t {
		data, err := bucket.MarshalBinary()
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a table produced by MarshalBinary.
func (t *Table) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)
	var numBuckets uint64
	if err := binary.Read(r, binary.LittleEndian, &numBuckets); err != nil {
		return err
	}

	out := make(Table, numBuckets)
	for i := range out {
		var n uint64
		if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
			return fmt.Errorf("placement: table bucket %d length: %w", i, err)
		}
		bucket := make(Bucket, n)
		shareBuf := make([]byte, shareWireSize)
		for j := range bucket {
			if _, err := r.Read(shareBuf); err != nil {
				return fmt.Errorf("placement: table bucket %d share %d: %w", i, j, err)
			}
			if err := bucket[j].UnmarshalBinary(shareBuf); err != nil {
				return err
			}
		}
		out[i] = bucket
	}
	*t = out
	return nil
}
