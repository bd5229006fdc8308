package party

import (
	"encoding/binary"

	"github.com/8888flbu/OTPSI/xhash"
)

// deriveOKVSSeeds computes party partyID's initial RB-OKVS seeds,
// deterministic in (saltTag, partyID) so any peer can independently
// re-derive the starting point before consulting Registry for the final,
// possibly-reseeded value.
func deriveOKVSSeeds(saltTag uint64, partyID int) (uint64, uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(partyID))
	e := xhash.Derive(saltTag, buf[:])
	return e.Hi, e.Lo
}

// reseed derives a fresh pair of seeds from the previous pair and a retry
// counter, used by RunS13's bounded reseed-and-retry loop on an
// unsolvable system.
func reseed(seedR1, seedR2 uint64, attempt int) (uint64, uint64) {
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[0:8], seedR1)
	binary.BigEndian.PutUint64(buf[8:16], uint64(attempt))
	e := xhash.Derive(seedR2, buf[:])
	return e.Hi, e.Lo
}
