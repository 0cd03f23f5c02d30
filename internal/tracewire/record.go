package tracewire

import (
	"encoding/binary"
	"math"

	"github.com/observe-l/hamming74/hamming"
)

// Version of the record layout written by this package.
const Version uint8 = 1

// Flag bits.
const (
	FlagCodeword uint8 = 1 << 0 // received word is a codeword
)

// Record is one simulated transmission in a trace file. Words are stored
// as their big-endian 7-bit values.
type Record struct {
	Version   uint8  // 1
	Outcome   uint8  // hamming.Outcome
	Index     uint8  // message index 0..15
	Sent      uint8
	Received  uint8
	Decoded   uint8
	Flags     uint8
	BitErrors uint8  // distance between Sent and Received
	PPM       uint32 // flip probability in parts per million
	Seq       uint32 // trial number within its run
}

const RecordLen = 1 + 1 + 1 + 1 + 1 + 1 + 1 + 1 + 4 + 4

// FromTrial converts a trial. received-is-codeword is derived from the outcome.
func FromTrial(t hamming.Trial) Record {
	r := Record{
		Version:   Version,
		Outcome:   uint8(t.Outcome),
		Index:     uint8(t.Index),
		Sent:      t.Sent.Uint8(),
		Received:  t.Received.Uint8(),
		Decoded:   t.Decoded.Uint8(),
		BitErrors: uint8(hamming.Distance(t.Sent, t.Received)),
		PPM:       uint32(math.Round(t.P * 1e6)),
		Seq:       uint32(t.Seq),
	}
	if t.Outcome == hamming.NoError || t.Outcome == hamming.Undetected {
		r.Flags |= FlagCodeword
	}
	return r
}

// P returns the flip probability as a float.
func (r *Record) P() float64 { return float64(r.PPM) / 1e6 }

func (r *Record) MarshalBinary(b []byte) []byte {
	if len(b) < RecordLen {
		b = make([]byte, RecordLen)
	}
	b[0] = r.Version
	b[1] = r.Outcome
	b[2] = r.Index
	b[3] = r.Sent
	b[4] = r.Received
	b[5] = r.Decoded
	b[6] = r.Flags
	b[7] = r.BitErrors
	binary.LittleEndian.PutUint32(b[8:12], r.PPM)
	binary.LittleEndian.PutUint32(b[12:16], r.Seq)
	return b[:RecordLen]
}

func (r *Record) UnmarshalBinary(b []byte) bool {
	if len(b) < RecordLen {
		return false
	}
	r.Version = b[0]
	r.Outcome = b[1]
	r.Index = b[2]
	r.Sent = b[3]
	r.Received = b[4]
	r.Decoded = b[5]
	r.Flags = b[6]
	r.BitErrors = b[7]
	r.PPM = binary.LittleEndian.Uint32(b[8:12])
	r.Seq = binary.LittleEndian.Uint32(b[12:16])
	return true
}
