package hamming

// Decoder maps a received word to the nearest codeword of a built codebook.
type Decoder struct {
	cb *Codebook
}

// NewDecoder fails with ErrPrecondition if cb has not been built.
func NewDecoder(cb *Codebook) (*Decoder, error) {
	if err := cb.Ready(); err != nil {
		return nil, err
	}
	return &Decoder{cb: cb}, nil
}

// DecodeIndex returns the message index of the codeword closest to w.
// Ties go to the lowest index.
func (d *Decoder) DecodeIndex(w Word) int {
	best, bestDist := 0, N+1
	for i, c := range d.cb.words {
		if dist := Distance(w, c); dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}

// Decode returns the codeword closest to w. Every word within distance 1 of
// a codeword decodes to it; heavier error patterns land on another codeword.
func (d *Decoder) Decode(w Word) Word { return d.cb.words[d.DecodeIndex(w)] }

func (d *Decoder) DecodeMessage(w Word) Message { return Message{v: uint8(d.DecodeIndex(w))} }

// DecodeBits is Decode over an unpacked N-bit slice.
func (d *Decoder) DecodeBits(b []byte) ([]byte, error) {
	w, err := WordFromBits(b)
	if err != nil {
		return nil, err
	}
	return d.Decode(w).Bits(), nil
}
