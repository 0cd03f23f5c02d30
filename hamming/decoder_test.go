package hamming_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/observe-l/hamming74/hamming"
)

func TestDecodeExample(t *testing.T) {
	dec, err := hamming.NewDecoder(hamming.NewCodebook())
	require.NoError(t, err)

	assert.Equal(t, "1011010", dec.Decode(mustWord(t, "1011010")).String())
	assert.Equal(t, "1011010", dec.Decode(mustWord(t, "1001010")).String())
	assert.Equal(t, "1011", dec.DecodeMessage(mustWord(t, "1001010")).String())
}

func TestDecodeCodewordsAndSingleErrors(t *testing.T) {
	cb := hamming.NewCodebook()
	dec, err := hamming.NewDecoder(cb)
	require.NoError(t, err)

	for i, c := range cb.Words() {
		assert.Equal(t, c, dec.Decode(c), "noiseless %s", c)
		assert.Equal(t, i, dec.DecodeIndex(c))
		for pos := 0; pos < hamming.N; pos++ {
			assert.Equal(t, c, dec.Decode(c.Flip(pos)), "%s with bit %d flipped", c, pos)
		}
	}
}

func TestDecodeDoubleErrorsMiscorrect(t *testing.T) {
	cb := hamming.NewCodebook()
	dec, err := hamming.NewDecoder(cb)
	require.NoError(t, err)

	for _, c := range cb.Words() {
		for i := 0; i < hamming.N; i++ {
			for j := i + 1; j < hamming.N; j++ {
				r := c.Flip(i).Flip(j)
				got := dec.Decode(r)
				assert.NotEqual(t, c, got, "%s with bits %d,%d flipped", c, i, j)
				assert.Equal(t, 1, hamming.Distance(r, got))
			}
		}
	}
}

func TestDecodeBits(t *testing.T) {
	dec, err := hamming.NewDecoder(hamming.NewCodebook())
	require.NoError(t, err)

	got, err := dec.DecodeBits([]byte{1, 0, 0, 1, 0, 1, 0})
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 0, 1, 1, 0, 1, 0}, got)

	_, err = dec.DecodeBits([]byte{1, 0, 0, 1, 0, 1})
	assert.ErrorIs(t, err, hamming.ErrInvalidInput)
}
