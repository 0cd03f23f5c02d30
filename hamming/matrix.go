package hamming

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// parity[i][j] is 1 when message bit m(i+1) feeds parity bit p(j+1).
var parity = [K][N - K]float64{
	{0, 1, 1},
	{1, 0, 1},
	{1, 1, 0},
	{1, 1, 1},
}

// Generator returns the systematic K×N generator matrix G = [I | P].
func Generator() *mat.Dense {
	g := mat.NewDense(K, N, nil)
	for i := 0; i < K; i++ {
		g.Set(i, i, 1)
		for j := 0; j < N-K; j++ {
			g.Set(i, K+j, parity[i][j])
		}
	}
	return g
}

// ParityCheck returns the (N-K)×N parity-check matrix H = [Pᵀ | I].
func ParityCheck() *mat.Dense {
	h := mat.NewDense(N-K, N, nil)
	for j := 0; j < N-K; j++ {
		for i := 0; i < K; i++ {
			h.Set(j, i, parity[i][j])
		}
		h.Set(j, K+j, 1)
	}
	return h
}

// Syndrome returns H·w mod 2. It is all zero exactly when w is a codeword;
// for a single flipped bit it equals the column of H at that position.
func Syndrome(w Word) [N - K]byte {
	x := mat.NewVecDense(N, nil)
	for i := 0; i < N; i++ {
		x.SetVec(i, float64(w.Bit(i)))
	}
	var s mat.VecDense
	s.MulVec(ParityCheck(), x)
	var out [N - K]byte
	for j := range out {
		out[j] = byte(int(math.Round(s.AtVec(j))) % 2)
	}
	return out
}

// mod2 reduces every entry of m modulo 2 in place.
func mod2(m *mat.Dense) {
	m.Apply(func(_, _ int, v float64) float64 {
		return float64(int(math.Round(v)) % 2)
	}, m)
}

// EncodeMatrix computes m·G mod 2. It agrees with Encode for every message.
func EncodeMatrix(m Message) Word {
	row := mat.NewDense(1, K, nil)
	for i := 0; i < K; i++ {
		row.Set(0, i, float64(m.Bit(i)))
	}
	var out mat.Dense
	out.Mul(row, Generator())
	mod2(&out)
	var v uint8
	for i := 0; i < N; i++ {
		v = v<<1 | uint8(out.At(0, i))
	}
	return Word{v: v}
}
