// Package hamming simulates the (7,4) Hamming code on a binary symmetric
// channel and gives closed-form probabilities for the four outcomes of a
// transmission: no error, a corrected single-bit error, an undetected error
// (the channel produced another codeword) and a detected error that the
// nearest-codeword decoder resolves to the wrong codeword.
//
// A Codebook is built once and shared read-only. Randomness enters only
// through the Source handed to NewChannel or NewEstimator, so runs are
// reproducible from a seed and independent estimators can run in parallel
// with independent sources.
package hamming
