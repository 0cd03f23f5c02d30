package hamming

import "fmt"

// Outcome classifies one transmission relative to the codeword that was sent.
type Outcome int

const (
	// NoError: the received word equals the sent codeword.
	NoError Outcome = iota
	// DetectedCorrected: exactly one bit flipped, so decoding recovers the codeword.
	DetectedCorrected
	// Undetected: the channel turned the codeword into a different codeword.
	Undetected
	// DetectedUncorrected: the received word is not a codeword but decodes to the wrong one.
	DetectedUncorrected
)

// NumOutcomes is the number of Outcome values.
const NumOutcomes = 4

// Outcomes lists every Outcome in declaration order.
func Outcomes() []Outcome {
	return []Outcome{NoError, DetectedCorrected, Undetected, DetectedUncorrected}
}

func (o Outcome) String() string {
	switch o {
	case NoError:
		return "no_error"
	case DetectedCorrected:
		return "detected_corrected"
	case Undetected:
		return "undetected"
	case DetectedUncorrected:
		return "detected_uncorrected"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Valid reports whether o is one of the four declared outcomes.
func (o Outcome) Valid() bool { return o >= NoError && o <= DetectedUncorrected }
