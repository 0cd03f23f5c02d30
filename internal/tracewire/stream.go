package tracewire

import (
	"bufio"
	"fmt"
	"io"
	"sync"

	"github.com/observe-l/hamming74/hamming"
)

// Writer appends one record per observed trial. It implements
// hamming.Observer; the first write error is kept and returned by Flush.
type Writer struct {
	mu  sync.Mutex
	w   *bufio.Writer
	buf [RecordLen]byte
	n   int
	err error
}

func NewWriter(w io.Writer) *Writer { return &Writer{w: bufio.NewWriter(w)} }

func (w *Writer) ObserveTrial(t hamming.Trial) {
	rec := FromTrial(t)
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return
	}
	if _, err := w.w.Write(rec.MarshalBinary(w.buf[:])); err != nil {
		w.err = err
		return
	}
	w.n++
}

// Count returns the number of records written so far.
func (w *Writer) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.n
}

func (w *Writer) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	return w.w.Flush()
}

// Reader reads records back.
type Reader struct {
	r   io.Reader
	buf [RecordLen]byte
}

func NewReader(r io.Reader) *Reader { return &Reader{r: bufio.NewReader(r)} }

// Next returns the next record, io.EOF at a clean end of stream, or
// io.ErrUnexpectedEOF for a truncated record.
func (r *Reader) Next() (Record, error) {
	var rec Record
	if _, err := io.ReadFull(r.r, r.buf[:]); err != nil {
		return rec, err
	}
	rec.UnmarshalBinary(r.buf[:])
	if rec.Version != Version {
		return rec, fmt.Errorf("tracewire: unsupported record version %d", rec.Version)
	}
	return rec, nil
}
