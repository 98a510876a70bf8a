// Package max7219test provides a recording bus to test code driving a
// MAX7219 chain without hardware.
package max7219test

import (
	"errors"
	"fmt"
)

// ErrFraming is returned when Begin, Write and End are called out of order.
var ErrFraming = errors.New("max7219test: framing violation")

// Recorder is a bus that records the buffer of every completed transaction.
//
// A transaction is only recorded once End succeeds, so a failed transaction
// never shows up in Tx.
type Recorder struct {
	// Tx holds one buffer per completed transaction, oldest first.
	Tx [][]byte

	// Set one of these to make the matching call fail once with the error.
	BeginErr error
	WriteErr error
	EndErr   error

	// Begins, Writes and Ends count calls, including failed ones.
	Begins, Writes, Ends int

	open    bool
	pending []byte
	written bool
}

// Begin starts a transaction.
func (r *Recorder) Begin() error {
	r.Begins++
	if err := take(&r.BeginErr); err != nil {
		return err
	}
	r.open = true
	r.pending = nil
	r.written = false
	return nil
}

// Write records w as the payload of the open transaction.
func (r *Recorder) Write(w []byte) error {
	r.Writes++
	if !r.open {
		return fmt.Errorf("%w: write outside of a transaction", ErrFraming)
	}
	if r.written {
		return fmt.Errorf("%w: more than one write in a transaction", ErrFraming)
	}
	r.written = true
	if err := take(&r.WriteErr); err != nil {
		return err
	}
	r.pending = append([]byte(nil), w...)
	return nil
}

// End completes the open transaction.
func (r *Recorder) End() error {
	r.Ends++
	if !r.open {
		return fmt.Errorf("%w: end without begin", ErrFraming)
	}
	if err := take(&r.EndErr); err != nil {
		return err
	}
	r.open = false
	r.Tx = append(r.Tx, r.pending)
	r.pending = nil
	return nil
}

// Last returns the last completed transaction, or nil.
func (r *Recorder) Last() []byte {
	if len(r.Tx) == 0 {
		return nil
	}
	return r.Tx[len(r.Tx)-1]
}

// Reset forgets every recorded transaction and call count.
func (r *Recorder) Reset() {
	*r = Recorder{}
}

func take(e *error) error {
	err := *e
	*e = nil
	return err
}
