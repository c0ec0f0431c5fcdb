// Package notify provides the audible/visible alerts the order feed fires
// when new work arrives.
package notify

import (
	"fmt"
	"io"
)

// Bell writes the terminal bell, the closest thing a process has to the
// dashboard's short beep.
type Bell struct {
	W io.Writer
}

func NewBell(w io.Writer) *Bell {
	return &Bell{W: w}
}

func (b *Bell) Alert() error {
	_, err := fmt.Fprint(b.W, "\a")
	return err
}

// Multi fans one alert out to several sinks and reports the first failure.
type Multi []interface{ Alert() error }

func (m Multi) Alert() error {
	var first error
	for _, a := range m {
		if err := a.Alert(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
