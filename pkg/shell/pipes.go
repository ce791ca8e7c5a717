package shell

import (
	"bufio"
	"fmt"
	"io"
)

// MaxLineSize is the longest line PipeTo will pass to its LogFunc.
const MaxLineSize = 1024 * 1024

type PipeFunc func() (io.ReadCloser, error)
type LogFunc func(args ...interface{})

// PipeTo sends every line read from the pipe to lf. If a line is too long to
// log, lf gets a notice instead and the rest of the pipe is discarded, so the
// writer is never left blocked. done is closed once the pipe is exhausted.
func PipeTo(pf PipeFunc, lf LogFunc) (done chan struct{}, err error) {
	pipe, err := pf()
	if err != nil {
		return nil, err
	}

	done = make(chan struct{})
	go func() {
		defer close(done)
		scanner := bufio.NewScanner(pipe)
		scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
		for scanner.Scan() {
			lf(scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			lf(fmt.Sprintf("discarding remaining output: %v", err))
			_, _ = io.Copy(io.Discard, pipe)
		}
	}()

	return done, nil
}
