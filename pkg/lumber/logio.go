package lumber

import (
	"bytes"
)

// Writer posts the output of a child process to a Logger, one debug entry
// per line, tagged with the process name. Blank lines are dropped.
type Writer struct {
	log     Logger
	pending []byte
}

// NewWriter returns a Writer logging the output of process to log.
// It must be closed to post a final line without a newline.
func NewWriter(log Logger, process string) *Writer {
	return &Writer{log: log.WithFields(Fields{"process": process})}
}

// Write logs every complete line of bs and keeps the rest until the next write.
func (w *Writer) Write(bs []byte) (int, error) {
	w.pending = append(w.pending, bs...)
	for {
		idx := bytes.IndexByte(w.pending, '\n')
		if idx < 0 {
			break
		}
		w.post(w.pending[:idx])
		w.pending = w.pending[idx+1:]
	}
	return len(bs), nil
}

// Close posts the unterminated tail, if any.
func (w *Writer) Close() error {
	if len(w.pending) > 0 {
		w.post(w.pending)
	}
	w.pending = nil
	return nil
}

func (w *Writer) post(line []byte) {
	line = bytes.TrimRight(line, "\r")
	if len(bytes.TrimSpace(line)) == 0 {
		return
	}
	w.log.Debugf("%s", line)
}
