package clipboard

import (
	"io"

	"ideastash/internal/storage"
)

// readerSource emits a single event built from the full contents of a
// reader. It backs the one-shot capture command, where stdin is the
// clipboard.
type readerSource struct {
	ch chan Event
}

// FromReader builds a source that reads r to completion and emits one event
// of the given type. Read errors surface as an empty stream.
func FromReader(r io.Reader, t storage.ItemType) Source {
	s := &readerSource{ch: make(chan Event, 1)}
	go func() {
		defer close(s.ch)
		data, err := io.ReadAll(r)
		if err != nil || len(data) == 0 {
			return
		}
		if t == storage.ItemImage {
			s.ch <- Event{Type: t, Data: data}
			return
		}
		s.ch <- Event{Type: t, Text: string(data)}
	}()
	return s
}

func (s *readerSource) Events() <-chan Event {
	return s.ch
}

// chanSource adapts a plain channel into a Source, for callers that produce
// events programmatically.
type chanSource struct {
	ch <-chan Event
}

// FromChannel wraps an event channel as a Source.
func FromChannel(ch <-chan Event) Source {
	return &chanSource{ch: ch}
}

func (s *chanSource) Events() <-chan Event {
	return s.ch
}
