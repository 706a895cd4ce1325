package unit

import (
	"bufio"
	"io"
	"strings"
)

// Preconnected unit numbers.
const (
	Stderr = 0
	Stdin  = 5
	Stdout = 6
)

// Action is the direction a unit is connected for.
type Action uint8

const (
	ActionRead Action = iota
	ActionWrite
	ActionReadWrite
	ActionAppend
)

func (a Action) String() string {
	switch a {
	case ActionRead:
		return "read"
	case ActionWrite:
		return "write"
	case ActionReadWrite:
		return "readwrite"
	case ActionAppend:
		return "append"
	}
	return "unknown"
}

// ParseAction converts a config or OPEN statement action keyword.
func ParseAction(s string) (Action, bool) {
	switch strings.ToLower(s) {
	case "read":
		return ActionRead, true
	case "write":
		return ActionWrite, true
	case "readwrite", "read_write", "read-write":
		return ActionReadWrite, true
	case "append":
		return ActionAppend, true
	}
	return 0, false
}

// EventType identifies a unit lifecycle notification.
type EventType uint8

const (
	EventConnected EventType = iota
	EventDisconnected
)

// Event reports a unit being connected or disconnected.
type Event struct {
	Name   string
	Number int
	Action Action
	Type   EventType
}

// Observer receives unit lifecycle events.
type Observer interface {
	OnUnitEvent(Event)
}

// Reader is the input side of a unit. Rune scanning lets format-directed
// input push back the rune that ends a field.
type Reader interface {
	io.Reader
	io.RuneScanner
}

// Unit is a stream connected to a unit number. Reads go through a single
// buffered reader so that partially consumed records survive between
// statements.
type Unit struct {
	closer io.Closer
	reader Reader
	writer io.Writer
	Name   string
	Number int
	Action Action
}

func newUnit(n int, name string, r io.Reader, w io.Writer, c io.Closer, action Action) *Unit {
	u := &Unit{Number: n, Name: name, writer: w, closer: c, Action: action}
	if r != nil {
		if rs, ok := r.(Reader); ok {
			u.reader = rs
		} else {
			u.reader = bufio.NewReader(r)
		}
	}
	return u
}

// Readable reports whether the unit accepts input statements.
func (u *Unit) Readable() bool { return u.reader != nil }

// Writable reports whether the unit accepts output statements.
func (u *Unit) Writable() bool { return u.writer != nil }
