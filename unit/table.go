package unit

import (
	"io"
	"os"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/for90-runtime/errors"
)

// firstNewUnit is the number handed out by the first NewUnit call. Later
// numbers count downwards; released numbers are reused first.
const firstNewUnit = -10

// Table maps unit numbers to connected streams.
type Table struct {
	units     map[int]*Unit
	freeList  []int
	observers []Observer
	nextNew   int
	mu        sync.RWMutex
	obsMu     sync.RWMutex
	closed    bool
}

// NewTable creates a table with no connected units.
func NewTable() *Table {
	return &Table{
		units:   make(map[int]*Unit),
		nextNew: firstNewUnit,
	}
}

// NewStandardTable creates a table with units 5, 6 and 0 connected to the
// given standard streams. A nil stream leaves its unit unconnected.
func NewStandardTable(stdin io.Reader, stdout, stderr io.Writer) *Table {
	t := NewTable()
	if stdin != nil {
		t.units[Stdin] = newUnit(Stdin, "stdin", stdin, nil, nil, ActionRead)
	}
	if stdout != nil {
		t.units[Stdout] = newUnit(Stdout, "stdout", nil, stdout, nil, ActionWrite)
	}
	if stderr != nil {
		t.units[Stderr] = newUnit(Stderr, "stderr", nil, stderr, nil, ActionWrite)
	}
	return t
}

var (
	defaultTable *Table
	defaultOnce  sync.Once
)

// Default returns the process-wide table connected to os.Stdin, os.Stdout
// and os.Stderr.
func Default() *Table {
	defaultOnce.Do(func() {
		defaultTable = NewStandardTable(os.Stdin, os.Stdout, os.Stderr)
	})
	return defaultTable
}

// Connect attaches streams to unit n. A unit that is already connected is
// disconnected first. r, w and c may each be nil.
func (t *Table) Connect(n int, name string, r io.Reader, w io.Writer, c io.Closer) error {
	action := ActionReadWrite
	switch {
	case r != nil && w == nil:
		action = ActionRead
	case r == nil && w != nil:
		action = ActionWrite
	case r == nil && w == nil:
		return errors.InvalidInput(errors.PhaseUnit, []string{"unit"}, "connect needs a reader or a writer")
	}
	return t.connect(newUnit(n, name, r, w, c, action))
}

func (t *Table) connect(u *Unit) error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return errors.New(errors.PhaseUnit, errors.KindIO).Detail("unit table closed").Build()
	}
	old := t.units[u.Number]
	t.units[u.Number] = u
	t.mu.Unlock()

	if old != nil {
		t.release(old)
	}

	Logger().Debug("unit connected",
		zap.Int("unit", u.Number),
		zap.String("name", u.Name),
		zap.Stringer("action", u.Action))
	t.notify(Event{Type: EventConnected, Number: u.Number, Name: u.Name, Action: u.Action})
	return nil
}

// Open connects unit n to the file at path.
func (t *Table) Open(n int, path string, action Action) error {
	var flag int
	switch action {
	case ActionRead:
		flag = os.O_RDONLY
	case ActionWrite:
		flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	case ActionAppend:
		flag = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	case ActionReadWrite:
		flag = os.O_RDWR | os.O_CREATE
	}
	f, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return errors.IO(errors.PhaseUnit, err, "open "+path)
	}

	var r io.Reader
	var w io.Writer
	if action == ActionRead || action == ActionReadWrite {
		r = f
	}
	if action != ActionRead {
		w = f
	}
	return t.connect(newUnit(n, path, r, w, f, action))
}

// NewUnit returns a negative unit number that is not connected.
func (t *Table) NewUnit() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	for len(t.freeList) > 0 {
		n := t.freeList[len(t.freeList)-1]
		t.freeList = t.freeList[:len(t.freeList)-1]
		if _, used := t.units[n]; !used {
			return n
		}
	}
	for {
		n := t.nextNew
		t.nextNew--
		if _, used := t.units[n]; !used {
			return n
		}
	}
}

// Get returns the unit connected to n.
func (t *Table) Get(n int) (*Unit, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	u, ok := t.units[n]
	return u, ok
}

// Input returns the reader of unit n.
func (t *Table) Input(n int) (Reader, error) {
	u, ok := t.Get(n)
	if !ok {
		return nil, errors.NotFound(errors.PhaseUnit, "unit", n)
	}
	if !u.Readable() {
		return nil, errors.New(errors.PhaseUnit, errors.KindUnsupported).
			Value(n).
			Detail("unit %d is not connected for reading", n).
			Build()
	}
	return u.reader, nil
}

// Output returns the writer of unit n.
func (t *Table) Output(n int) (io.Writer, error) {
	u, ok := t.Get(n)
	if !ok {
		return nil, errors.NotFound(errors.PhaseUnit, "unit", n)
	}
	if !u.Writable() {
		return nil, errors.New(errors.PhaseUnit, errors.KindUnsupported).
			Value(n).
			Detail("unit %d is not connected for writing", n).
			Build()
	}
	return u.writer, nil
}

// Disconnect closes unit n and removes it from the table.
func (t *Table) Disconnect(n int) error {
	t.mu.Lock()
	u, ok := t.units[n]
	if ok {
		delete(t.units, n)
	}
	t.mu.Unlock()

	if !ok {
		return errors.NotFound(errors.PhaseUnit, "unit", n)
	}
	return t.release(u)
}

func (t *Table) release(u *Unit) error {
	var err error
	if u.closer != nil {
		if cerr := u.closer.Close(); cerr != nil {
			Logger().Warn("unit close failed", zap.Int("unit", u.Number), zap.Error(cerr))
			err = errors.IO(errors.PhaseUnit, cerr, "close "+u.Name)
		}
	}
	if u.Number < 0 {
		t.mu.Lock()
		t.freeList = append(t.freeList, u.Number)
		t.mu.Unlock()
	}

	Logger().Debug("unit disconnected", zap.Int("unit", u.Number), zap.String("name", u.Name))
	t.notify(Event{Type: EventDisconnected, Number: u.Number, Name: u.Name, Action: u.Action})
	return err
}

// Numbers returns the connected unit numbers in ascending order.
func (t *Table) Numbers() []int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]int, 0, len(t.units))
	for n := range t.units {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// Len returns the number of connected units.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.units)
}

// Subscribe adds an observer for lifecycle events.
func (t *Table) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer.
func (t *Table) Unsubscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// Close disconnects every unit and stops accepting connections. The first
// close failure is returned.
func (t *Table) Close() error {
	t.mu.Lock()
	t.closed = true
	units := make([]*Unit, 0, len(t.units))
	for _, u := range t.units {
		units = append(units, u)
	}
	t.units = make(map[int]*Unit)
	t.mu.Unlock()

	sort.Slice(units, func(i, j int) bool { return units[i].Number < units[j].Number })
	var first error
	for _, u := range units {
		if err := t.release(u); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (t *Table) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnUnitEvent(e)
	}
}
