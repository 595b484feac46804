package geobin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/beetlebugorg/geobin/internal/grid"
	"github.com/beetlebugorg/geobin/internal/hex"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

var (
	// ErrNilGrid is returned when an engine is given no grid strategy.
	ErrNilGrid = errors.New("geobin: nil grid strategy")

	// ErrUnsupported is returned by setters the current grid does not support.
	ErrUnsupported = errors.New("geobin: operation not supported by grid")
)

// State is the engine's notification handling mode.
type State int

const (
	// Tracking handles every notification as it arrives.
	Tracking State = iota

	// Suspended is entered by EventClearStart. Bins are already wiped,
	// so removals and changes of wiped members are ignored until
	// EventClearEnd.
	Suspended
)

func (s State) String() string {
	if s == Suspended {
		return "suspended"
	}
	return "tracking"
}

// tracked is the engine's record of one member it was told about.
type tracked struct {
	bin    *Bin // nil when the member is outside the grid's domain
	cancel func()
}

// Engine groups the members of an Origin into bins and keeps the grouping
// current as the origin and its members change. Every tracked member is in
// at most one bin and no bin is ever empty.
//
// An Engine is not safe for concurrent use; notifications must be
// delivered one at a time.
type Engine struct {
	grid  grid.Strategy
	opts  Options
	log   *slog.Logger
	state State

	origin      Origin
	unsubscribe func()

	bins    map[string]*Bin
	members map[Member]*tracked
	seq     uint64
}

// New returns an engine using g. The grid is validated here so that a
// misconfigured grid never reaches notification handling.
func New(g grid.Strategy, opts Options) (*Engine, error) {
	if err := validateGrid(g); err != nil {
		return nil, err
	}
	if opts.Anchor == nil {
		opts.Anchor = FeatureCenter
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Engine{
		grid:    g,
		opts:    opts,
		log:     opts.Logger,
		bins:    make(map[string]*Bin),
		members: make(map[Member]*tracked),
	}, nil
}

func validateGrid(g grid.Strategy) error {
	if g == nil {
		return ErrNilGrid
	}
	if v, ok := g.(grid.Validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("invalid grid: %w", err)
		}
	}
	return nil
}

// Grid returns the current grid strategy.
func (e *Engine) Grid() grid.Strategy { return e.grid }

// State returns the current notification handling mode.
func (e *Engine) State() State { return e.state }

// Origin returns the attached origin, or nil.
func (e *Engine) Origin() Origin { return e.origin }

// Attach subscribes to origin and bins its current members. A previously
// attached origin is detached first.
func (e *Engine) Attach(origin Origin) {
	if e.origin != nil {
		e.Detach()
	}
	e.origin = origin
	e.unsubscribe = origin.Subscribe(e.Handle)
	e.Reset()
}

// Detach unsubscribes from the origin and drops every bin.
func (e *Engine) Detach() {
	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}
	e.origin = nil
	e.wipe()
	e.state = Tracking
}

// Handle processes one origin notification.
func (e *Engine) Handle(ev Event) {
	switch ev.Kind {
	case EventAdded:
		e.add(ev.Member)
	case EventRemoved:
		if e.wiped(ev.Member) {
			return
		}
		e.remove(ev.Member)
	case EventChanged:
		if e.wiped(ev.Member) {
			return
		}
		e.change(ev.Member)
	case EventClearStart:
		if e.state == Suspended {
			e.log.Warn("nested clear ignored")
			return
		}
		e.state = Suspended
		e.wipe()
	case EventClearEnd:
		if e.state != Suspended {
			e.log.Warn("clear end without clear start")
			return
		}
		e.state = Tracking
	default:
		e.log.Warn("unknown event", "kind", ev.Kind)
	}
}

// wiped reports whether m was dropped by the clear in progress. Members
// added since the clear started are handled normally.
func (e *Engine) wiped(m Member) bool {
	if e.state != Suspended {
		return false
	}
	_, ok := e.members[m]
	return !ok
}

// locate returns the cell holding m's anchor.
func (e *Engine) locate(m Member) (grid.Cell, bool) {
	p, ok := e.opts.Anchor(m)
	if !ok || !finite(p) {
		e.log.Debug("member has no anchor", "member", memberName(m))
		return grid.Cell{}, false
	}
	return e.locatePoint(p)
}

func (e *Engine) locatePoint(p orb.Point) (grid.Cell, bool) {
	cell, ok := e.grid.Locate(p)
	if !ok {
		e.log.Debug("outside grid domain", "point", p)
		return grid.Cell{}, false
	}
	if cell.Key == "" {
		e.log.Error("misconfigured grid", "error", grid.ErrMissingKey, "grid", fmt.Sprintf("%T", e.grid), "point", p)
		return grid.Cell{}, false
	}
	return cell, true
}

func (e *Engine) add(m Member) {
	if m == nil {
		return
	}
	if _, ok := e.members[m]; ok {
		e.log.Warn("member added twice", "member", memberName(m))
		return
	}
	cell, ok := e.locate(m)
	e.track(m, cell, ok)
}

// track records m and places it in the bin for cell.
func (e *Engine) track(m Member, cell grid.Cell, ok bool) {
	t := &tracked{}
	e.members[m] = t
	if !e.opts.IgnoreChanges {
		if obs, isObs := m.(Observable); isObs {
			t.cancel = obs.Observe(func(Member) {
				e.Handle(Event{Kind: EventChanged, Member: m})
			})
		}
	}
	if ok {
		t.bin = e.binFor(cell)
		t.bin.members = append(t.bin.members, m)
	}
}

func (e *Engine) remove(m Member) {
	t, ok := e.members[m]
	if !ok {
		e.log.Warn("removed member is not tracked", "member", memberName(m))
		return
	}
	if t.cancel != nil {
		t.cancel()
	}
	delete(e.members, m)
	if t.bin != nil {
		e.detachMember(t.bin, m)
	}
}

// change moves m to the bin of its new anchor. The new bin gets the member
// before the old one loses it.
func (e *Engine) change(m Member) {
	t, ok := e.members[m]
	if !ok {
		e.log.Warn("changed member is not tracked", "member", memberName(m))
		return
	}

	cell, ok := e.locate(m)
	old := t.bin
	if ok && old != nil && old.key == cell.Key {
		return
	}
	if !ok && old == nil {
		return
	}

	t.bin = nil
	if ok {
		t.bin = e.binFor(cell)
		t.bin.members = append(t.bin.members, m)
	}
	if old != nil {
		e.detachMember(old, m)
	}
}

// binFor finds or creates the bin for cell.
func (e *Engine) binFor(cell grid.Cell) *Bin {
	if b, ok := e.bins[cell.Key]; ok {
		return b
	}
	b := newBin(cell)
	e.seq++
	b.seq = e.seq
	e.bins[cell.Key] = b
	return b
}

// detachMember removes m from b and deletes b once it is empty.
func (e *Engine) detachMember(b *Bin, m Member) {
	for i, other := range b.members {
		if other == m {
			b.members = append(b.members[:i], b.members[i+1:]...)
			break
		}
	}
	if len(b.members) == 0 {
		delete(e.bins, b.key)
	}
}

// wipe drops every bin and tracked member.
func (e *Engine) wipe() {
	for _, t := range e.members {
		if t.cancel != nil {
			t.cancel()
		}
	}
	e.members = make(map[Member]*tracked)
	e.bins = make(map[string]*Bin)
}

// Reset drops every bin and re-adds the origin's members in origin order.
func (e *Engine) Reset() {
	// cannot fail without a deadline
	_ = e.ResetContext(context.Background())
}

// ResetContext is Reset with cancellation. When Options.Workers is above 1
// members are located in parallel and inserted in origin order. On error
// the engine is left empty.
func (e *Engine) ResetContext(ctx context.Context) error {
	e.wipe()
	e.state = Tracking
	if e.origin == nil {
		return nil
	}
	members := e.origin.Members()

	if e.opts.Workers < 2 {
		for _, m := range members {
			if err := ctx.Err(); err != nil {
				e.wipe()
				return err
			}
			e.add(m)
		}
		return nil
	}

	points := make([]orb.Point, 0, len(members))
	anchored := make([]Member, 0, len(members))
	for _, m := range members {
		if m == nil {
			continue
		}
		if p, ok := e.opts.Anchor(m); ok && finite(p) {
			points = append(points, p)
			anchored = append(anchored, m)
			continue
		}
		e.log.Debug("member has no anchor", "member", memberName(m))
	}

	located, err := grid.LocateAll(ctx, e.grid, points, e.opts.Workers)
	if err != nil {
		return err
	}
	cells := make(map[Member]grid.Located, len(anchored))
	for i, m := range anchored {
		cells[m] = located[i]
	}

	for _, m := range members {
		if m == nil {
			continue
		}
		if _, ok := e.members[m]; ok {
			e.log.Warn("member added twice", "member", memberName(m))
			continue
		}
		l := cells[m]
		if l.OK && l.Cell.Key == "" {
			e.log.Error("misconfigured grid", "error", grid.ErrMissingKey, "grid", fmt.Sprintf("%T", e.grid))
			l.OK = false
		}
		e.track(m, l.Cell, l.OK)
	}
	return nil
}

// SetGrid replaces the grid strategy and resets.
func (e *Engine) SetGrid(g grid.Strategy) error {
	if err := validateGrid(g); err != nil {
		return err
	}
	e.grid = g
	e.Reset()
	return nil
}

// SetSize changes the cell size and resets.
func (e *Engine) SetSize(size float64) error {
	r, ok := e.grid.(grid.Resizer)
	if !ok {
		return fmt.Errorf("%w: SetSize on %T", ErrUnsupported, e.grid)
	}
	g, err := r.WithSize(size)
	if err != nil {
		return err
	}
	return e.SetGrid(g)
}

// SetOrigin moves the grid origin and resets.
func (e *Engine) SetOrigin(origin orb.Point) error {
	o, ok := e.grid.(grid.Originer)
	if !ok {
		return fmt.Errorf("%w: SetOrigin on %T", ErrUnsupported, e.grid)
	}
	return e.SetGrid(o.WithOrigin(origin))
}

// SetLayout changes the hexagon layout and resets. Only hex grids support it.
func (e *Engine) SetLayout(layout hex.Layout) error {
	l, ok := e.grid.(grid.LayoutSetter)
	if !ok {
		return fmt.Errorf("%w: SetLayout on %T", ErrUnsupported, e.grid)
	}
	return e.SetGrid(l.WithLayout(layout))
}

// SetFeatures replaces the polygons of a lookup grid and resets.
func (e *Engine) SetFeatures(features []*geojson.Feature) error {
	f, ok := e.grid.(grid.FeatureSetter)
	if !ok {
		return fmt.Errorf("%w: SetFeatures on %T", ErrUnsupported, e.grid)
	}
	g, err := f.WithFeatures(features)
	if err != nil {
		return err
	}
	return e.SetGrid(g)
}

// BinContaining returns the bin holding m by scanning every bin.
func (e *Engine) BinContaining(m Member) (*Bin, bool) {
	for _, b := range e.bins {
		for _, other := range b.members {
			if other == m {
				return b, true
			}
		}
	}
	return nil, false
}

// BinAt returns the bin of the cell containing p. When no bin exists and
// create is true, a new empty bin for the cell is returned; it is not
// added to the engine.
func (e *Engine) BinAt(p orb.Point, create bool) (*Bin, bool) {
	cell, ok := e.locatePoint(p)
	if !ok {
		return nil, false
	}
	if b, ok := e.bins[cell.Key]; ok {
		return b, true
	}
	if !create {
		return nil, false
	}
	return newBin(cell), true
}

// GridGeometryAt returns the outline of the cell containing p.
func (e *Engine) GridGeometryAt(p orb.Point) (orb.Geometry, bool) {
	cell, ok := e.locatePoint(p)
	if !ok {
		return nil, false
	}
	return orb.Clone(cell.Geometry), true
}

// Bins returns the bins in creation order.
func (e *Engine) Bins() []*Bin {
	return sortedBins(e.bins)
}

// Stats summarizes the engine contents.
type Stats struct {
	State   State
	Bins    int
	Tracked int // members the engine was told about
	Binned  int // tracked members held by a bin
	Outside int // tracked members outside the grid's domain
}

// Stats returns current counters.
func (e *Engine) Stats() Stats {
	s := Stats{State: e.state, Bins: len(e.bins), Tracked: len(e.members)}
	for _, t := range e.members {
		if t.bin != nil {
			s.Binned++
		} else {
			s.Outside++
		}
	}
	return s
}

func memberName(m Member) string {
	if id, ok := m.(interface{ ID() string }); ok {
		return id.ID()
	}
	return fmt.Sprintf("%T", m)
}
