package geobin

import "fmt"

// EventKind identifies an origin collection notification.
type EventKind int

const (
	// EventAdded reports a member added to the origin.
	EventAdded EventKind = iota

	// EventRemoved reports a member removed from the origin.
	EventRemoved

	// EventChanged reports that a member's geometry or properties changed.
	EventChanged

	// EventClearStart opens a bulk clear. Removals up to the matching
	// EventClearEnd are covered by the clear.
	EventClearStart

	// EventClearEnd closes a bulk clear.
	EventClearEnd
)

func (k EventKind) String() string {
	switch k {
	case EventAdded:
		return "added"
	case EventRemoved:
		return "removed"
	case EventChanged:
		return "changed"
	case EventClearStart:
		return "clearstart"
	case EventClearEnd:
		return "clearend"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is one origin notification. Member is nil for the clear events.
type Event struct {
	Kind   EventKind
	Member Member
}

// Origin is the member collection an Engine is attached to.
type Origin interface {
	// Members returns the current members in iteration order.
	Members() []Member

	// Subscribe registers fn for every subsequent notification.
	Subscribe(fn func(Event)) (cancel func())
}

// Collection is an in-memory Origin. Notifications are delivered
// synchronously, before the mutating call returns.
type Collection struct {
	members     []Member
	index       map[Member]struct{}
	subscribers []subscriber
	nextID      int
}

type subscriber struct {
	id int
	fn func(Event)
}

// NewCollection returns a collection holding members, in order.
// Duplicates are dropped.
func NewCollection(members ...Member) *Collection {
	c := &Collection{index: make(map[Member]struct{})}
	for _, m := range members {
		if _, ok := c.index[m]; ok {
			continue
		}
		c.index[m] = struct{}{}
		c.members = append(c.members, m)
	}
	return c
}

// Members implements Origin. The returned slice is a copy.
func (c *Collection) Members() []Member {
	return append([]Member(nil), c.members...)
}

// Len returns the number of members.
func (c *Collection) Len() int { return len(c.members) }

// Contains reports whether m is in the collection.
func (c *Collection) Contains(m Member) bool {
	_, ok := c.index[m]
	return ok
}

// Add appends members that are not already present and emits EventAdded
// for each of them.
func (c *Collection) Add(members ...Member) {
	for _, m := range members {
		if _, ok := c.index[m]; ok {
			continue
		}
		c.index[m] = struct{}{}
		c.members = append(c.members, m)
		c.emit(Event{Kind: EventAdded, Member: m})
	}
}

// Remove removes m and emits EventRemoved. It reports whether m was present.
func (c *Collection) Remove(m Member) bool {
	if _, ok := c.index[m]; !ok {
		return false
	}
	delete(c.index, m)
	for i, other := range c.members {
		if other == m {
			c.members = append(c.members[:i:i], c.members[i+1:]...)
			break
		}
	}
	c.emit(Event{Kind: EventRemoved, Member: m})
	return true
}

// Changed emits EventChanged for m. Use it for members that are not
// Observable.
func (c *Collection) Changed(m Member) {
	if _, ok := c.index[m]; ok {
		c.emit(Event{Kind: EventChanged, Member: m})
	}
}

// Clear removes every member. The removals are bracketed by
// EventClearStart and EventClearEnd.
func (c *Collection) Clear() {
	members := c.members
	c.emit(Event{Kind: EventClearStart})
	c.members = nil
	c.index = make(map[Member]struct{})
	for _, m := range members {
		c.emit(Event{Kind: EventRemoved, Member: m})
	}
	c.emit(Event{Kind: EventClearEnd})
}

// Subscribe implements Origin.
func (c *Collection) Subscribe(fn func(Event)) func() {
	c.nextID++
	id := c.nextID
	c.subscribers = append(c.subscribers, subscriber{id: id, fn: fn})
	return func() {
		for i, s := range c.subscribers {
			if s.id == id {
				c.subscribers = append(c.subscribers[:i:i], c.subscribers[i+1:]...)
				return
			}
		}
	}
}

func (c *Collection) emit(e Event) {
	subscribers := append([]subscriber(nil), c.subscribers...)
	for _, s := range subscribers {
		s.fn(e)
	}
}
