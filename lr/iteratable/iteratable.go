package iteratable

// Set is a set of interface{} items, remembering insertion order. Sets are
// iteratable while being modified: items appended during an iteration will
// be visited, too. This is what closure computations over item sets need.
//
// Operations on sets are destructive, except where noted otherwise.
type Set struct {
	items []interface{}
	inx   int // iteration position, -1 before the first call to Next
}

// NewSet creates a new set with a capacity hint.
func NewSet(size int) *Set {
	if size <= 0 {
		size = 4
	}
	return &Set{
		items: make([]interface{}, 0, size),
		inx:   -1,
	}
}

// Add adds an item to the set, if it is not already present.
func (s *Set) Add(item interface{}) *Set {
	if s == nil || item == nil {
		return s
	}
	if !s.Contains(item) {
		s.items = append(s.items, item)
	}
	return s
}

// Contains returns true if an item is contained in the set.
func (s *Set) Contains(item interface{}) bool {
	if s == nil {
		return false
	}
	for _, x := range s.items {
		if x == item {
			return true
		}
	}
	return false
}

// Size returns the number of items in the set.
func (s *Set) Size() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Empty returns true for a set with no items.
func (s *Set) Empty() bool {
	return s.Size() == 0
}

// Values returns the items of the set as a slice, in insertion order.
// The slice is a copy, safe for the caller to modify.
func (s *Set) Values() []interface{} {
	if s == nil {
		return nil
	}
	vals := make([]interface{}, len(s.items))
	copy(vals, s.items)
	return vals
}

// Copy returns a copy of a set. Iteration state is not copied.
func (s *Set) Copy() *Set {
	if s == nil {
		return nil
	}
	c := NewSet(len(s.items))
	c.items = append(c.items, s.items...)
	return c
}

// Union adds all items of another set to this set. The other set is left
// untouched.
func (s *Set) Union(other *Set) *Set {
	if other == nil {
		return s
	}
	for _, x := range other.items {
		s.Add(x)
	}
	return s
}

// Difference returns a new set with all items of s which are not contained
// in other. Neither input set is modified; this is an exception to the
// otherwise destructive operations.
func (s *Set) Difference(other *Set) *Set {
	d := NewSet(s.Size())
	if s == nil {
		return d
	}
	for _, x := range s.items {
		if !other.Contains(x) {
			d.items = append(d.items, x)
		}
	}
	return d
}

// Equals returns true if both sets contain exactly the same items,
// regardless of insertion order.
func (s *Set) Equals(other *Set) bool {
	if s.Size() != other.Size() {
		return false
	}
	if s == nil {
		return true
	}
	for _, x := range s.items {
		if !other.Contains(x) {
			return false
		}
	}
	return true
}

// IterateOnce starts an iteration over the items of the set. Every item is
// visited exactly once, including items added while the iteration is
// running. The iteration pattern is
//
//     S.IterateOnce()
//     for S.Next() {
//         item := S.Item()
//         …               // may add items to S
//     }
//
// Only one iteration per set may be active at a time.
func (s *Set) IterateOnce() {
	if s == nil {
		return
	}
	s.inx = -1
}

// Next advances the iteration and returns true if an item is available.
func (s *Set) Next() bool {
	if s == nil {
		return false
	}
	s.inx++
	return s.inx < len(s.items)
}

// Item returns the item at the current iteration position.
func (s *Set) Item() interface{} {
	if s == nil || s.inx < 0 || s.inx >= len(s.items) {
		return nil
	}
	return s.items[s.inx]
}

// Each calls a function for every item of the set (in insertion order).
func (s *Set) Each(f func(item interface{})) {
	if s == nil {
		return
	}
	for _, x := range s.items {
		f(x)
	}
}
