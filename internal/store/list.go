package store

// ValueList is an ordered collection of value records. It carries the
// caller's declared schema into BeginWith and receives decoded records
// from Load; ordering is declaration order.
type ValueList struct {
	items []*Value
}

// NewValueList creates an empty list.
func NewValueList() *ValueList {
	return &ValueList{}
}

// Append adds v at the end of the list.
func (l *ValueList) Append(v *Value) {
	l.items = append(l.items, v)
}

// Items returns the values in order. The slice is owned by the list.
func (l *ValueList) Items() []*Value { return l.items }

// Len returns the number of values held.
func (l *ValueList) Len() int { return len(l.items) }

// Find returns the first value matching v by identifier and size, or nil.
func (l *ValueList) Find(v *Value) *Value {
	for _, item := range l.items {
		if item.Match(v) {
			return item
		}
	}
	return nil
}
