package bellande

// Kind identifies the variant of a [Value].
type Kind int8

const (
	KindString = Kind(iota)
	KindInteger
	KindFloat
	KindBool
	KindNull
	KindList
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "String"
	case KindInteger:
		return "Integer"
	case KindFloat:
		return "Float"
	case KindBool:
		return "Bool"
	case KindNull:
		return "Null"
	case KindList:
		return "List"
	case KindMap:
		return "Map"
	default:
		panic("Unknown Kind")
	}
}

func (k Kind) GoString() string {
	return k.String()
}

// Value is a node in a parsed document. Concrete types:
//
//   - [String], [Integer], [Float], [Bool], [Null] (scalars)
//   - [List], [*Map] (containers)
//
// The root of every document is a *Map.
type Value interface {
	Kind() Kind
	// Equal reports structural equality. Map equality is
	// order-sensitive: key insertion order is part of the value.
	Equal(other Value) bool
	// Plain converts the tree to plain Go values: string, int64,
	// float64, bool, nil, []any and map[string]any. The map view
	// does not preserve key order.
	Plain() any

	value() // sealed marker, only types in this package implement Value
}

type String string

type Integer int64

type Float float64

type Bool bool

type Null struct{}

// List is an ordered sequence of values. Order is semantic and
// preserved across a parse/serialize round trip.
type List []Value

// Map holds string-keyed values in insertion order, so that
// serializing the same tree twice produces identical bytes.
type Map struct {
	entries []MapEntry
}

type MapEntry struct {
	Key   string
	Value Value
}

func NewMap() *Map {
	return &Map{}
}

// NewMapWithEntries builds a Map from a literal entry list, mostly
// useful in tests. Duplicate keys follow Set semantics.
func NewMapWithEntries(entries ...MapEntry) *Map {
	m := NewMap()
	for _, e := range entries {
		m.Set(e.Key, e.Value)
	}
	return m
}

// Set assigns key to value. An existing key keeps its position and
// has its value replaced; a new key is appended.
func (m *Map) Set(key string, value Value) {
	for i, e := range m.entries {
		if e.Key == key {
			m.entries[i].Value = value
			return
		}
	}
	m.entries = append(m.entries, MapEntry{key, value})
}

func (m *Map) Get(key string) (Value, bool) {
	for _, e := range m.entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

func (m *Map) Len() int { return len(m.entries) }

func (m *Map) Keys() []string {
	keys := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		keys = append(keys, e.Key)
	}
	return keys
}

// Entries returns the entries in insertion order. The slice is shared
// with the map; callers must not modify it.
func (m *Map) Entries() []MapEntry { return m.entries }

func (m *Map) Iterate(f func(key string, value Value)) {
	for _, e := range m.entries {
		f(e.Key, e.Value)
	}
}

func (s String) Kind() Kind  { return KindString }
func (i Integer) Kind() Kind { return KindInteger }
func (f Float) Kind() Kind   { return KindFloat }
func (b Bool) Kind() Kind    { return KindBool }
func (n Null) Kind() Kind    { return KindNull }
func (l List) Kind() Kind    { return KindList }
func (m *Map) Kind() Kind    { return KindMap }

func (s String) Equal(other Value) bool {
	o, ok := other.(String)
	return ok && s == o
}

func (i Integer) Equal(other Value) bool {
	o, ok := other.(Integer)
	return ok && i == o
}

func (f Float) Equal(other Value) bool {
	o, ok := other.(Float)
	return ok && f == o
}

func (b Bool) Equal(other Value) bool {
	o, ok := other.(Bool)
	return ok && b == o
}

func (n Null) Equal(other Value) bool {
	_, ok := other.(Null)
	return ok
}

func (l List) Equal(other Value) bool {
	o, ok := other.(List)
	if !ok || len(l) != len(o) {
		return false
	}
	for i := range l {
		if !l[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

func (m *Map) Equal(other Value) bool {
	o, ok := other.(*Map)
	if !ok || len(m.entries) != len(o.entries) {
		return false
	}
	for i, e := range m.entries {
		if e.Key != o.entries[i].Key || !e.Value.Equal(o.entries[i].Value) {
			return false
		}
	}
	return true
}

func (s String) Plain() any  { return string(s) }
func (i Integer) Plain() any { return int64(i) }
func (f Float) Plain() any   { return float64(f) }
func (b Bool) Plain() any    { return bool(b) }
func (n Null) Plain() any    { return nil }

func (l List) Plain() any {
	out := make([]any, len(l))
	for i, v := range l {
		out[i] = v.Plain()
	}
	return out
}

func (m *Map) Plain() any {
	out := make(map[string]any, len(m.entries))
	for _, e := range m.entries {
		out[e.Key] = e.Value.Plain()
	}
	return out
}

func (s String) value()  {}
func (i Integer) value() {}
func (f Float) value()   {}
func (b Bool) value()    {}
func (n Null) value()    {}
func (l List) value()    {}
func (m *Map) value()    {}
