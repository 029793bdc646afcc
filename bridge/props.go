package bridge

import (
	"context"
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// LazyFunc produces a prop value at render time. It is invoked only when the
// prop's key is part of the resolved key set.
type LazyFunc func(ctx context.Context) (any, error)

type propMode uint8

const (
	modeDefault propMode = iota
	// modeOptional props are resolved only when a partial reload names them.
	modeOptional
	// modeAlways props survive partial-reload filtering.
	modeAlways
)

// Prop is a single page prop: either a concrete value or a producer.
// The zero Prop resolves to nil.
type Prop struct {
	value any
	fn    LazyFunc
	mode  propMode
}

// Value wraps a concrete value.
func Value(v any) Prop {
	return Prop{value: v}
}

// Lazy wraps a producer evaluated during Render.
func Lazy(fn LazyFunc) Prop {
	return Prop{fn: fn}
}

// LazyOf adapts a context-free producer.
func LazyOf[T any](fn func() T) Prop {
	return Prop{fn: func(context.Context) (any, error) { return fn(), nil }}
}

// Optional wraps a producer that is skipped on full page loads and resolved
// only when a partial reload asks for it by name.
func Optional(fn LazyFunc) Prop {
	return Prop{fn: fn, mode: modeOptional}
}

// Always marks a value (or another Prop) as included in every response,
// including partial reloads that do not list it.
func Always(v any) Prop {
	if p, ok := v.(Prop); ok {
		p.mode = modeAlways
		return p
	}
	return Prop{value: v, mode: modeAlways}
}

// IsLazy reports whether the prop is produced at render time.
func (p Prop) IsLazy() bool { return p.fn != nil }

func (p Prop) resolve(ctx context.Context) (any, error) {
	if p.fn == nil {
		return p.value, nil
	}
	return p.fn(ctx)
}

// PropSource is anything that can be flattened into Props.
type PropSource interface {
	ToProps() *Props
}

// M is a convenience literal for props. Values that are already a Prop are
// kept, everything else is wrapped with Value. Keys are inserted in sorted
// order since Go maps carry no order of their own.
type M map[string]any

// ToProps implements PropSource.
func (m M) ToProps() *Props {
	p := NewProps()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		p.Set(k, m[k])
	}
	return p
}

// Props is an insertion-ordered mapping from prop name to Prop.
type Props struct {
	m *orderedmap.OrderedMap[string, Prop]
}

// NewProps returns an empty Props.
func NewProps() *Props {
	return &Props{m: orderedmap.New[string, Prop]()}
}

// ToProps implements PropSource.
func (p *Props) ToProps() *Props { return p }

// Set stores v under key. Overwriting a key keeps its original position.
func (p *Props) Set(key string, v any) *Props {
	prop, ok := v.(Prop)
	if !ok {
		prop = Value(v)
	}
	p.m.Set(key, prop)
	return p
}

// Get returns the prop stored under key.
func (p *Props) Get(key string) (Prop, bool) {
	if p == nil {
		return Prop{}, false
	}
	return p.m.Get(key)
}

// Delete removes key.
func (p *Props) Delete(key string) {
	p.m.Delete(key)
}

// Len returns the number of props.
func (p *Props) Len() int {
	if p == nil {
		return 0
	}
	return p.m.Len()
}

// Keys returns prop names in insertion order.
func (p *Props) Keys() []string {
	if p == nil {
		return nil
	}
	keys := make([]string, 0, p.m.Len())
	for pair := p.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Merge shallow-merges src over p, key by key. Later values win; keys new to
// p are appended in src order.
func (p *Props) Merge(src PropSource) *Props {
	if src == nil {
		return p
	}
	other := src.ToProps()
	if other == nil {
		return p
	}
	for pair := other.m.Oldest(); pair != nil; pair = pair.Next() {
		p.m.Set(pair.Key, pair.Value)
	}
	return p
}

// Clone returns a shallow copy.
func (p *Props) Clone() *Props {
	out := NewProps()
	if p == nil {
		return out
	}
	return out.Merge(p)
}
