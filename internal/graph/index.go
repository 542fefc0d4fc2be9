package graph

// Index is the identity arena of one build. URIs and blank node ids are
// separate namespaces.
type Index struct {
	uris   map[string]*Resource
	blanks map[string]*Resource
	order  []*Resource
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{
		uris:   make(map[string]*Resource),
		blanks: make(map[string]*Resource),
	}
}

// Lookup returns the canonical resource for r's identity key. The URI is
// tried first, then the blank node id.
func (x *Index) Lookup(r *Resource) (*Resource, bool) {
	if uri, ok := r.URI(); ok {
		if existing, found := x.uris[uri]; found {
			return existing, true
		}
	}
	if id, ok := r.ID(); ok {
		if existing, found := x.blanks[id]; found {
			return existing, true
		}
	}
	return nil, false
}

// Add registers r under its identity key. It reports false when r has no
// identity key or the key is already taken.
func (x *Index) Add(r *Resource) bool {
	if uri, ok := r.URI(); ok {
		if _, taken := x.uris[uri]; taken {
			return false
		}
		x.uris[uri] = r
	} else if id, ok := r.ID(); ok {
		if _, taken := x.blanks[id]; taken {
			return false
		}
		x.blanks[id] = r
	} else {
		return false
	}
	x.order = append(x.order, r)
	return true
}

// Canonical returns the indexed resource sharing r's identity key, or r.
func (x *Index) Canonical(r *Resource) *Resource {
	if existing, ok := x.Lookup(r); ok {
		return existing
	}
	return r
}

// Resources returns every indexed resource in insertion order.
func (x *Index) Resources() []*Resource {
	return x.order
}

// Len returns the number of indexed resources.
func (x *Index) Len() int {
	return len(x.order)
}
