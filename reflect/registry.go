package reflect

// TypeRegistry holds the single authoritative Type for every id the
// module declares as a type. Unlike a compiler's type table, which
// deduplicates structurally identical types to shrink output, this
// registry is single-assignment: each id may be bound exactly once,
// because the id itself — not the registry — is the caller's identity
// for that type (§3, Open Question resolved in DESIGN.md).
//
// The sole exception is a forward pointer (OpTypeForwardPointer): it
// reserves an id before the pointer's pointee type is known, and a
// later OpTypePointer declaration for the same id promotes the
// placeholder to a full PointerType. Any other re-declaration of an
// already-bound id is an IdCollision.
type TypeRegistry struct {
	types    map[uint32]Type
	forward  map[uint32]bool // ids reserved by OpTypeForwardPointer, not yet promoted
}

// NewTypeRegistry returns an empty registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		types:   make(map[uint32]Type),
		forward: make(map[uint32]bool),
	}
}

// ReserveForward records id as a forward-declared pointer awaiting
// promotion. It fails if id is already bound to anything.
func (r *TypeRegistry) ReserveForward(id uint32) error {
	if _, ok := r.types[id]; ok {
		return newError(ErrIdCollision, id, "already bound to a type")
	}
	r.forward[id] = true
	return nil
}

// IsForward reports whether id is a reserved, not-yet-promoted forward
// pointer.
func (r *TypeRegistry) IsForward(id uint32) bool {
	return r.forward[id]
}

// Bind assigns t to id. It fails with IdCollision unless id is unbound
// or is an unpromoted forward pointer being promoted by a PointerType.
func (r *TypeRegistry) Bind(id uint32, t Type) error {
	if _, ok := r.types[id]; ok {
		return newError(ErrIdCollision, id, "already bound to a type")
	}
	if r.forward[id] {
		if _, isPtr := t.(PointerType); !isPtr {
			return newError(ErrIdCollision, id, "forward-declared pointer id rebound to a non-pointer type")
		}
		delete(r.forward, id)
	}
	r.types[id] = t
	return nil
}

// Get looks up the type bound to id.
func (r *TypeRegistry) Get(id uint32) (Type, error) {
	t, ok := r.types[id]
	if !ok {
		return nil, newError(ErrTypeNotFound, id, "no type declared for this id")
	}
	return t, nil
}

// Len reports how many ids are bound (forward reservations not yet
// promoted do not count).
func (r *TypeRegistry) Len() int {
	return len(r.types)
}
