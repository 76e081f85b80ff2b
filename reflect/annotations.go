package reflect

import "github.com/gogpu/spirvreflect/spirv"

// memberKey identifies either an id itself (Member == -1) or one
// member of a struct id (Member >= 0), the same addressing
// OpMemberName/OpMemberDecorate use.
type memberKey struct {
	Id     uint32
	Member int32
}

// Annotations accumulates the two kinds of debug/semantic information
// that decorate ids: human-readable names (OpName/OpMemberName) and
// decorations (OpDecorate/OpMemberDecorate/OpDecorateString/...). Both
// are collected in the declaration pass, before any type or variable
// is built, since a member's Offset or a struct's BufferBlock-style
// decoration must be known before the type can be classified (§4.4).
type Annotations struct {
	names       map[memberKey]string
	decorations map[memberKey]map[spirv.Decoration][]uint32
}

// NewAnnotations returns an empty store.
func NewAnnotations() *Annotations {
	return &Annotations{
		names:       make(map[memberKey]string),
		decorations: make(map[memberKey]map[spirv.Decoration][]uint32),
	}
}

// SetName records a name for id (Member -1) or a struct member
// (Member >= 0). A second OpName/OpMemberName for the same key is a
// NameCollision: SPIR-V permits it in theory but this reflection
// engine treats a module with duplicate debug names for one target as
// malformed input.
func (a *Annotations) SetName(id uint32, member int32, name string) error {
	key := memberKey{id, member}
	if _, ok := a.names[key]; ok {
		return newError(ErrNameCollision, id, "duplicate name for member %d", member)
	}
	a.names[key] = name
	return nil
}

// Name returns the recorded name, or "" if none was given.
func (a *Annotations) Name(id uint32, member int32) string {
	return a.names[memberKey{id, member}]
}

// AddDecoration records one decoration instance with its literal
// operands. A decoration kind may legitimately repeat across different
// targets, but the same (id, member, kind) triple decorated twice is a
// DecorationCollision — SPIR-V producers never emit that, and silently
// taking the last one would hide a malformed module.
func (a *Annotations) AddDecoration(id uint32, member int32, dec spirv.Decoration, operands []uint32) error {
	key := memberKey{id, member}
	byKind, ok := a.decorations[key]
	if !ok {
		byKind = make(map[spirv.Decoration][]uint32)
		a.decorations[key] = byKind
	}
	if _, ok := byKind[dec]; ok {
		return newError(ErrDecorationCollision, id, "decoration %s repeated for member %d", dec, member)
	}
	byKind[dec] = operands
	return nil
}

// Decoration returns the operands recorded for dec on (id, member),
// and whether it was present at all.
func (a *Annotations) Decoration(id uint32, member int32, dec spirv.Decoration) ([]uint32, bool) {
	byKind, ok := a.decorations[memberKey{id, member}]
	if !ok {
		return nil, false
	}
	ops, ok := byKind[dec]
	return ops, ok
}

// Has reports whether dec is present on (id, member) at all.
func (a *Annotations) Has(id uint32, member int32, dec spirv.Decoration) bool {
	_, ok := a.Decoration(id, member, dec)
	return ok
}

// RequireUint32 returns dec's single literal operand, failing with
// MissingDecoration if it is absent.
func (a *Annotations) RequireUint32(id uint32, member int32, dec spirv.Decoration) (uint32, error) {
	ops, ok := a.Decoration(id, member, dec)
	if !ok || len(ops) == 0 {
		return 0, newError(ErrMissingDecoration, id, "expected %s on member %d", dec, member)
	}
	return ops[0], nil
}
