package reflect

import (
	"fmt"
	"strings"
)

// nameGenerator synthesizes a name for every id that has no OpName,
// when Config.GenerateUniqueNames is set. It is grounded on the same
// used-name-set-plus-ascending-suffix idiom the teacher's HLSL back
// end uses for identifier disambiguation, adapted here to synthesize
// a name from an id instead of resolving a collision between two
// already-chosen names: this is a distinct naming grammar from the
// one disasm uses for anonymous types and constants.
type nameGenerator struct {
	used    map[string]bool
	pending map[uint32]bool
}

func newNameGenerator() *nameGenerator {
	return &nameGenerator{
		used:    make(map[string]bool),
		pending: make(map[uint32]bool),
	}
}

// reserve records id's existing name (possibly "") so generated names
// never collide with a real OpName.
func (g *nameGenerator) reserve(id uint32, name string) {
	if name == "" {
		g.pending[id] = true
		return
	}
	g.used[normalizeName(name)] = true
}

// nameFor returns a synthesized, collision-free name for id.
func (g *nameGenerator) nameFor(id uint32) string {
	base := fmt.Sprintf("var_%d", id)
	name := base
	suffix := 0
	for g.used[normalizeName(name)] {
		suffix++
		name = fmt.Sprintf("%s_%d", base, suffix)
	}
	g.used[normalizeName(name)] = true
	return name
}

func normalizeName(s string) string {
	return strings.ToLower(s)
}
