package reflect

import "sort"

// FuncInfo records one function's direct effects: the module-scope
// variables its body touches (by OpLoad/OpStore/OpAccessChain base, or
// OpAtomic*/OpImageTexelPointer) and the functions it calls. Reachable
// effects are computed by the closure walk below, not stored here.
type FuncInfo struct {
	Id           uint32
	Name         string
	ReadVars     map[uint32]bool
	WriteVars    map[uint32]bool
	Callees      map[uint32]bool
}

func newFuncInfo(id uint32) *FuncInfo {
	return &FuncInfo{
		Id:        id,
		ReadVars:  make(map[uint32]bool),
		WriteVars: make(map[uint32]bool),
		Callees:   make(map[uint32]bool),
	}
}

// FuncGraph is the whole-module call graph plus each function's direct
// variable effects (C6, §4.6). It is built in the body pass, after
// every function id is known from the declaration pass, and queried
// once per entry point during synthesis.
type FuncGraph struct {
	funcs map[uint32]*FuncInfo
}

// NewFuncGraph returns an empty graph.
func NewFuncGraph() *FuncGraph {
	return &FuncGraph{funcs: make(map[uint32]*FuncInfo)}
}

// Declare registers a function id, failing with IdCollision if it is
// already present.
func (g *FuncGraph) Declare(id uint32, name string) error {
	if _, ok := g.funcs[id]; ok {
		return newError(ErrIdCollision, id, "already declared as a function")
	}
	info := newFuncInfo(id)
	info.Name = name
	g.funcs[id] = info
	return nil
}

// RecordRead marks id's body as reading varId.
func (g *FuncGraph) RecordRead(id, varId uint32) error {
	info, err := g.get(id)
	if err != nil {
		return err
	}
	info.ReadVars[varId] = true
	return nil
}

// RecordWrite marks id's body as writing varId.
func (g *FuncGraph) RecordWrite(id, varId uint32) error {
	info, err := g.get(id)
	if err != nil {
		return err
	}
	info.WriteVars[varId] = true
	return nil
}

// RecordCall marks id's body as calling calleeId.
func (g *FuncGraph) RecordCall(id, calleeId uint32) error {
	info, err := g.get(id)
	if err != nil {
		return err
	}
	info.Callees[calleeId] = true
	return nil
}

func (g *FuncGraph) get(id uint32) (*FuncInfo, error) {
	info, ok := g.funcs[id]
	if !ok {
		return nil, newError(ErrFuncNotFound, id, "function body references an undeclared function id")
	}
	return info, nil
}

// Reachable walks the call graph from entryId, returning the per-
// variable AccessType for every variable any reachable function
// touches, widened across the whole closure. The walk order is a
// deterministic DFS over sorted callee ids, so the same module always
// produces the same traversal (not load-bearing for the result, which
// is order-independent, but load-bearing for reproducible diagnostics).
func (g *FuncGraph) Reachable(entryId uint32) (map[uint32]AccessType, error) {
	access := make(map[uint32]AccessType)
	visited := make(map[uint32]bool)

	var walk func(id uint32) error
	walk = func(id uint32) error {
		if visited[id] {
			return nil
		}
		visited[id] = true
		info, err := g.get(id)
		if err != nil {
			return err
		}
		for v := range info.ReadVars {
			access[v] = access[v].Widen(AccessRead)
		}
		for v := range info.WriteVars {
			access[v] = access[v].Widen(AccessWrite)
		}

		callees := make([]uint32, 0, len(info.Callees))
		for c := range info.Callees {
			callees = append(callees, c)
		}
		sort.Slice(callees, func(i, j int) bool { return callees[i] < callees[j] })
		for _, c := range callees {
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(entryId); err != nil {
		return nil, err
	}
	return access, nil
}
