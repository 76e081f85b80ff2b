package reflect

import (
	"fmt"
	"sort"

	"github.com/gogpu/spirvreflect/spirv"
)

// Config controls optional reflection behavior. The zero value is the
// default configuration (what DefaultConfig returns).
type Config struct {
	// ReferenceAllResources includes every Input/Output/UniformConstant/
	// Uniform/StorageBuffer/PushConstant variable in the module, not just
	// those reachable from an entry point's function closure.
	ReferenceAllResources bool
	// CombineImageSamplers merges a separately bound image and sampler
	// that share the same set/binding into a single
	// DescriptorCombinedImageSampler entry, matching the GLSL front end's
	// handling.
	CombineImageSamplers bool
	// GenerateUniqueNames synthesizes a name for any id Annotations has
	// no OpName for, using namegen.go's grammar, so every Variable in
	// the Result always has a non-empty Name.
	GenerateUniqueNames bool
	// Specializations overrides spec constant values by SpecId before
	// synthesis, the same override semantics a pipeline's
	// VkSpecializationInfo would apply.
	Specializations map[uint32]Value
}

// DefaultConfig returns the zero-overhead default: no resource
// expansion, no sampler combining, no synthesized names, and no
// specialization overrides.
func DefaultConfig() Config {
	return Config{
		ReferenceAllResources: false,
		CombineImageSamplers:  false,
		GenerateUniqueNames:   false,
		Specializations:       nil,
	}
}

// ExecutionModeInfo is one OpExecutionMode applied to an entry point.
type ExecutionModeInfo struct {
	Mode     spirv.ExecutionMode
	Operands []uint32
}

// EntryPoint is the fully reflected interface of one OpEntryPoint.
type EntryPoint struct {
	Model         spirv.ExecutionModel
	Name          string
	ExecutionModes []ExecutionModeInfo
	Variables     []Variable
}

// Result is the self-contained output of a Reflect call: one
// EntryPoint per OpEntryPoint declared in the module, independent of
// any registry the driver built internally.
type Result struct {
	EntryPoints []EntryPoint
}

// entryPointDecl is the raw OpEntryPoint payload collected during the
// declaration pass, resolved into an EntryPoint only at synthesis.
type entryPointDecl struct {
	model  spirv.ExecutionModel
	funcId uint32
	name   string
	iface  []uint32
	modes  []ExecutionModeInfo
}

// Reflect parses data as a SPIR-V module and computes its public
// interface (C8). The pipeline is three passes over the decoded
// instruction stream:
//
//  1. Declarations: types, annotations, constants, and variables are
//     registered; entry points and function ids are recorded.
//  2. Bodies: each OpFunction's instructions are scanned for variable
//     accesses and calls, populating the function graph.
//  3. Synthesis: per entry point, the function graph's reachable set
//     is intersected with the declared variables and materialized into
//     the Result.
func Reflect(data []byte, cfg Config) (*Result, error) {
	_, instrs, err := spirv.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("reflect: decoding module: %w", err)
	}

	types := NewTypeRegistry()
	annots := NewAnnotations()
	consts := NewConstantPool()
	graph := NewFuncGraph()
	vars := make(map[uint32]*Variable)
	entryPoints, arrayLens, err := declarationPass(instrs, types, annots, consts, graph, vars)
	if err != nil {
		return nil, fmt.Errorf("reflect: declaration pass: %w", err)
	}

	if err := bodyPass(instrs, graph, vars); err != nil {
		return nil, fmt.Errorf("reflect: body pass: %w", err)
	}

	if cfg.Specializations != nil {
		if err := applySpecializations(consts, cfg.Specializations); err != nil {
			return nil, fmt.Errorf("reflect: applying specializations: %w", err)
		}
		if err := reevaluateArrayLengths(consts, arrayLens); err != nil {
			return nil, fmt.Errorf("reflect: re-evaluating array lengths: %w", err)
		}
		reclassifyDescriptors(vars, types, annots)
	}

	result, err := synthesize(entryPoints, graph, vars, annots, consts, cfg)
	if err != nil {
		return nil, fmt.Errorf("reflect: synthesis: %w", err)
	}
	return result, nil
}

func synthesize(decls []entryPointDecl, graph *FuncGraph, vars map[uint32]*Variable, annots *Annotations, consts *ConstantPool, cfg Config) (*Result, error) {
	result := &Result{}
	gen := newNameGenerator()
	for id, v := range vars {
		if v.Name == "" {
			gen.reserve(id, "")
		} else {
			gen.reserve(id, v.Name)
		}
	}

	specIds := remainingSpecConstantIds(consts, cfg.Specializations)
	for _, id := range specIds {
		gen.reserve(id, annots.Name(id, -1))
	}
	var specVars []Variable
	for _, id := range specIds {
		c := consts.byId[id]
		name := annots.Name(id, -1)
		if name == "" && cfg.GenerateUniqueNames {
			name = gen.nameFor(id)
		}
		specVars = append(specVars, Variable{
			Id:      id,
			Name:    name,
			Type:    c.Type,
			Locator: SpecConstantLocator{SpecId: *c.SpecId},
		})
	}

	for _, decl := range decls {
		ep := EntryPoint{Model: decl.model, Name: decl.name, ExecutionModes: decl.modes}

		var reachable map[uint32]AccessType
		if cfg.ReferenceAllResources {
			reachable = make(map[uint32]AccessType)
			for id, v := range vars {
				if v.Locator == nil {
					continue
				}
				reachable[id] = AccessReadWriteBoth
			}
		} else {
			r, err := graph.Reachable(decl.funcId)
			if err != nil {
				return nil, err
			}
			reachable = r
			for _, ifaceId := range decl.iface {
				if _, ok := reachable[ifaceId]; !ok {
					reachable[ifaceId] = AccessReadWriteBoth
				}
			}
		}

		ids := make([]uint32, 0, len(reachable))
		for id := range reachable {
			if _, ok := vars[id]; ok {
				ids = append(ids, id)
			}
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		for _, id := range ids {
			v := *vars[id]
			if v.Name == "" && cfg.GenerateUniqueNames {
				v.Name = gen.nameFor(id)
			}
			ep.Variables = append(ep.Variables, v)
		}
		if cfg.CombineImageSamplers {
			ep.Variables = combineImageSamplers(ep.Variables)
		}
		ep.Variables = append(ep.Variables, specVars...)
		result.EntryPoints = append(result.EntryPoints, ep)
	}
	return result, nil
}

// remainingSpecConstantIds returns, in ascending id order, every scalar
// specialization constant that carries a SpecId decoration and was not
// named in overrides — spec.md §3's "all specialization constants that
// remain unspecialized".
func remainingSpecConstantIds(consts *ConstantPool, overrides map[uint32]Value) []uint32 {
	var ids []uint32
	for id, c := range consts.byId {
		if !c.IsSpec || c.SpecId == nil {
			continue
		}
		if _, overridden := overrides[*c.SpecId]; overridden {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// combineImageSamplers folds a separately-bound OpTypeImage/OpTypeSampler
// pair sharing the same (set, binding) into a single
// DescriptorCombinedImageSampler entry, the GLSL front end's usual
// `sampler2D` lowering. Unpaired images and samplers pass through
// unchanged.
func combineImageSamplers(vars []Variable) []Variable {
	type key struct{ set, binding uint32 }
	images := make(map[key]int)
	samplers := make(map[key]int)
	for i, v := range vars {
		dl, ok := v.Locator.(DescriptorLocator)
		if !ok {
			continue
		}
		k := key{dl.Set, dl.Binding}
		switch dl.Kind {
		case DescriptorSampledImage, DescriptorStorageImage:
			images[k] = i
		case DescriptorSampler:
			samplers[k] = i
		}
	}

	replacement := make(map[int]Variable)
	dropped := make(map[int]bool)
	for k, imgIdx := range images {
		samplerIdx, ok := samplers[k]
		if !ok {
			continue
		}
		img := vars[imgIdx]
		sampler := vars[samplerIdx]
		dl := img.Locator.(DescriptorLocator)
		dl.Kind = DescriptorCombinedImageSampler
		name := img.Name
		if name == "" {
			name = sampler.Name
		}
		replacement[imgIdx] = Variable{Id: img.Id, Name: name, Type: img.Type, StorageClass: img.StorageClass, Locator: dl}
		dropped[samplerIdx] = true
	}

	out := make([]Variable, 0, len(vars))
	for i, v := range vars {
		if dropped[i] {
			continue
		}
		if r, ok := replacement[i]; ok {
			out = append(out, r)
			continue
		}
		out = append(out, v)
	}
	return out
}

// applySpecializations overrides spec constant scalar values by SpecId,
// validating that each override's runtime Kind/Width matches the
// constant's declared type (§7 InvalidSpecialization), then discards
// every memoized OpSpecConstantOp evaluation so the next Evaluate call
// recomputes through the new base values instead of returning a result
// computed from the pre-override defaults.
func applySpecializations(consts *ConstantPool, overrides map[uint32]Value) error {
	for id, c := range consts.byId {
		if !c.IsSpec || c.SpecId == nil {
			continue
		}
		v, ok := overrides[*c.SpecId]
		if !ok {
			continue
		}
		scalar, ok := c.Type.(ScalarType)
		if !ok {
			return newError(ErrInvalidSpecialization, id, "spec constant's declared type is not scalar")
		}
		if v.Kind != scalar.Kind || v.Width != scalar.Width {
			return newError(ErrInvalidSpecialization, id, "override kind/width (%d/%d) does not match declared type (%d/%d)", v.Kind, v.Width, scalar.Kind, scalar.Width)
		}
		nv := v
		consts.cache[id] = v
		c.Scalar = &nv
	}

	for id, c := range consts.byId {
		if c.SpecOp != nil {
			delete(consts.cache, id)
		}
	}
	return nil
}

// reevaluateArrayLengths recomputes every array type's element count
// after applySpecializations has run, writing the new value through the
// same *uint32 cell the ArrayType already holds (a DescriptorLocator
// keeps its own copied Count, which reclassifyDescriptors rebuilds
// afterwards) — declarationPass bakes a length in eagerly
// (needed to build descriptor locators during that same pass), and that
// baked value only reflected the constant pool's pre-override defaults.
func reevaluateArrayLengths(consts *ConstantPool, arrayLens []arrayLengthRef) error {
	for _, ref := range arrayLens {
		length, err := consts.Evaluate(ref.lengthConstId)
		if err != nil {
			return err
		}
		*ref.count = uint32(length.Uint64())
	}
	return nil
}

// reclassifyDescriptors rebuilds the Locator of every UniformConstant/
// Uniform/StorageBuffer variable, so a DescriptorLocator.Count baked
// from a pre-specialization array length (see reevaluateArrayLengths)
// is replaced with one reflecting the now-patched ArrayType.
func reclassifyDescriptors(vars map[uint32]*Variable, types *TypeRegistry, annots *Annotations) {
	builder := &VariableBuilder{types: types, annots: annots}
	for id, v := range vars {
		switch v.StorageClass {
		case spirv.StorageClassUniformConstant, spirv.StorageClassUniform, spirv.StorageClassStorageBuffer:
		default:
			continue
		}
		if loc, err := builder.classify(id, v); err == nil {
			v.Locator = loc
		}
	}
}
