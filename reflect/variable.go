package reflect

import "github.com/gogpu/spirvreflect/spirv"

// AccessType classifies how an entry point touches a variable,
// derived by walking the function graph from the entry point down
// through every reachable callee (§4.6, §4.7). It is monotone: adding
// a reachable function can only widen a variable's access, never
// narrow it.
type AccessType uint8

const (
	AccessNone AccessType = iota
	AccessRead
	AccessWrite
	AccessReadWriteBoth
)

// Widen merges another observed access into a, returning the widened
// result. AccessNone is the identity element.
func (a AccessType) Widen(b AccessType) AccessType {
	if a == AccessNone {
		return b
	}
	if b == AccessNone || a == b {
		return a
	}
	return AccessReadWriteBoth
}

// Variable is one module-scope OpVariable, fully classified: its
// type, storage class, and where it sits in the pipeline interface.
type Variable struct {
	Id           uint32
	Name         string
	Type         Type // the pointee type (OpVariable's own type is Pointer(StorageClass, Type))
	StorageClass spirv.StorageClass
	Locator      Locator
}

// VariableBuilder classifies OpVariable declarations into Variables
// with a resolved Locator, the C7 algorithm (§4.7). It consults the
// type registry (for the pointee's shape) and the annotation store
// (for Location/Binding/DescriptorSet/BuiltIn/SpecId decorations).
type VariableBuilder struct {
	types  *TypeRegistry
	annots *Annotations
}

// NewVariableBuilder constructs a builder over the given registries.
// The declaration pass builds each variable when it reaches its
// OpVariable; module order has by then registered the variable's
// decorations and its pointee type.
func NewVariableBuilder(types *TypeRegistry, annots *Annotations) *VariableBuilder {
	return &VariableBuilder{types: types, annots: annots}
}

// Build classifies one module-scope variable: ptrType must be a
// PointerType previously bound in the registry for id's declared type.
func (b *VariableBuilder) Build(id uint32, ptrType PointerType) (*Variable, error) {
	v := &Variable{
		Id:           id,
		Name:         b.annots.Name(id, -1),
		Type:         ptrType.Pointee,
		StorageClass: ptrType.StorageClass,
	}

	loc, err := b.classify(id, v)
	if err != nil {
		return nil, err
	}
	v.Locator = loc
	return v, nil
}

func (b *VariableBuilder) classify(id uint32, v *Variable) (Locator, error) {
	switch v.StorageClass {
	case spirv.StorageClassInput:
		return b.interfaceLocator(id, false)
	case spirv.StorageClassOutput:
		return b.interfaceLocator(id, true)
	case spirv.StorageClassPushConstant:
		return PushConstantLocator{}, nil
	case spirv.StorageClassUniformConstant:
		return b.descriptorLocator(id, v.Type)
	case spirv.StorageClassUniform, spirv.StorageClassStorageBuffer:
		return b.bufferLocator(id, v.Type, v.StorageClass)
	default:
		// Workgroup, Private and other non-interface storage classes
		// have no pipeline locator; they are still reachable via the
		// function graph but carry no Locator.
		return nil, nil
	}
}

func (b *VariableBuilder) interfaceLocator(id uint32, output bool) (Locator, error) {
	var component uint32
	if ops, ok := b.annots.Decoration(id, -1, spirv.DecorationComponent); ok && len(ops) > 0 {
		component = ops[0]
	}
	var builtin *BuiltInRef
	if ops, ok := b.annots.Decoration(id, -1, spirv.DecorationBuiltIn); ok && len(ops) > 0 {
		builtin = &BuiltInRef{Name: ops[0]}
	}
	var location *uint32
	if ops, ok := b.annots.Decoration(id, -1, spirv.DecorationLocation); ok && len(ops) > 0 {
		loc := ops[0]
		location = &loc
	}
	if location == nil && builtin == nil {
		return nil, newError(ErrMissingDecoration, id, "interface variable has neither Location nor BuiltIn")
	}
	if output {
		return OutputLocator{Location: location, BuiltIn: builtin, Component: component}, nil
	}
	return InputLocator{Location: location, BuiltIn: builtin, Component: component}, nil
}

func (b *VariableBuilder) descriptorLocator(id uint32, pointee Type) (Locator, error) {
	set, err := b.annots.RequireUint32(id, -1, spirv.DecorationDescriptorSet)
	if err != nil {
		return nil, err
	}
	binding, err := b.annots.RequireUint32(id, -1, spirv.DecorationBinding)
	if err != nil {
		return nil, err
	}

	kind, count, err := classifyDescriptorShape(pointee)
	if err != nil {
		return nil, err
	}
	return DescriptorLocator{Set: set, Binding: binding, Kind: kind, Access: AccessReadWrite, Count: count}, nil
}

func classifyDescriptorShape(t Type) (DescriptorKind, DescriptorCount, error) {
	switch x := t.(type) {
	case ArrayType:
		kind, _, err := classifyDescriptorShape(x.Element)
		if err != nil {
			return 0, DescriptorCount{}, err
		}
		if x.Count == nil {
			return kind, DescriptorCount{IsArray: true, Runtime: true}, nil
		}
		return kind, DescriptorCount{IsArray: true, Len: *x.Count}, nil
	case ImageType:
		if x.Dim == spirv.DimSubpassData {
			return DescriptorInputAttachment, DescriptorCount{}, nil
		}
		if x.IsSampled == TriYes {
			return DescriptorSampledImage, DescriptorCount{}, nil
		}
		return DescriptorStorageImage, DescriptorCount{}, nil
	case SampledImageType:
		return DescriptorCombinedImageSampler, DescriptorCount{}, nil
	case SamplerType:
		return DescriptorSampler, DescriptorCount{}, nil
	case AccelerationStructureType:
		return DescriptorAccelerationStructure, DescriptorCount{}, nil
	default:
		return 0, DescriptorCount{}, newError(ErrUnsupportedType, 0, "type cannot be classified as a UniformConstant-class descriptor")
	}
}

func (b *VariableBuilder) bufferLocator(id uint32, pointee Type, sc spirv.StorageClass) (Locator, error) {
	set, err := b.annots.RequireUint32(id, -1, spirv.DecorationDescriptorSet)
	if err != nil {
		return nil, err
	}
	binding, err := b.annots.RequireUint32(id, -1, spirv.DecorationBinding)
	if err != nil {
		return nil, err
	}

	kind := DescriptorUniformBuffer
	st, isStruct := pointee.(StructType)
	if sc == spirv.StorageClassStorageBuffer || (isStruct && b.annots.Has(id, -1, spirv.DecorationBufferBlock)) {
		kind = DescriptorStorageBuffer
	}

	access := AccessReadWrite
	if isStruct {
		access = memberAccessUnion(st)
	}
	return DescriptorLocator{Set: set, Binding: binding, Kind: kind, Access: access}, nil
}

func memberAccessUnion(st StructType) Access {
	if len(st.Members) == 0 {
		return AccessReadWrite
	}
	access := st.Members[0].Access
	for _, m := range st.Members[1:] {
		if m.Access != access {
			return AccessReadWrite
		}
	}
	return access
}
