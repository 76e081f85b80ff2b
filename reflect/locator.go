package reflect

// DescriptorKind classifies how a UniformConstant/Uniform/StorageBuffer
// variable is consumed, derived from its pointee type and decorations
// (§4.7).
type DescriptorKind uint8

const (
	DescriptorUniformBuffer DescriptorKind = iota
	DescriptorStorageBuffer
	DescriptorSampledImage
	DescriptorStorageImage
	DescriptorSampler
	DescriptorCombinedImageSampler
	DescriptorInputAttachment
	DescriptorAccelerationStructure
)

// Locator is the tagged union describing where a module-scope variable
// sits in the pipeline interface (§3, §4.7). Exactly one of the
// concrete types below applies to any given Variable.
type Locator interface {
	locatorKind()
}

// InputLocator places a variable in the shader stage's input
// interface, either at an explicit Location or as a BuiltIn.
type InputLocator struct {
	Location *uint32
	BuiltIn  *BuiltInRef
	Component uint32
}

func (InputLocator) locatorKind() {}

// OutputLocator mirrors InputLocator for the output interface.
type OutputLocator struct {
	Location  *uint32
	BuiltIn   *BuiltInRef
	Component uint32
}

func (OutputLocator) locatorKind() {}

// BuiltInRef names a built-in interface slot.
type BuiltInRef struct {
	Name uint32 // spirv.BuiltIn value
}

// DescriptorCount classifies a descriptor's element multiplicity. A
// bare *uint32 cannot distinguish "this isn't an array, bind-count 1"
// from "this is a runtime-sized array, bind-count resolved only at
// pipeline creation" without collapsing both onto nil; this type keeps
// the three states spec.md §4.7 step 2 requires explicit.
type DescriptorCount struct {
	// IsArray is false for a plain, non-array binding (bind-count 1).
	IsArray bool
	// Runtime is true for a runtime-sized (bindless) array; Len is
	// unused in that case and the bind-count is 0 until pipeline
	// creation supplies one.
	Runtime bool
	// Len is the fixed array length. Meaningful only when IsArray is
	// true and Runtime is false.
	Len uint32
}

// DescriptorLocator places a variable at a (set, binding) pair in the
// descriptor interface.
type DescriptorLocator struct {
	Set     uint32
	Binding uint32
	Kind    DescriptorKind
	Access  Access
	Count   DescriptorCount
}

func (DescriptorLocator) locatorKind() {}

// PushConstantLocator places a variable in the push-constant block.
// There is at most one push constant block per entry point.
type PushConstantLocator struct{}

func (PushConstantLocator) locatorKind() {}

// SpecConstantLocator places a scalar specialization constant at its
// declared SpecId.
type SpecConstantLocator struct {
	SpecId uint32
}

func (SpecConstantLocator) locatorKind() {}
