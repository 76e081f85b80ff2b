package reflect

import "github.com/gogpu/spirvreflect/spirv"

// Type is the tagged union over every structural type the reflection
// engine recognizes (§3). Each concrete type below is one variant;
// callers type-switch on it rather than relying on virtual dispatch.
type Type interface {
	typeKind()
}

// ScalarKind distinguishes the scalar families.
type ScalarKind uint8

const (
	ScalarBool ScalarKind = iota
	ScalarSigned
	ScalarUnsigned
	ScalarFloat
)

// ScalarType is a bool, integer, or float of a fixed bit width. Bool
// has no in-memory size; Width is 0 for it.
type ScalarType struct {
	Kind  ScalarKind
	Width uint8 // 8, 16, 32, 64 (0 for Bool)
}

func (ScalarType) typeKind() {}

// VectorType is a fixed-size vector of 2, 3 or 4 scalar components.
type VectorType struct {
	Component ScalarType
	Count     uint8
}

func (VectorType) typeKind() {}

// MajorAxis identifies a matrix's memory layout when one is declared.
type MajorAxis uint8

const (
	MajorUnset MajorAxis = iota
	MajorColumn
	MajorRow
)

// MatrixType is a sequence of column vectors. Stride and Major are
// zero-value ("unset") for abstract, non-laid-out uses, and must be
// set for any type reached through a descriptor buffer (§3).
type MatrixType struct {
	Column VectorType
	Count  uint8
	Stride *uint32
	Major  MajorAxis
}

func (MatrixType) typeKind() {}

// ArrayType is a (possibly runtime-sized) homogeneous sequence.
// Count is nil for a runtime array. Stride may be nil even when Count
// is set, for multi-binding descriptor arrays only (§3).
type ArrayType struct {
	Element Type
	Count   *uint32
	Stride  *uint32
}

func (ArrayType) typeKind() {}

// Access narrows read/write capability, derived from NonWritable and
// NonReadable decorations (§4.7).
type Access uint8

const (
	AccessReadWrite Access = iota
	AccessReadOnly
	AccessWriteOnly
)

// StructMember is one field of a StructType.
type StructMember struct {
	Name   string
	Offset *uint32 // absent only for interface blocks without a host layout
	Type   Type
	Access Access
}

// StructType is an ordered sequence of named members.
type StructType struct {
	Name    string
	Members []StructMember
}

func (StructType) typeKind() {}

// PointerType targets a storage class and a pointee type. A forward
// device-pointer (§3, §4.3) is represented the same way once promoted;
// before promotion the registry tracks it separately (see registry.go).
type PointerType struct {
	StorageClass spirv.StorageClass
	Pointee      Type
}

func (PointerType) typeKind() {}

// ImageDim is an alias of spirv.Dim, so the two are the same type.
type ImageDim = spirv.Dim

// Tri is a three-valued flag (SPIR-V itself encodes several image
// properties this way: 0/1/2 meaning "no"/"yes"/"runtime-dependent").
type Tri uint8

const (
	TriNo Tri = iota
	TriYes
	TriRuntime
)

// ImageType is a handle to a sampled or storage image.
type ImageType struct {
	Sampled    ScalarType
	Dim        ImageDim
	Depth      Tri
	Arrayed    bool
	MS         bool
	IsSampled  Tri
	Format     spirv.ImageFormat
}

func (ImageType) typeKind() {}

// SampledImageType pairs an image with an implicit sampler (GLSL's
// combined sampler types, e.g. sampler2D).
type SampledImageType struct {
	Image ImageType
}

func (SampledImageType) typeKind() {}

// SamplerType is a standalone sampler object.
type SamplerType struct{}

func (SamplerType) typeKind() {}

// AccelerationStructureType is a ray-tracing acceleration structure
// handle (SPV_KHR_ray_tracing / SPV_KHR_ray_query).
type AccelerationStructureType struct{}

func (AccelerationStructureType) typeKind() {}

// VoidType is the function-result "no value" type.
type VoidType struct{}

func (VoidType) typeKind() {}

// Equal reports whether two types are structurally identical. The
// registry deduplicates by id, never by shape (§3); Equal exists for
// invariant checks and tests, not for registry lookups.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case ScalarType:
		y, ok := b.(ScalarType)
		return ok && x == y
	case VectorType:
		y, ok := b.(VectorType)
		return ok && x.Count == y.Count && Equal(x.Component, y.Component)
	case MatrixType:
		y, ok := b.(MatrixType)
		if !ok || x.Count != y.Count || x.Major != y.Major || !Equal(x.Column, y.Column) {
			return false
		}
		return equalUint32Ptr(x.Stride, y.Stride)
	case ArrayType:
		y, ok := b.(ArrayType)
		if !ok || !Equal(x.Element, y.Element) {
			return false
		}
		return equalUint32Ptr(x.Count, y.Count) && equalUint32Ptr(x.Stride, y.Stride)
	case StructType:
		y, ok := b.(StructType)
		if !ok || x.Name != y.Name || len(x.Members) != len(y.Members) {
			return false
		}
		for i := range x.Members {
			mx, my := x.Members[i], y.Members[i]
			if mx.Name != my.Name || mx.Access != my.Access || !Equal(mx.Type, my.Type) {
				return false
			}
			if !equalUint32Ptr(mx.Offset, my.Offset) {
				return false
			}
		}
		return true
	case PointerType:
		y, ok := b.(PointerType)
		return ok && x.StorageClass == y.StorageClass && Equal(x.Pointee, y.Pointee)
	case ImageType:
		y, ok := b.(ImageType)
		return ok && x == y
	case SampledImageType:
		y, ok := b.(SampledImageType)
		return ok && Equal(x.Image, y.Image)
	case SamplerType:
		_, ok := b.(SamplerType)
		return ok
	case AccelerationStructureType:
		_, ok := b.(AccelerationStructureType)
		return ok
	case VoidType:
		_, ok := b.(VoidType)
		return ok
	default:
		return false
	}
}

func equalUint32Ptr(a, b *uint32) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// CloneType deep-copies t so output values are self-contained and
// independent of the registry they were read from (§3 "Lifetimes").
func CloneType(t Type) Type {
	switch x := t.(type) {
	case VectorType:
		x.Component = CloneType(x.Component).(ScalarType)
		return x
	case MatrixType:
		x.Column = CloneType(x.Column).(VectorType)
		x.Stride = cloneUint32Ptr(x.Stride)
		return x
	case ArrayType:
		x.Element = CloneType(x.Element)
		x.Count = cloneUint32Ptr(x.Count)
		x.Stride = cloneUint32Ptr(x.Stride)
		return x
	case StructType:
		members := make([]StructMember, len(x.Members))
		for i, m := range x.Members {
			m.Type = CloneType(m.Type)
			m.Offset = cloneUint32Ptr(m.Offset)
			members[i] = m
		}
		x.Members = members
		return x
	case PointerType:
		x.Pointee = CloneType(x.Pointee)
		return x
	case SampledImageType:
		x.Image = CloneType(x.Image).(ImageType)
		return x
	default:
		// Scalar, Image, Sampler, AccelerationStructure, Void carry no
		// nested references and no pointer fields worth copying.
		return t
	}
}

func cloneUint32Ptr(p *uint32) *uint32 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
