package spirv

import (
	"sort"
	"strings"
)

// StorageClass identifies the memory region a pointer type targets.
type StorageClass uint32

// Storage classes recognized by the variable builder (§3, §4.7).
const (
	StorageClassUniformConstant    StorageClass = 0
	StorageClassInput              StorageClass = 1
	StorageClassUniform            StorageClass = 2
	StorageClassOutput             StorageClass = 3
	StorageClassWorkgroup          StorageClass = 4
	StorageClassCrossWorkgroup     StorageClass = 5
	StorageClassPrivate            StorageClass = 6
	StorageClassFunction           StorageClass = 7
	StorageClassGeneric            StorageClass = 8
	StorageClassPushConstant       StorageClass = 9
	StorageClassAtomicCounter      StorageClass = 10
	StorageClassImage              StorageClass = 11
	StorageClassStorageBuffer      StorageClass = 12
	StorageClassPhysicalStorageBuffer StorageClass = 5349
)

// Decoration identifies an out-of-line annotation on an id or struct
// member (§4.4).
type Decoration uint32

const (
	DecorationRelaxedPrecision   Decoration = 0
	DecorationSpecId             Decoration = 1
	DecorationBlock              Decoration = 2
	DecorationBufferBlock        Decoration = 3
	DecorationRowMajor           Decoration = 4
	DecorationColMajor           Decoration = 5
	DecorationArrayStride        Decoration = 6
	DecorationMatrixStride       Decoration = 7
	DecorationBuiltIn            Decoration = 11
	DecorationNoPerspective      Decoration = 13
	DecorationFlat               Decoration = 14
	DecorationPatch              Decoration = 15
	DecorationCentroid           Decoration = 16
	DecorationInvariant          Decoration = 18
	DecorationRestrict           Decoration = 19
	DecorationAliased            Decoration = 20
	DecorationVolatile           Decoration = 21
	DecorationConstant           Decoration = 22
	DecorationCoherent           Decoration = 23
	DecorationNonWritable        Decoration = 24
	DecorationNonReadable        Decoration = 25
	DecorationUniform            Decoration = 26
	DecorationLocation           Decoration = 30
	DecorationComponent          Decoration = 31
	DecorationIndex              Decoration = 32
	DecorationBinding            Decoration = 33
	DecorationDescriptorSet      Decoration = 34
	DecorationOffset             Decoration = 35
	DecorationXfbBuffer          Decoration = 36
	DecorationXfbStride          Decoration = 37
	DecorationInputAttachmentIndex Decoration = 43
	DecorationAlignment          Decoration = 44
)

func (d Decoration) String() string {
	if n, ok := EnumName(EnumDecoration, uint32(d)); ok {
		return n
	}
	return "Decoration(?)"
}

// BuiltIn identifies a built-in interface variable (§4.4).
type BuiltIn uint32

const (
	BuiltInPosition             BuiltIn = 0
	BuiltInPointSize            BuiltIn = 1
	BuiltInClipDistance         BuiltIn = 3
	BuiltInCullDistance         BuiltIn = 4
	BuiltInVertexId             BuiltIn = 5
	BuiltInInstanceId           BuiltIn = 6
	BuiltInPrimitiveId          BuiltIn = 7
	BuiltInInvocationId         BuiltIn = 8
	BuiltInLayer                BuiltIn = 9
	BuiltInViewportIndex        BuiltIn = 10
	BuiltInTessLevelOuter       BuiltIn = 11
	BuiltInTessLevelInner       BuiltIn = 12
	BuiltInTessCoord            BuiltIn = 13
	BuiltInPatchVertices        BuiltIn = 14
	BuiltInFragCoord            BuiltIn = 15
	BuiltInPointCoord           BuiltIn = 16
	BuiltInFrontFacing          BuiltIn = 17
	BuiltInSampleId             BuiltIn = 18
	BuiltInSamplePosition       BuiltIn = 19
	BuiltInSampleMask           BuiltIn = 20
	BuiltInFragDepth            BuiltIn = 22
	BuiltInHelperInvocation     BuiltIn = 23
	BuiltInNumWorkgroups        BuiltIn = 24
	BuiltInWorkgroupSize        BuiltIn = 25
	BuiltInWorkgroupId          BuiltIn = 26
	BuiltInLocalInvocationId    BuiltIn = 27
	BuiltInGlobalInvocationId   BuiltIn = 28
	BuiltInLocalInvocationIndex BuiltIn = 29
	BuiltInVertexIndex          BuiltIn = 42
	BuiltInInstanceIndex        BuiltIn = 43
)

// ExecutionModel identifies a shader stage (§3, §6).
type ExecutionModel uint32

const (
	ExecutionModelVertex                 ExecutionModel = 0
	ExecutionModelTessellationControl    ExecutionModel = 1
	ExecutionModelTessellationEvaluation ExecutionModel = 2
	ExecutionModelGeometry               ExecutionModel = 3
	ExecutionModelFragment               ExecutionModel = 4
	ExecutionModelGLCompute              ExecutionModel = 5
	ExecutionModelKernel                 ExecutionModel = 6
)

// ExecutionMode identifies an entry point's execution mode (§3).
type ExecutionMode uint32

const (
	ExecutionModeInvocations            ExecutionMode = 0
	ExecutionModeSpacingEqual           ExecutionMode = 1
	ExecutionModeSpacingFractionalEven  ExecutionMode = 2
	ExecutionModeSpacingFractionalOdd   ExecutionMode = 3
	ExecutionModeVertexOrderCw          ExecutionMode = 4
	ExecutionModeVertexOrderCcw         ExecutionMode = 5
	ExecutionModePixelCenterInteger     ExecutionMode = 6
	ExecutionModeOriginUpperLeft        ExecutionMode = 7
	ExecutionModeOriginLowerLeft        ExecutionMode = 8
	ExecutionModeEarlyFragmentTests     ExecutionMode = 9
	ExecutionModePointMode              ExecutionMode = 10
	ExecutionModeXfb                    ExecutionMode = 11
	ExecutionModeDepthReplacing         ExecutionMode = 12
	ExecutionModeDepthGreater           ExecutionMode = 14
	ExecutionModeDepthLess              ExecutionMode = 15
	ExecutionModeDepthUnchanged         ExecutionMode = 16
	ExecutionModeLocalSize              ExecutionMode = 17
	ExecutionModeLocalSizeHint          ExecutionMode = 18
	ExecutionModeInputPoints            ExecutionMode = 19
	ExecutionModeInputLines             ExecutionMode = 20
	ExecutionModeInputLinesAdjacency    ExecutionMode = 21
	ExecutionModeTriangles              ExecutionMode = 22
	ExecutionModeInputTrianglesAdjacency ExecutionMode = 23
	ExecutionModeQuads                  ExecutionMode = 24
	ExecutionModeIsolines               ExecutionMode = 25
	ExecutionModeOutputVertices         ExecutionMode = 26
	ExecutionModeOutputPoints           ExecutionMode = 27
	ExecutionModeOutputLineStrip        ExecutionMode = 28
	ExecutionModeOutputTriangleStrip    ExecutionMode = 29
)

// Dim identifies an image's dimensionality (§3).
type Dim uint32

const (
	Dim1D         Dim = 0
	Dim2D         Dim = 1
	Dim3D         Dim = 2
	DimCube       Dim = 3
	DimRect       Dim = 4
	DimBuffer     Dim = 5
	DimSubpassData Dim = 6
)

// ImageFormat identifies an image's declared texel format (§3).
type ImageFormat uint32

const (
	ImageFormatUnknown   ImageFormat = 0
	ImageFormatRgba32f   ImageFormat = 1
	ImageFormatRgba16f   ImageFormat = 2
	ImageFormatR32f      ImageFormat = 3
	ImageFormatRgba8     ImageFormat = 4
	ImageFormatRgba8Snorm ImageFormat = 5
	ImageFormatRg32f     ImageFormat = 6
	ImageFormatRg16f     ImageFormat = 7
	ImageFormatR11fG11fB10f ImageFormat = 8
	ImageFormatR16f      ImageFormat = 9
	ImageFormatRgba16   ImageFormat = 10
	ImageFormatRgb10A2  ImageFormat = 11
	ImageFormatRg16     ImageFormat = 12
	ImageFormatRg8      ImageFormat = 13
	ImageFormatR16      ImageFormat = 14
	ImageFormatR8       ImageFormat = 15
	ImageFormatRgba32i  ImageFormat = 21
	ImageFormatRgba16i  ImageFormat = 22
	ImageFormatRgba8i   ImageFormat = 23
	ImageFormatR32i     ImageFormat = 24
	ImageFormatRgba32ui ImageFormat = 30
	ImageFormatRgba16ui ImageFormat = 31
	ImageFormatRgba8ui  ImageFormat = 32
	ImageFormatR32ui    ImageFormat = 33
)

// AccessQualifier is the OpenCL-style access qualifier trailing
// operand on OpTypeImage (present only when Sampled is 0 or 2).
type AccessQualifier uint32

const (
	AccessQualifierReadOnly  AccessQualifier = 0
	AccessQualifierWriteOnly AccessQualifier = 1
	AccessQualifierReadWrite AccessQualifier = 2
)

// Capability names a SPIR-V capability declared by OpCapability.
type Capability uint32

const (
	CapabilityMatrix               Capability = 0
	CapabilityShader               Capability = 1
	CapabilityGeometry             Capability = 2
	CapabilityTessellation         Capability = 3
	CapabilityFloat16              Capability = 9
	CapabilityFloat64              Capability = 10
	CapabilityInt64                Capability = 11
	CapabilityInt16                Capability = 22
	CapabilityImageGatherExtended  Capability = 25
	CapabilityStorageImageMultisample Capability = 26
	CapabilitySampled1D            Capability = 43
	CapabilityImage1D              Capability = 44
	CapabilitySampledBuffer        Capability = 46
	CapabilityImageBuffer          Capability = 47
	CapabilityImageQuery           Capability = 50
	CapabilityInt8                 Capability = 39
	CapabilityInputAttachment      Capability = 40
	CapabilitySampledCubeArray     Capability = 34
	CapabilityStorageImageExtendedFormats Capability = 49
	CapabilityStorageImageWriteWithoutFormat Capability = 56
	CapabilityStorageImageReadWithoutFormat  Capability = 55
)

// AddressingModel is the module-wide addressing model (OpMemoryModel).
type AddressingModel uint32

const (
	AddressingModelLogical                  AddressingModel = 0
	AddressingModelPhysical32                AddressingModel = 1
	AddressingModelPhysical64                AddressingModel = 2
	AddressingModelPhysicalStorageBuffer64   AddressingModel = 5348
)

// MemoryModel is the module-wide memory model (OpMemoryModel).
type MemoryModel uint32

const (
	MemoryModelSimple  MemoryModel = 0
	MemoryModelGLSL450 MemoryModel = 1
	MemoryModelOpenCL  MemoryModel = 2
	MemoryModelVulkan  MemoryModel = 3
)

// enumTable pairs every value of one enum kind with its mnemonic, and
// builds the bidirectional lookup the assembler and disassembler share.
// A mask table additionally renders/parses a value as the `|`-joined
// mnemonics of its set bits, for bitmask operands like FunctionControl.
type enumTable struct {
	toName  map[uint32]string
	toValue map[string]uint32
	isMask  bool
	bits    []uint32 // non-zero keys of toName, ascending, precomputed for maskName
}

func newEnumTable(entries map[uint32]string) *enumTable {
	t := &enumTable{
		toName:  entries,
		toValue: make(map[string]uint32, len(entries)),
	}
	for v, n := range entries {
		t.toValue[n] = v
	}
	return t
}

func newMaskTable(entries map[uint32]string) *enumTable {
	t := newEnumTable(entries)
	t.isMask = true
	for v := range entries {
		if v != 0 {
			t.bits = append(t.bits, v)
		}
	}
	sort.Slice(t.bits, func(i, j int) bool { return t.bits[i] < t.bits[j] })
	return t
}

func (t *enumTable) name(v uint32) (string, bool) {
	n, ok := t.toName[v]
	return n, ok
}

func (t *enumTable) value(n string) (uint32, bool) {
	v, ok := t.toValue[n]
	return v, ok
}

// maskName renders v as its `|`-joined set-bit mnemonics (§4.9). A
// value of 0 renders as whatever mnemonic the table assigns to 0
// (conventionally "None"); any bit not present in the table makes the
// whole value unrenderable, so the caller falls back to the raw number.
func (t *enumTable) maskName(v uint32) (string, bool) {
	if v == 0 {
		return t.name(0)
	}
	var parts []string
	remaining := v
	for _, bit := range t.bits {
		if remaining&bit == bit {
			parts = append(parts, t.toName[bit])
			remaining &^= bit
		}
	}
	if remaining != 0 || len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, "|"), true
}

// maskValue parses a `|`-joined mnemonic string (or a single mnemonic)
// back into its combined bitmask value.
func (t *enumTable) maskValue(name string) (uint32, bool) {
	if v, ok := t.toValue[name]; ok {
		return v, true
	}
	var v uint32
	for _, part := range strings.Split(name, "|") {
		bit, ok := t.toValue[part]
		if !ok {
			return 0, false
		}
		v |= bit
	}
	return v, true
}

// EnumKind identifies which enum a bare uint32 operand should be
// looked up against; used by both the assembler (mnemonic -> value)
// and the disassembler (value -> mnemonic).
type EnumKind uint8

const (
	EnumNone EnumKind = iota
	EnumStorageClass
	EnumDecoration
	EnumBuiltIn
	EnumExecutionModel
	EnumExecutionMode
	EnumDim
	EnumImageFormat
	EnumAccessQualifier
	EnumCapability
	EnumAddressingModel
	EnumMemoryModel
	EnumFunctionControl
	EnumLoopControl
	EnumSelectionControl
	EnumImageOperands
	EnumMemoryAccess
)

var enumTables = map[EnumKind]*enumTable{
	EnumStorageClass: newEnumTable(map[uint32]string{
		uint32(StorageClassUniformConstant): "UniformConstant",
		uint32(StorageClassInput):           "Input",
		uint32(StorageClassUniform):         "Uniform",
		uint32(StorageClassOutput):          "Output",
		uint32(StorageClassWorkgroup):       "Workgroup",
		uint32(StorageClassCrossWorkgroup):  "CrossWorkgroup",
		uint32(StorageClassPrivate):         "Private",
		uint32(StorageClassFunction):        "Function",
		uint32(StorageClassGeneric):         "Generic",
		uint32(StorageClassPushConstant):    "PushConstant",
		uint32(StorageClassAtomicCounter):   "AtomicCounter",
		uint32(StorageClassImage):           "Image",
		uint32(StorageClassStorageBuffer):   "StorageBuffer",
		uint32(StorageClassPhysicalStorageBuffer): "PhysicalStorageBuffer",
	}),
	EnumDecoration: newEnumTable(map[uint32]string{
		uint32(DecorationRelaxedPrecision):     "RelaxedPrecision",
		uint32(DecorationSpecId):               "SpecId",
		uint32(DecorationBlock):                "Block",
		uint32(DecorationBufferBlock):          "BufferBlock",
		uint32(DecorationRowMajor):             "RowMajor",
		uint32(DecorationColMajor):             "ColMajor",
		uint32(DecorationArrayStride):          "ArrayStride",
		uint32(DecorationMatrixStride):         "MatrixStride",
		uint32(DecorationBuiltIn):              "BuiltIn",
		uint32(DecorationNoPerspective):        "NoPerspective",
		uint32(DecorationFlat):                 "Flat",
		uint32(DecorationPatch):                "Patch",
		uint32(DecorationCentroid):             "Centroid",
		uint32(DecorationInvariant):            "Invariant",
		uint32(DecorationRestrict):             "Restrict",
		uint32(DecorationAliased):              "Aliased",
		uint32(DecorationVolatile):             "Volatile",
		uint32(DecorationConstant):             "Constant",
		uint32(DecorationCoherent):             "Coherent",
		uint32(DecorationNonWritable):          "NonWritable",
		uint32(DecorationNonReadable):          "NonReadable",
		uint32(DecorationUniform):              "Uniform",
		uint32(DecorationLocation):             "Location",
		uint32(DecorationComponent):            "Component",
		uint32(DecorationIndex):                "Index",
		uint32(DecorationBinding):              "Binding",
		uint32(DecorationDescriptorSet):        "DescriptorSet",
		uint32(DecorationOffset):               "Offset",
		uint32(DecorationXfbBuffer):            "XfbBuffer",
		uint32(DecorationXfbStride):            "XfbStride",
		uint32(DecorationInputAttachmentIndex): "InputAttachmentIndex",
		uint32(DecorationAlignment):            "Alignment",
	}),
	EnumBuiltIn: newEnumTable(map[uint32]string{
		uint32(BuiltInPosition):             "Position",
		uint32(BuiltInPointSize):            "PointSize",
		uint32(BuiltInClipDistance):         "ClipDistance",
		uint32(BuiltInCullDistance):         "CullDistance",
		uint32(BuiltInVertexId):             "VertexId",
		uint32(BuiltInInstanceId):           "InstanceId",
		uint32(BuiltInPrimitiveId):          "PrimitiveId",
		uint32(BuiltInInvocationId):         "InvocationId",
		uint32(BuiltInLayer):                "Layer",
		uint32(BuiltInViewportIndex):        "ViewportIndex",
		uint32(BuiltInTessLevelOuter):       "TessLevelOuter",
		uint32(BuiltInTessLevelInner):       "TessLevelInner",
		uint32(BuiltInTessCoord):            "TessCoord",
		uint32(BuiltInPatchVertices):        "PatchVertices",
		uint32(BuiltInFragCoord):            "FragCoord",
		uint32(BuiltInPointCoord):           "PointCoord",
		uint32(BuiltInFrontFacing):          "FrontFacing",
		uint32(BuiltInSampleId):             "SampleId",
		uint32(BuiltInSamplePosition):       "SamplePosition",
		uint32(BuiltInSampleMask):           "SampleMask",
		uint32(BuiltInFragDepth):            "FragDepth",
		uint32(BuiltInHelperInvocation):     "HelperInvocation",
		uint32(BuiltInNumWorkgroups):        "NumWorkgroups",
		uint32(BuiltInWorkgroupSize):        "WorkgroupSize",
		uint32(BuiltInWorkgroupId):          "WorkgroupId",
		uint32(BuiltInLocalInvocationId):    "LocalInvocationId",
		uint32(BuiltInGlobalInvocationId):   "GlobalInvocationId",
		uint32(BuiltInLocalInvocationIndex): "LocalInvocationIndex",
		uint32(BuiltInVertexIndex):          "VertexIndex",
		uint32(BuiltInInstanceIndex):        "InstanceIndex",
	}),
	EnumExecutionModel: newEnumTable(map[uint32]string{
		uint32(ExecutionModelVertex):                 "Vertex",
		uint32(ExecutionModelTessellationControl):    "TessellationControl",
		uint32(ExecutionModelTessellationEvaluation): "TessellationEvaluation",
		uint32(ExecutionModelGeometry):                "Geometry",
		uint32(ExecutionModelFragment):                "Fragment",
		uint32(ExecutionModelGLCompute):                "GLCompute",
		uint32(ExecutionModelKernel):                   "Kernel",
	}),
	EnumExecutionMode: newEnumTable(map[uint32]string{
		uint32(ExecutionModeInvocations):             "Invocations",
		uint32(ExecutionModeSpacingEqual):            "SpacingEqual",
		uint32(ExecutionModeSpacingFractionalEven):   "SpacingFractionalEven",
		uint32(ExecutionModeSpacingFractionalOdd):    "SpacingFractionalOdd",
		uint32(ExecutionModeVertexOrderCw):           "VertexOrderCw",
		uint32(ExecutionModeVertexOrderCcw):          "VertexOrderCcw",
		uint32(ExecutionModePixelCenterInteger):      "PixelCenterInteger",
		uint32(ExecutionModeOriginUpperLeft):         "OriginUpperLeft",
		uint32(ExecutionModeOriginLowerLeft):         "OriginLowerLeft",
		uint32(ExecutionModeEarlyFragmentTests):      "EarlyFragmentTests",
		uint32(ExecutionModePointMode):                "PointMode",
		uint32(ExecutionModeXfb):                      "Xfb",
		uint32(ExecutionModeDepthReplacing):           "DepthReplacing",
		uint32(ExecutionModeDepthGreater):             "DepthGreater",
		uint32(ExecutionModeDepthLess):                "DepthLess",
		uint32(ExecutionModeDepthUnchanged):           "DepthUnchanged",
		uint32(ExecutionModeLocalSize):                "LocalSize",
		uint32(ExecutionModeLocalSizeHint):            "LocalSizeHint",
		uint32(ExecutionModeInputPoints):              "InputPoints",
		uint32(ExecutionModeInputLines):               "InputLines",
		uint32(ExecutionModeInputLinesAdjacency):      "InputLinesAdjacency",
		uint32(ExecutionModeTriangles):                "Triangles",
		uint32(ExecutionModeInputTrianglesAdjacency):  "InputTrianglesAdjacency",
		uint32(ExecutionModeQuads):                    "Quads",
		uint32(ExecutionModeIsolines):                 "Isolines",
		uint32(ExecutionModeOutputVertices):           "OutputVertices",
		uint32(ExecutionModeOutputPoints):              "OutputPoints",
		uint32(ExecutionModeOutputLineStrip):           "OutputLineStrip",
		uint32(ExecutionModeOutputTriangleStrip):       "OutputTriangleStrip",
	}),
	EnumDim: newEnumTable(map[uint32]string{
		uint32(Dim1D): "1D", uint32(Dim2D): "2D", uint32(Dim3D): "3D",
		uint32(DimCube): "Cube", uint32(DimRect): "Rect", uint32(DimBuffer): "Buffer",
		uint32(DimSubpassData): "SubpassData",
	}),
	EnumImageFormat: newEnumTable(map[uint32]string{
		uint32(ImageFormatUnknown): "Unknown", uint32(ImageFormatRgba32f): "Rgba32f",
		uint32(ImageFormatRgba16f): "Rgba16f", uint32(ImageFormatR32f): "R32f",
		uint32(ImageFormatRgba8): "Rgba8", uint32(ImageFormatRgba8Snorm): "Rgba8Snorm",
		uint32(ImageFormatRg32f): "Rg32f", uint32(ImageFormatRg16f): "Rg16f",
		uint32(ImageFormatR11fG11fB10f): "R11fG11fB10f", uint32(ImageFormatR16f): "R16f",
		uint32(ImageFormatRgba16): "Rgba16", uint32(ImageFormatRgb10A2): "Rgb10A2",
		uint32(ImageFormatRg16): "Rg16", uint32(ImageFormatRg8): "Rg8",
		uint32(ImageFormatR16): "R16", uint32(ImageFormatR8): "R8",
		uint32(ImageFormatRgba32i): "Rgba32i", uint32(ImageFormatRgba16i): "Rgba16i",
		uint32(ImageFormatRgba8i): "Rgba8i", uint32(ImageFormatR32i): "R32i",
		uint32(ImageFormatRgba32ui): "Rgba32ui", uint32(ImageFormatRgba16ui): "Rgba16ui",
		uint32(ImageFormatRgba8ui): "Rgba8ui", uint32(ImageFormatR32ui): "R32ui",
	}),
	EnumAccessQualifier: newEnumTable(map[uint32]string{
		uint32(AccessQualifierReadOnly): "ReadOnly", uint32(AccessQualifierWriteOnly): "WriteOnly",
		uint32(AccessQualifierReadWrite): "ReadWrite",
	}),
	EnumCapability: newEnumTable(map[uint32]string{
		uint32(CapabilityMatrix): "Matrix", uint32(CapabilityShader): "Shader",
		uint32(CapabilityGeometry): "Geometry", uint32(CapabilityTessellation): "Tessellation",
		uint32(CapabilityFloat16): "Float16", uint32(CapabilityFloat64): "Float64",
		uint32(CapabilityInt64): "Int64", uint32(CapabilityInt16): "Int16",
		uint32(CapabilityInt8): "Int8",
		uint32(CapabilityImageGatherExtended): "ImageGatherExtended",
		uint32(CapabilityStorageImageMultisample): "StorageImageMultisample",
		uint32(CapabilitySampled1D): "Sampled1D", uint32(CapabilityImage1D): "Image1D",
		uint32(CapabilitySampledBuffer): "SampledBuffer", uint32(CapabilityImageBuffer): "ImageBuffer",
		uint32(CapabilityImageQuery): "ImageQuery",
		uint32(CapabilityInputAttachment): "InputAttachment",
		uint32(CapabilitySampledCubeArray): "SampledCubeArray",
		uint32(CapabilityStorageImageExtendedFormats): "StorageImageExtendedFormats",
		uint32(CapabilityStorageImageWriteWithoutFormat): "StorageImageWriteWithoutFormat",
		uint32(CapabilityStorageImageReadWithoutFormat): "StorageImageReadWithoutFormat",
	}),
	EnumAddressingModel: newEnumTable(map[uint32]string{
		uint32(AddressingModelLogical): "Logical", uint32(AddressingModelPhysical32): "Physical32",
		uint32(AddressingModelPhysical64): "Physical64",
		uint32(AddressingModelPhysicalStorageBuffer64): "PhysicalStorageBuffer64",
	}),
	EnumMemoryModel: newEnumTable(map[uint32]string{
		uint32(MemoryModelSimple): "Simple", uint32(MemoryModelGLSL450): "GLSL450",
		uint32(MemoryModelOpenCL): "OpenCL", uint32(MemoryModelVulkan): "Vulkan",
	}),
	EnumFunctionControl: newMaskTable(map[uint32]string{
		0: "None",
		1: "Inline",
		2: "DontInline",
		4: "Pure",
		8: "Const",
	}),
	EnumLoopControl: newMaskTable(map[uint32]string{
		0:   "None",
		1:   "Unroll",
		2:   "DontUnroll",
		4:   "DependencyInfinite",
		8:   "DependencyLength",
		16:  "MinIterations",
		32:  "MaxIterations",
		64:  "IterationMultiple",
		128: "PeelCount",
		256: "PartialCount",
	}),
	EnumSelectionControl: newMaskTable(map[uint32]string{
		0: "None",
		1: "Flatten",
		2: "DontFlatten",
	}),
	EnumImageOperands: newMaskTable(map[uint32]string{
		0:   "None",
		1:   "Bias",
		2:   "Lod",
		4:   "Grad",
		8:   "ConstOffset",
		16:  "Offset",
		32:  "ConstOffsets",
		64:  "Sample",
		128: "MinLod",
	}),
	EnumMemoryAccess: newMaskTable(map[uint32]string{
		0: "None",
		1: "Volatile",
		2: "Aligned",
		4: "Nontemporal",
	}),
}

// EnumName renders a bare enum value as its mnemonic. ok is false for
// an unrecognized value (the caller, typically the disassembler,
// falls back to printing the raw number). For a mask kind (see
// IsMaskKind) this renders the `|`-joined mnemonics of value's set
// bits rather than a single name.
func EnumName(kind EnumKind, value uint32) (string, bool) {
	t, ok := enumTables[kind]
	if !ok {
		return "", false
	}
	if t.isMask {
		return t.maskName(value)
	}
	return t.name(value)
}

// EnumValue resolves a mnemonic back to its enum value; used by the
// assembler. For a mask kind this also accepts a `|`-joined mnemonic
// string and returns the combined bitmask value.
func EnumValue(kind EnumKind, name string) (uint32, bool) {
	t, ok := enumTables[kind]
	if !ok {
		return 0, false
	}
	if t.isMask {
		return t.maskValue(name)
	}
	return t.value(name)
}

// IsMaskKind reports whether kind renders as `|`-joined bits rather
// than a single mnemonic.
func IsMaskKind(kind EnumKind) bool {
	t, ok := enumTables[kind]
	return ok && t.isMask
}
