package spirv

import "strconv"

// OpCode identifies a SPIR-V instruction.
type OpCode uint16

// Opcodes recognized by the reflection, disassembly and assembly
// packages. Values match the public SPIR-V specification; only the
// subset this toolkit interprets structurally is named (everything
// else still decodes, it just isn't given semantics).
const (
	OpNop               OpCode = 0
	OpUndef             OpCode = 1
	OpSourceContinued   OpCode = 2
	OpSource            OpCode = 3
	OpSourceExtension   OpCode = 4
	OpName              OpCode = 5
	OpMemberName        OpCode = 6
	OpString            OpCode = 7
	OpExtension         OpCode = 10
	OpExtInstImport     OpCode = 11
	OpExtInst           OpCode = 12
	OpMemoryModel       OpCode = 14
	OpEntryPoint        OpCode = 15
	OpExecutionMode     OpCode = 16
	OpCapability        OpCode = 17
	OpTypeVoid          OpCode = 19
	OpTypeBool          OpCode = 20
	OpTypeInt           OpCode = 21
	OpTypeFloat         OpCode = 22
	OpTypeVector        OpCode = 23
	OpTypeMatrix        OpCode = 24
	OpTypeImage         OpCode = 25
	OpTypeSampler       OpCode = 26
	OpTypeSampledImage  OpCode = 27
	OpTypeArray         OpCode = 28
	OpTypeRuntimeArray  OpCode = 29
	OpTypeStruct        OpCode = 30
	OpTypeOpaque        OpCode = 31
	OpTypePointer       OpCode = 32
	OpTypeFunction      OpCode = 33
	OpConstantTrue      OpCode = 41
	OpConstantFalse     OpCode = 42
	OpConstant          OpCode = 43
	OpConstantComposite OpCode = 44
	OpConstantSampler   OpCode = 45
	OpConstantNull      OpCode = 46
	OpSpecConstantTrue      OpCode = 48
	OpSpecConstantFalse     OpCode = 49
	OpSpecConstant          OpCode = 50
	OpSpecConstantComposite OpCode = 51
	OpSpecConstantOp        OpCode = 52
	OpFunction          OpCode = 54
	OpFunctionParameter OpCode = 55
	OpFunctionEnd       OpCode = 56
	OpFunctionCall      OpCode = 57
	OpVariable          OpCode = 59
	OpImageTexelPointer OpCode = 60
	OpLoad              OpCode = 61
	OpStore             OpCode = 62
	OpCopyMemory        OpCode = 63
	OpCopyMemorySized   OpCode = 64
	OpAccessChain         OpCode = 65
	OpInBoundsAccessChain OpCode = 66
	OpPtrAccessChain      OpCode = 67
	OpArrayLength         OpCode = 68
	OpDecorate          OpCode = 71
	OpMemberDecorate    OpCode = 72
	OpDecorationGroup   OpCode = 73
	OpGroupDecorate     OpCode = 74
	OpGroupMemberDecorate OpCode = 75
	OpVectorShuffle      OpCode = 79
	OpCompositeConstruct OpCode = 80
	OpCompositeExtract   OpCode = 81
	OpCompositeInsert    OpCode = 82
	OpCopyObject         OpCode = 83
	OpTranspose          OpCode = 84
	OpSampledImage       OpCode = 86
	OpImage              OpCode = 100

	// Conversion operations (spec-constant expression trees, §4.5).
	OpConvertFToU  OpCode = 109
	OpConvertFToS  OpCode = 110
	OpConvertSToF  OpCode = 111
	OpConvertUToF  OpCode = 112
	OpUConvert     OpCode = 113
	OpSConvert     OpCode = 114
	OpFConvert     OpCode = 115
	OpBitcast      OpCode = 124

	// Arithmetic / bitwise operations (spec-constant expression trees, §4.5).
	OpSNegate              OpCode = 126
	OpFNegate              OpCode = 127
	OpIAdd                 OpCode = 128
	OpFAdd                 OpCode = 129
	OpISub                 OpCode = 130
	OpFSub                 OpCode = 131
	OpIMul                 OpCode = 132
	OpFMul                 OpCode = 133
	OpUDiv                 OpCode = 134
	OpSDiv                 OpCode = 135
	OpFDiv                 OpCode = 136
	OpUMod                 OpCode = 137
	OpSRem                 OpCode = 138
	OpSMod                 OpCode = 139
	OpFRem                 OpCode = 140
	OpFMod                 OpCode = 141
	OpShiftRightLogical    OpCode = 194
	OpShiftRightArithmetic OpCode = 195
	OpShiftLeftLogical     OpCode = 196
	OpBitwiseOr            OpCode = 197
	OpBitwiseXor           OpCode = 198
	OpBitwiseAnd           OpCode = 199
	OpNot                  OpCode = 200

	OpLogicalEqual    OpCode = 164
	OpLogicalNotEqual OpCode = 165
	OpLogicalOr       OpCode = 166
	OpLogicalAnd      OpCode = 167
	OpLogicalNot      OpCode = 168
	OpSelect          OpCode = 169

	OpIEqual             OpCode = 170
	OpINotEqual          OpCode = 171
	OpUGreaterThan       OpCode = 172
	OpSGreaterThan       OpCode = 173
	OpUGreaterThanEqual  OpCode = 174
	OpSGreaterThanEqual  OpCode = 175
	OpULessThan          OpCode = 176
	OpSLessThan          OpCode = 177
	OpULessThanEqual     OpCode = 178
	OpSLessThanEqual     OpCode = 179

	OpControlBarrier OpCode = 224
	OpMemoryBarrier  OpCode = 225

	OpAtomicLoad       OpCode = 227
	OpAtomicStore      OpCode = 228
	OpAtomicExchange   OpCode = 229
	OpAtomicIIncrement OpCode = 232
	OpAtomicIDecrement OpCode = 233
	OpAtomicIAdd       OpCode = 234
	OpAtomicISub       OpCode = 235

	OpPhi               OpCode = 245
	OpLoopMerge         OpCode = 246
	OpSelectionMerge    OpCode = 247
	OpLabel             OpCode = 248
	OpBranch            OpCode = 249
	OpBranchConditional OpCode = 250
	OpSwitch            OpCode = 251
	OpKill              OpCode = 252
	OpReturn            OpCode = 253
	OpReturnValue       OpCode = 254
	OpUnreachable       OpCode = 255

	// SPV_KHR_variable_pointers / core 1.4+: forward-declares a pointer
	// whose pointee type is declared later, so a struct may contain a
	// pointer to itself.
	OpTypeForwardPointer OpCode = 39

	// Ray tracing (SPV_KHR_ray_tracing / SPV_KHR_ray_query): acceleration
	// structure handles used as descriptor resources.
	OpTypeAccelerationStructureKHR OpCode = 5341
)

// names maps every opcode this package gives semantics to, to its
// mnemonic. Used by the disassembler's default rendering and by error
// messages; the assembler resolves mnemonics through reverseNames,
// built from this map below.
var names = map[OpCode]string{
	OpNop: "OpNop", OpUndef: "OpUndef", OpSourceContinued: "OpSourceContinued",
	OpSource: "OpSource", OpSourceExtension: "OpSourceExtension",
	OpName: "OpName", OpMemberName: "OpMemberName", OpString: "OpString",
	OpExtension: "OpExtension", OpExtInstImport: "OpExtInstImport", OpExtInst: "OpExtInst",
	OpMemoryModel: "OpMemoryModel", OpEntryPoint: "OpEntryPoint",
	OpExecutionMode: "OpExecutionMode", OpCapability: "OpCapability",
	OpTypeVoid: "OpTypeVoid", OpTypeBool: "OpTypeBool", OpTypeInt: "OpTypeInt",
	OpTypeFloat: "OpTypeFloat", OpTypeVector: "OpTypeVector", OpTypeMatrix: "OpTypeMatrix",
	OpTypeImage: "OpTypeImage", OpTypeSampler: "OpTypeSampler",
	OpTypeSampledImage: "OpTypeSampledImage", OpTypeArray: "OpTypeArray",
	OpTypeRuntimeArray: "OpTypeRuntimeArray", OpTypeStruct: "OpTypeStruct",
	OpTypeOpaque: "OpTypeOpaque", OpTypePointer: "OpTypePointer",
	OpTypeFunction: "OpTypeFunction", OpTypeForwardPointer: "OpTypeForwardPointer",
	OpTypeAccelerationStructureKHR: "OpTypeAccelerationStructureKHR",
	OpConstantTrue: "OpConstantTrue", OpConstantFalse: "OpConstantFalse",
	OpConstant: "OpConstant", OpConstantComposite: "OpConstantComposite",
	OpConstantSampler: "OpConstantSampler", OpConstantNull: "OpConstantNull",
	OpSpecConstantTrue: "OpSpecConstantTrue", OpSpecConstantFalse: "OpSpecConstantFalse",
	OpSpecConstant: "OpSpecConstant", OpSpecConstantComposite: "OpSpecConstantComposite",
	OpSpecConstantOp: "OpSpecConstantOp",
	OpFunction: "OpFunction", OpFunctionParameter: "OpFunctionParameter",
	OpFunctionEnd: "OpFunctionEnd", OpFunctionCall: "OpFunctionCall",
	OpVariable: "OpVariable", OpImageTexelPointer: "OpImageTexelPointer",
	OpLoad: "OpLoad", OpStore: "OpStore",
	OpCopyMemory: "OpCopyMemory", OpCopyMemorySized: "OpCopyMemorySized",
	OpAccessChain: "OpAccessChain", OpInBoundsAccessChain: "OpInBoundsAccessChain",
	OpPtrAccessChain: "OpPtrAccessChain", OpArrayLength: "OpArrayLength",
	OpDecorate: "OpDecorate", OpMemberDecorate: "OpMemberDecorate",
	OpDecorationGroup: "OpDecorationGroup", OpGroupDecorate: "OpGroupDecorate",
	OpGroupMemberDecorate: "OpGroupMemberDecorate",
	OpVectorShuffle: "OpVectorShuffle", OpCompositeConstruct: "OpCompositeConstruct",
	OpCompositeExtract: "OpCompositeExtract", OpCompositeInsert: "OpCompositeInsert",
	OpCopyObject: "OpCopyObject", OpTranspose: "OpTranspose",
	OpSampledImage: "OpSampledImage", OpImage: "OpImage",
	OpConvertFToU: "OpConvertFToU", OpConvertFToS: "OpConvertFToS",
	OpConvertSToF: "OpConvertSToF", OpConvertUToF: "OpConvertUToF",
	OpUConvert: "OpUConvert", OpSConvert: "OpSConvert", OpFConvert: "OpFConvert",
	OpBitcast: "OpBitcast",
	OpSNegate: "OpSNegate", OpFNegate: "OpFNegate",
	OpIAdd: "OpIAdd", OpFAdd: "OpFAdd", OpISub: "OpISub", OpFSub: "OpFSub",
	OpIMul: "OpIMul", OpFMul: "OpFMul", OpUDiv: "OpUDiv", OpSDiv: "OpSDiv", OpFDiv: "OpFDiv",
	OpUMod: "OpUMod", OpSRem: "OpSRem", OpSMod: "OpSMod", OpFRem: "OpFRem", OpFMod: "OpFMod",
	OpShiftRightLogical: "OpShiftRightLogical", OpShiftRightArithmetic: "OpShiftRightArithmetic",
	OpShiftLeftLogical: "OpShiftLeftLogical",
	OpBitwiseOr: "OpBitwiseOr", OpBitwiseXor: "OpBitwiseXor", OpBitwiseAnd: "OpBitwiseAnd",
	OpNot: "OpNot",
	OpLogicalEqual: "OpLogicalEqual", OpLogicalNotEqual: "OpLogicalNotEqual",
	OpLogicalOr: "OpLogicalOr", OpLogicalAnd: "OpLogicalAnd", OpLogicalNot: "OpLogicalNot",
	OpSelect: "OpSelect",
	OpIEqual: "OpIEqual", OpINotEqual: "OpINotEqual",
	OpUGreaterThan: "OpUGreaterThan", OpSGreaterThan: "OpSGreaterThan",
	OpUGreaterThanEqual: "OpUGreaterThanEqual", OpSGreaterThanEqual: "OpSGreaterThanEqual",
	OpULessThan: "OpULessThan", OpSLessThan: "OpSLessThan",
	OpULessThanEqual: "OpULessThanEqual", OpSLessThanEqual: "OpSLessThanEqual",
	OpControlBarrier: "OpControlBarrier", OpMemoryBarrier: "OpMemoryBarrier",
	OpAtomicLoad: "OpAtomicLoad", OpAtomicStore: "OpAtomicStore",
	OpAtomicExchange: "OpAtomicExchange", OpAtomicIIncrement: "OpAtomicIIncrement",
	OpAtomicIDecrement: "OpAtomicIDecrement", OpAtomicIAdd: "OpAtomicIAdd", OpAtomicISub: "OpAtomicISub",
	OpPhi: "OpPhi", OpLoopMerge: "OpLoopMerge", OpSelectionMerge: "OpSelectionMerge",
	OpLabel: "OpLabel", OpBranch: "OpBranch", OpBranchConditional: "OpBranchConditional",
	OpSwitch: "OpSwitch", OpKill: "OpKill", OpReturn: "OpReturn",
	OpReturnValue: "OpReturnValue", OpUnreachable: "OpUnreachable",
}

// reverseNames is the mnemonic-to-opcode table the assembler resolves
// instruction names against. Built once from names.
var reverseNames map[string]OpCode

func init() {
	reverseNames = make(map[string]OpCode, len(names))
	for op, name := range names {
		reverseNames[name] = op
	}
}

// Name returns the mnemonic for op, or a synthetic "OpNNN" form if the
// opcode isn't one this toolkit names explicitly.
func (op OpCode) Name() string {
	if n, ok := names[op]; ok {
		return n
	}
	return "Op" + strconv.FormatUint(uint64(op), 10)
}

// String implements fmt.Stringer.
func (op OpCode) String() string {
	return op.Name()
}

// ParseOpCode resolves a mnemonic (e.g. "OpLoad") to its opcode.
func ParseOpCode(name string) (OpCode, bool) {
	op, ok := reverseNames[name]
	return op, ok
}

// HasResultType reports whether instructions of this opcode carry a
// result-type id as their first operand word, per the SPIR-V
// instruction-print class for that opcode.
func (op OpCode) HasResultType() bool {
	switch op {
	case OpUndef, OpExtInst, OpConstantTrue, OpConstantFalse, OpConstant,
		OpConstantComposite, OpConstantSampler, OpConstantNull,
		OpSpecConstantTrue, OpSpecConstantFalse, OpSpecConstant,
		OpSpecConstantComposite, OpSpecConstantOp,
		OpFunction, OpFunctionParameter, OpFunctionCall,
		OpImageTexelPointer, OpLoad, OpAccessChain, OpInBoundsAccessChain,
		OpPtrAccessChain, OpArrayLength, OpVectorShuffle, OpCompositeConstruct,
		OpCompositeExtract, OpCompositeInsert, OpCopyObject, OpTranspose,
		OpSampledImage, OpImage,
		OpConvertFToU, OpConvertFToS, OpConvertSToF, OpConvertUToF,
		OpUConvert, OpSConvert, OpFConvert, OpBitcast,
		OpSNegate, OpFNegate, OpIAdd, OpFAdd, OpISub, OpFSub, OpIMul, OpFMul,
		OpUDiv, OpSDiv, OpFDiv, OpUMod, OpSRem, OpSMod, OpFRem, OpFMod,
		OpShiftRightLogical, OpShiftRightArithmetic, OpShiftLeftLogical,
		OpBitwiseOr, OpBitwiseXor, OpBitwiseAnd, OpNot,
		OpLogicalEqual, OpLogicalNotEqual, OpLogicalOr, OpLogicalAnd, OpLogicalNot, OpSelect,
		OpIEqual, OpINotEqual, OpUGreaterThan, OpSGreaterThan, OpUGreaterThanEqual,
		OpSGreaterThanEqual, OpULessThan, OpSLessThan, OpULessThanEqual, OpSLessThanEqual,
		OpAtomicLoad, OpAtomicExchange, OpAtomicIIncrement, OpAtomicIDecrement,
		OpAtomicIAdd, OpAtomicISub, OpPhi, OpVariable:
		return true
	default:
		return false
	}
}

// HasResult reports whether instructions of this opcode assign a
// result id (always the word immediately following the result-type
// word, when one is present).
func (op OpCode) HasResult() bool {
	switch op {
	case OpName, OpMemberName, OpEntryPoint, OpExecutionMode, OpCapability,
		OpMemoryModel, OpSource, OpSourceExtension, OpExtension,
		OpDecorate, OpMemberDecorate, OpDecorationGroup, OpGroupDecorate,
		OpGroupMemberDecorate, OpFunctionEnd, OpStore, OpCopyMemory,
		OpCopyMemorySized, OpControlBarrier, OpMemoryBarrier, OpAtomicStore,
		OpLoopMerge, OpSelectionMerge, OpBranch, OpBranchConditional,
		OpSwitch, OpKill, OpReturn, OpReturnValue, OpUnreachable, OpNop:
		return false
	default:
		return true
	}
}
