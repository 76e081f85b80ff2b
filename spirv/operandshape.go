package spirv

// OperandEnumKind reports the EnumKind of the operand at the given
// zero-based position within an instruction's *non-result* operand
// words (i.e. after any result-type/result id has already been
// consumed), for the opcodes whose rendering or assembly benefits from
// knowing it. Both disasm (enum value -> mnemonic) and asm (mnemonic ->
// enum value) share this table so the two stay in lockstep.
func OperandEnumKind(op OpCode, index int) (EnumKind, bool) {
	kinds := operandEnumKinds[op]
	if kinds == nil {
		return EnumNone, false
	}
	kind, ok := kinds[index]
	return kind, ok
}

var operandEnumKinds = map[OpCode]map[int]EnumKind{
	OpCapability:     {0: EnumCapability},
	OpMemoryModel:    {0: EnumAddressingModel, 1: EnumMemoryModel},
	OpEntryPoint:     {0: EnumExecutionModel},
	OpExecutionMode:  {1: EnumExecutionMode},
	OpTypePointer:    {0: EnumStorageClass},
	OpVariable:       {0: EnumStorageClass},
	OpDecorate:       {1: EnumDecoration},
	OpMemberDecorate: {2: EnumDecoration},
	OpTypeImage:      {1: EnumDim, 6: EnumImageFormat},
	OpFunction:       {0: EnumFunctionControl},
	OpLoopMerge:      {2: EnumLoopControl},
	OpSelectionMerge: {1: EnumSelectionControl},
	OpLoad:           {1: EnumMemoryAccess},
	OpStore:          {2: EnumMemoryAccess},
	OpCopyMemory:     {2: EnumMemoryAccess},
}

// IsLiteralOperand reports positions that are bare numbers rather than
// id references, for opcodes where that would otherwise be ambiguous
// with a small id value (e.g. a struct's member index, a type's bit
// width).
func IsLiteralOperand(op OpCode, index int) bool {
	switch op {
	case OpMemberName, OpMemberDecorate:
		return index == 1
	case OpConstant, OpSpecConstant:
		return true
	case OpTypeInt:
		return index == 0 || index == 1
	case OpTypeFloat:
		return index == 0
	case OpTypeVector, OpTypeMatrix:
		return index == 1
	}
	return false
}

// IsStringOperand reports whether the operand at index begins a
// NUL-terminated string literal (spanning possibly several words).
func IsStringOperand(op OpCode, index int) bool {
	switch op {
	case OpSource, OpSourceExtension, OpExtension, OpExtInstImport, OpString:
		return index == 0
	case OpName:
		return index == 1
	case OpMemberName:
		return index == 2
	case OpEntryPoint:
		return index == 2
	}
	return false
}
