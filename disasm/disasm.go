package disasm

import (
	"fmt"
	"strings"

	"github.com/gogpu/spirvreflect/spirv"
)

// Config controls disassembly output. The zero value is the default
// configuration (what DefaultConfig returns).
type Config struct {
	NoHeader bool // omit the ; Version/; Generator/; Bound/; Schema comment block
	NoIndent bool // don't indent instruction lines under their function
	RawId    bool // print %<id> instead of synthesized shape names
}

// DefaultConfig returns full header, indentation, and friendly names.
func DefaultConfig() Config {
	return Config{}
}

// Disassemble renders data as SPIR-V assembly text.
func Disassemble(data []byte, cfg Config) (string, error) {
	header, instrs, err := spirv.Decode(data)
	if err != nil {
		return "", fmt.Errorf("disasm: decoding module: %w", err)
	}

	n := newNamer()
	resultIds := make(map[uint32]bool)
	debugNames := make(map[uint32]string)
	for _, instr := range instrs {
		switch instr.Opcode {
		case spirv.OpName:
			debugNames[instr.Operands[0]] = decodeString(instr.Operands[1:])
		}
	}
	for _, instr := range instrs {
		if !instr.Opcode.HasResult() {
			continue
		}
		id := resultIdOf(instr)
		resultIds[id] = true
		if cfg.RawId {
			n.Assign(id, "", "")
			continue
		}
		shape := shapeNameFor(n, instr)
		n.Assign(id, debugNames[id], shape)
	}

	var out strings.Builder
	if !cfg.NoHeader {
		fmt.Fprintf(&out, "; SPIR-V\n; Version: %d.%d\n; Generator: %d\n; Bound: %d\n; Schema: %d\n",
			header.Version.Major, header.Version.Minor, header.Generator, header.IDBound, header.Schema)
	}

	depth := 0
	for _, instr := range instrs {
		switch instr.Opcode {
		case spirv.OpFunctionEnd:
			depth = 0
		}

		indent := ""
		if !cfg.NoIndent && depth > 0 {
			indent = strings.Repeat("      ", depth)
		}
		out.WriteString(indent)
		out.WriteString(renderInstruction(n, resultIds, instr))
		out.WriteByte('\n')

		switch instr.Opcode {
		case spirv.OpFunction:
			depth = 1
		}
	}

	return out.String(), nil
}

func resultIdOf(instr spirv.Instruction) uint32 {
	if instr.Opcode.HasResultType() {
		return instr.Operands[1]
	}
	return instr.Operands[0]
}

func shapeNameFor(n *namer, instr spirv.Instruction) string {
	id := resultIdOf(instr)
	ops := instr.Operands
	switch instr.Opcode {
	case spirv.OpTypeVoid, spirv.OpTypeBool, spirv.OpTypeInt, spirv.OpTypeFloat,
		spirv.OpTypeVector, spirv.OpTypeMatrix, spirv.OpTypeArray, spirv.OpTypeRuntimeArray,
		spirv.OpTypePointer, spirv.OpTypeStruct, spirv.OpTypeImage, spirv.OpTypeSampledImage,
		spirv.OpTypeSampler, spirv.OpTypeFunction, spirv.OpTypeAccelerationStructureKHR:
		return typeShapeName(n, instr.Opcode, id, ops[1:])
	case spirv.OpConstantTrue, spirv.OpConstantFalse, spirv.OpConstant:
		return constShapeName(n, instr.Opcode, ops[0], ops[2:])
	default:
		return ""
	}
}

func decodeString(words []uint32) string {
	buf := make([]byte, 0, len(words)*4)
	for _, w := range words {
		bs := [4]byte{byte(w), byte(w >> 8), byte(w >> 16), byte(w >> 24)}
		for _, b := range bs {
			if b == 0 {
				return string(buf)
			}
			buf = append(buf, b)
		}
	}
	return string(buf)
}

// renderInstruction renders one line: "%result = OpFoo %resultType
// ...operands" with result-type/result-id omitted as the opcode
// dictates. Operand words in the source stream are ordered [resultType]
// [result] [rest...]; the result type is rendered right after the
// mnemonic to match conventional SPIR-V assembly layout.
func renderInstruction(n *namer, resultIds map[uint32]bool, instr spirv.Instruction) string {
	var b strings.Builder
	ops := instr.Operands
	pos := 0
	if instr.Opcode.HasResultType() {
		pos++
	}
	if instr.Opcode.HasResult() {
		fmt.Fprintf(&b, "%%%s = ", n.NameOf(resultIdOf(instr)))
		pos++
	}

	b.WriteString(instr.Opcode.Name())
	if instr.Opcode.HasResultType() {
		fmt.Fprintf(&b, " %%%s", n.NameOf(ops[0]))
	}
	for _, w := range renderOperands(instr.Opcode, ops[pos:], n, resultIds) {
		b.WriteByte(' ')
		b.WriteString(w)
	}
	return b.String()
}

// renderOperands renders each remaining operand word, preferring a
// %name reference for any word that is a known result id, a mnemonic
// for words recognized as enum members of an opcode this function
// knows the layout of, and the raw decimal value otherwise.
func renderOperands(op spirv.OpCode, ops []uint32, n *namer, resultIds map[uint32]bool) []string {
	out := make([]string, 0, len(ops))

	i := 0
	for i < len(ops) {
		if kind, ok := spirv.OperandEnumKind(op, i); ok {
			if name, ok := spirv.EnumName(kind, ops[i]); ok {
				out = append(out, name)
				i++
				continue
			}
		}
		if spirv.IsLiteralOperand(op, i) {
			out = append(out, fmt.Sprintf("%d", ops[i]))
			i++
			continue
		}
		if spirv.IsStringOperand(op, i) {
			s, consumed := readStringAt(ops[i:])
			out = append(out, fmt.Sprintf("%q", s))
			i += consumed
			continue
		}
		if resultIds[ops[i]] {
			out = append(out, "%"+n.NameOf(ops[i]))
		} else {
			out = append(out, fmt.Sprintf("%d", ops[i]))
		}
		i++
	}
	return out
}

func readStringAt(words []uint32) (string, int) {
	for i, w := range words {
		bs := [4]byte{byte(w), byte(w >> 8), byte(w >> 16), byte(w >> 24)}
		for _, b := range bs {
			if b == 0 {
				return decodeString(words[:i+1]), i + 1
			}
		}
	}
	return decodeString(words), len(words)
}

