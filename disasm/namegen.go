package disasm

import (
	"fmt"
	"strings"

	"github.com/gogpu/spirvreflect/spirv"
)

// namer assigns every result id a friendly, disambiguated name derived
// from its declared shape, the same "%void / %float / %v4float /
// %_ptr_Uniform_Block / %uint_0" naming grammar SPIR-V disassemblers
// use. An explicit OpName always wins; only unnamed ids fall back to
// shape-derived synthesis. Collisions are resolved with an ascending
// numeric suffix, the same used-name-set idiom as the teacher's HLSL
// identifier namer, adapted here from resolving a name clash between
// two chosen identifiers to resolving a clash between a synthesized
// shape name and anything already claimed.
type namer struct {
	used  map[string]bool
	names map[uint32]string
}

func newNamer() *namer {
	return &namer{
		used:  make(map[string]bool),
		names: make(map[uint32]string),
	}
}

// Assign gives id the name the instruction at opcode/operands implies,
// unless a debugName (from OpName) was already recorded, in which case
// that always wins.
func (n *namer) Assign(id uint32, debugName string, shape string) string {
	if existing, ok := n.names[id]; ok {
		return existing
	}
	base := debugName
	if base == "" {
		base = shape
	}
	if base == "" {
		base = fmt.Sprintf("%d", id)
	}
	base = sanitize(base)

	name := base
	suffix := 0
	for n.used[name] {
		suffix++
		name = fmt.Sprintf("%s_%d", base, suffix)
	}
	n.used[name] = true
	n.names[id] = name
	return name
}

// NameOf returns id's previously assigned name, or its bare numeric
// form if Assign was never called for it (ids with no declared shape,
// such as a label, fall back to this at render time).
func (n *namer) NameOf(id uint32) string {
	if name, ok := n.names[id]; ok {
		return name
	}
	return fmt.Sprintf("%d", id)
}

func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// typeShapeName derives the shape-based name for a type-declaring
// instruction. n must already have named every operand type this
// instruction references (module order guarantees this).
func typeShapeName(n *namer, opcode spirv.OpCode, resultId uint32, ops []uint32) string {
	switch opcode {
	case spirv.OpTypeVoid:
		return "void"
	case spirv.OpTypeBool:
		return "bool"
	case spirv.OpTypeInt:
		prefix := "int"
		if ops[1] == 0 {
			prefix = "uint"
		}
		if ops[0] == 32 {
			return prefix
		}
		return fmt.Sprintf("%s%d", prefix, ops[0])
	case spirv.OpTypeFloat:
		if ops[0] == 32 {
			return "float"
		}
		return fmt.Sprintf("float%d", ops[0])
	case spirv.OpTypeVector:
		return fmt.Sprintf("v%d%s", ops[1], n.NameOf(ops[0]))
	case spirv.OpTypeMatrix:
		return fmt.Sprintf("mat%d%s", ops[1], n.NameOf(ops[0]))
	case spirv.OpTypeArray:
		return fmt.Sprintf("_arr_%s_%s", n.NameOf(ops[0]), n.NameOf(ops[1]))
	case spirv.OpTypeRuntimeArray:
		return fmt.Sprintf("_runtimearr_%s", n.NameOf(ops[0]))
	case spirv.OpTypePointer:
		sc, _ := spirv.EnumName(spirv.EnumStorageClass, ops[0])
		return fmt.Sprintf("_ptr_%s_%s", sc, n.NameOf(ops[1]))
	case spirv.OpTypeStruct:
		return fmt.Sprintf("_struct_%d", resultId)
	case spirv.OpTypeImage:
		return fmt.Sprintf("_image_%d", resultId)
	case spirv.OpTypeSampledImage:
		return fmt.Sprintf("_sampled_image_%d", resultId)
	case spirv.OpTypeSampler:
		return "sampler"
	case spirv.OpTypeFunction:
		return fmt.Sprintf("_func_%d", resultId)
	case spirv.OpTypeAccelerationStructureKHR:
		return "accelerationStructure"
	default:
		return ""
	}
}

// constShapeName derives the shape-based name for a scalar constant
// instruction, e.g. "uint_0". The value part is the constant's first
// literal word printed as an unsigned decimal, so a float constant is
// named by its bit pattern ("float_1069547520" for 1.5) and a negative
// integer by its two's-complement word.
func constShapeName(n *namer, opcode spirv.OpCode, typeId uint32, literalWords []uint32) string {
	typeName := n.NameOf(typeId)
	switch opcode {
	case spirv.OpConstantTrue:
		return "true"
	case spirv.OpConstantFalse:
		return "false"
	case spirv.OpConstant:
		if len(literalWords) == 0 {
			return fmt.Sprintf("%s_0", typeName)
		}
		return fmt.Sprintf("%s_%d", typeName, literalWords[0])
	default:
		return ""
	}
}
