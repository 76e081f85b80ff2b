package reflect

import (
	"math"

	"github.com/gogpu/spirvreflect/spirv"
)

// Value is a single scalar runtime value, wide enough to hold any
// scalar SPIR-V constant without losing precision. Composite constants
// (vectors, arrays, structs) are represented separately, as a
// Constant whose Components field holds the constituent constant ids.
type Value struct {
	Kind  ScalarKind
	Width uint8
	Bits  uint64 // the value's bit pattern, reinterpreted per Kind/Width
}

// Bool returns the value as a boolean (Kind must be ScalarBool).
func (v Value) Bool() bool { return v.Bits != 0 }

// Int64 returns the value sign-extended to 64 bits (Kind must be
// ScalarSigned).
func (v Value) Int64() int64 {
	switch v.Width {
	case 8:
		return int64(int8(v.Bits))
	case 16:
		return int64(int16(v.Bits))
	case 32:
		return int64(int32(v.Bits))
	default:
		return int64(v.Bits)
	}
}

// Uint64 returns the value zero-extended to 64 bits (Kind must be
// ScalarUnsigned).
func (v Value) Uint64() uint64 {
	switch v.Width {
	case 8:
		return uint64(uint8(v.Bits))
	case 16:
		return uint64(uint16(v.Bits))
	case 32:
		return uint64(uint32(v.Bits))
	default:
		return v.Bits
	}
}

// Float64 returns the value as a float64 (Kind must be ScalarFloat).
// A 32-bit float is decoded and then widened; see DESIGN.md for why
// narrowing conversions (ConvertUToF/ConvertSToF to a 32-bit result)
// truncate precision at 32 bits before this widening rather than
// computing the whole conversion in 64-bit precision.
func (v Value) Float64() float64 {
	if v.Width == 32 {
		return float64(math.Float32frombits(uint32(v.Bits)))
	}
	return math.Float64frombits(v.Bits)
}

// Constant is one entry in the constant pool: either a scalar literal
// (OpConstant*), a composite built from other constant ids
// (OpConstantComposite), or a specialization constant that may be
// overridden before pipeline creation (OpSpecConstant*).
type Constant struct {
	Id         uint32
	Type       Type
	Scalar     *Value   // set for scalar constants
	Components []uint32 // set for composite constants, ids into the pool
	IsSpec     bool
	SpecId     *uint32 // set only when Annotations carried a SpecId decoration
	SpecOp     *SpecOp // set only for OpSpecConstantOp, evaluated lazily
}

// SpecOp captures an unevaluated OpSpecConstantOp expression: the
// wrapped opcode and its operand constant ids.
type SpecOp struct {
	Opcode   spirv.OpCode
	Operands []uint32
}

// ConstantPool holds every declared constant, keyed by id. Unlike
// TypeRegistry it never sees forward references: SPIR-V requires a
// constant's operands to already be declared.
type ConstantPool struct {
	byId  map[uint32]*Constant
	cache map[uint32]Value // memoized SpecOp evaluation results
}

// NewConstantPool returns an empty pool.
func NewConstantPool() *ConstantPool {
	return &ConstantPool{
		byId:  make(map[uint32]*Constant),
		cache: make(map[uint32]Value),
	}
}

// Bind records c, failing with IdCollision if its id is already bound.
func (p *ConstantPool) Bind(c *Constant) error {
	if _, ok := p.byId[c.Id]; ok {
		return newError(ErrIdCollision, c.Id, "already bound to a constant")
	}
	p.byId[c.Id] = c
	return nil
}

// Get looks up the constant bound to id.
func (p *ConstantPool) Get(id uint32) (*Constant, error) {
	c, ok := p.byId[id]
	if !ok {
		return nil, newError(ErrConstNotFound, id, "no constant declared for this id")
	}
	return c, nil
}

// Evaluate resolves c to a scalar Value, recursively evaluating any
// OpSpecConstantOp expression chain and caching the result per id so a
// diamond-shaped dependency graph is only evaluated once (a
// supplemented feature beyond the base specification; see DESIGN.md).
func (p *ConstantPool) Evaluate(id uint32) (Value, error) {
	if v, ok := p.cache[id]; ok {
		return v, nil
	}
	c, err := p.Get(id)
	if err != nil {
		return Value{}, err
	}
	if c.Scalar != nil {
		p.cache[id] = *c.Scalar
		return *c.Scalar, nil
	}
	if c.SpecOp == nil {
		return Value{}, newError(ErrEvaluationFailed, id, "constant has no scalar value and is not an expression")
	}

	operands := make([]Value, len(c.SpecOp.Operands))
	for i, opId := range c.SpecOp.Operands {
		v, err := p.Evaluate(opId)
		if err != nil {
			return Value{}, err
		}
		operands[i] = v
	}

	result, err := evalOp(c.SpecOp.Opcode, c.Type, operands)
	if err != nil {
		if rerr, ok := err.(*Error); ok {
			rerr.Id = id
		}
		return Value{}, err
	}
	p.cache[id] = result
	return result, nil
}

// evalOp executes one wrapped instruction from an OpSpecConstantOp,
// producing a scalar Value typed as resultType (§4.5). resultType sets
// the width integer results are masked to and the narrowing rule for
// the float-conversion ops (see DESIGN.md Open Question 1). The shifts
// take their sign handling from the opcode: ShiftRightArithmetic
// sign-extends the shifted operand at its own width and
// ShiftRightLogical zero-extends it, whatever resultType's signedness
// (see DESIGN.md Open Question 4).
func evalOp(op spirv.OpCode, resultType Type, operands []Value) (Value, error) {
	scalar, ok := resultType.(ScalarType)
	if !ok {
		return Value{}, newError(ErrUnsupportedType, 0, "OpSpecConstantOp result type must be scalar")
	}

	switch op {
	case spirv.OpSNegate:
		return intResult(scalar, -operands[0].Int64()), nil
	case spirv.OpNot:
		return intResult(scalar, ^operands[0].Int64()), nil
	case spirv.OpIAdd:
		return intResult(scalar, operands[0].Int64()+operands[1].Int64()), nil
	case spirv.OpISub:
		return intResult(scalar, operands[0].Int64()-operands[1].Int64()), nil
	case spirv.OpIMul:
		return intResult(scalar, operands[0].Int64()*operands[1].Int64()), nil
	case spirv.OpSDiv:
		if operands[1].Int64() == 0 {
			return Value{}, newError(ErrDivisionByZero, 0, "SDiv by zero in specialization constant expression")
		}
		return intResult(scalar, operands[0].Int64()/operands[1].Int64()), nil
	case spirv.OpUDiv:
		if operands[1].Uint64() == 0 {
			return Value{}, newError(ErrDivisionByZero, 0, "UDiv by zero in specialization constant expression")
		}
		return uintResult(scalar, operands[0].Uint64()/operands[1].Uint64()), nil
	case spirv.OpSRem:
		// Truncated remainder: sign follows the dividend.
		if operands[1].Int64() == 0 {
			return Value{}, newError(ErrDivisionByZero, 0, "SRem by zero in specialization constant expression")
		}
		return intResult(scalar, operands[0].Int64()%operands[1].Int64()), nil
	case spirv.OpSMod:
		// Euclidean-style remainder: sign follows the divisor.
		a, b := operands[0].Int64(), operands[1].Int64()
		if b == 0 {
			return Value{}, newError(ErrDivisionByZero, 0, "SMod by zero in specialization constant expression")
		}
		m := a % b
		if m != 0 && (m < 0) != (b < 0) {
			m += b
		}
		return intResult(scalar, m), nil
	case spirv.OpUMod:
		a, b := operands[0].Uint64(), operands[1].Uint64()
		if b == 0 {
			return Value{}, newError(ErrDivisionByZero, 0, "UMod by zero in specialization constant expression")
		}
		return uintResult(scalar, a%b), nil
	case spirv.OpBitwiseAnd:
		return intResult(scalar, operands[0].Int64()&operands[1].Int64()), nil
	case spirv.OpBitwiseOr:
		return intResult(scalar, operands[0].Int64()|operands[1].Int64()), nil
	case spirv.OpBitwiseXor:
		return intResult(scalar, operands[0].Int64()^operands[1].Int64()), nil
	case spirv.OpShiftLeftLogical:
		return intResult(scalar, operands[0].Int64()<<uint(operands[1].Uint64())), nil
	case spirv.OpShiftRightLogical:
		return uintResult(scalar, operands[0].Uint64()>>uint(operands[1].Uint64())), nil
	case spirv.OpShiftRightArithmetic:
		return intResult(scalar, operands[0].Int64()>>uint(operands[1].Uint64())), nil
	case spirv.OpLogicalAnd:
		return boolResult(operands[0].Bool() && operands[1].Bool()), nil
	case spirv.OpLogicalOr:
		return boolResult(operands[0].Bool() || operands[1].Bool()), nil
	case spirv.OpLogicalNot:
		return boolResult(!operands[0].Bool()), nil
	case spirv.OpLogicalEqual:
		return boolResult(operands[0].Bool() == operands[1].Bool()), nil
	case spirv.OpLogicalNotEqual:
		return boolResult(operands[0].Bool() != operands[1].Bool()), nil
	case spirv.OpIEqual:
		return boolResult(operands[0].Uint64() == operands[1].Uint64()), nil
	case spirv.OpINotEqual:
		return boolResult(operands[0].Uint64() != operands[1].Uint64()), nil
	case spirv.OpSLessThan:
		return boolResult(operands[0].Int64() < operands[1].Int64()), nil
	case spirv.OpSGreaterThan:
		return boolResult(operands[0].Int64() > operands[1].Int64()), nil
	case spirv.OpULessThan:
		return boolResult(operands[0].Uint64() < operands[1].Uint64()), nil
	case spirv.OpUGreaterThan:
		return boolResult(operands[0].Uint64() > operands[1].Uint64()), nil
	case spirv.OpSelect:
		if operands[0].Bool() {
			return operands[1], nil
		}
		return operands[2], nil
	case spirv.OpFAdd:
		return floatResult(scalar, operands[0].Float64()+operands[1].Float64()), nil
	case spirv.OpFSub:
		return floatResult(scalar, operands[0].Float64()-operands[1].Float64()), nil
	case spirv.OpFMul:
		return floatResult(scalar, operands[0].Float64()*operands[1].Float64()), nil
	case spirv.OpFDiv:
		return floatResult(scalar, operands[0].Float64()/operands[1].Float64()), nil
	case spirv.OpFRem:
		// Truncated remainder: sign follows the dividend.
		a, b := operands[0].Float64(), operands[1].Float64()
		return floatResult(scalar, math.Mod(a, b)), nil
	case spirv.OpFMod:
		// Euclidean-style remainder: sign follows the divisor.
		a, b := operands[0].Float64(), operands[1].Float64()
		m := math.Mod(a, b)
		if m != 0 && (m < 0) != (b < 0) {
			m += b
		}
		return floatResult(scalar, m), nil
	case spirv.OpFNegate:
		return floatResult(scalar, -operands[0].Float64()), nil
	case spirv.OpConvertUToF:
		return floatResult(scalar, float64(operands[0].Uint64())), nil
	case spirv.OpConvertSToF:
		return floatResult(scalar, float64(operands[0].Int64())), nil
	case spirv.OpConvertFToU:
		return uintResult(scalar, uint64(operands[0].Float64())), nil
	case spirv.OpConvertFToS:
		return intResult(scalar, int64(operands[0].Float64())), nil
	case spirv.OpUConvert:
		return uintResult(scalar, operands[0].Uint64()), nil
	case spirv.OpSConvert:
		return intResult(scalar, operands[0].Int64()), nil
	case spirv.OpFConvert:
		return floatResult(scalar, operands[0].Float64()), nil
	case spirv.OpBitcast:
		return Value{Kind: scalar.Kind, Width: scalar.Width, Bits: maskWidth(operands[0].Bits, scalar.Width)}, nil
	default:
		return Value{}, newError(ErrUnsupportedType, 0, "unsupported OpSpecConstantOp wrapped opcode %s", op.Name())
	}
}

func intResult(t ScalarType, v int64) Value {
	return Value{Kind: t.Kind, Width: t.Width, Bits: maskWidth(uint64(v), t.Width)}
}

func uintResult(t ScalarType, v uint64) Value {
	return Value{Kind: t.Kind, Width: t.Width, Bits: maskWidth(v, t.Width)}
}

// floatResult packs v into t's bit width, narrowing through float32 for
// a 32-bit result before storing its bits (see Value.Float64's doc
// comment for why the narrowing happens before any later widening).
func floatResult(t ScalarType, v float64) Value {
	if t.Width == 32 {
		return Value{Kind: t.Kind, Width: t.Width, Bits: uint64(math.Float32bits(float32(v)))}
	}
	return Value{Kind: t.Kind, Width: t.Width, Bits: math.Float64bits(v)}
}

func boolResult(b bool) Value {
	v := Value{Kind: ScalarBool, Width: 0}
	if b {
		v.Bits = 1
	}
	return v
}

func maskWidth(v uint64, width uint8) uint64 {
	if width == 0 || width >= 64 {
		return v
	}
	return v & ((1 << width) - 1)
}
