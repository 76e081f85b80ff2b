package asm

import (
	"fmt"
	"math"

	"github.com/gogpu/spirvreflect/spirv"
)

// Config controls how assembled output is framed.
type Config struct {
	Version spirv.Version
}

func DefaultConfig() Config {
	return Config{Version: spirv.Version1_3}
}

// Assemble parses SPIR-V assembly text (the format disasm.Disassemble
// emits) and encodes it back to the binary word stream.
func Assemble(text string, cfg Config) ([]byte, error) {
	tokens, err := NewLexer(text).Tokenize()
	if err != nil {
		return nil, fmt.Errorf("asm: tokenizing: %w", err)
	}
	stmts, err := NewParser(tokens).Parse()
	if err != nil {
		return nil, fmt.Errorf("asm: parsing: %w", err)
	}

	ids := newIDTable()
	instrs := make([]spirv.Instruction, 0, len(stmts))
	for _, stmt := range stmts {
		instr, err := buildInstruction(stmt, ids)
		if err != nil {
			return nil, fmt.Errorf("asm: line %d: %w", stmt.mnemLine, err)
		}
		instrs = append(instrs, instr)
	}

	header := spirv.Header{Version: cfg.Version, IDBound: ids.bound()}
	return spirv.Encode(header, instrs), nil
}

// idTable allocates a dense id space in first-use order: the first
// %name seen anywhere (as a definition or a forward reference) claims
// the next free numeric id.
type idTable struct {
	byName map[string]uint32
	next   uint32
}

func newIDTable() *idTable {
	return &idTable{byName: make(map[string]uint32), next: 1}
}

func (t *idTable) resolve(name string) uint32 {
	if id, ok := t.byName[name]; ok {
		return id
	}
	id := t.next
	t.next++
	t.byName[name] = id
	return id
}

func (t *idTable) bound() uint32 { return t.next }

func buildInstruction(stmt statement, ids *idTable) (spirv.Instruction, error) {
	op, ok := spirv.ParseOpCode(stmt.mnemonic)
	if !ok {
		return spirv.Instruction{}, newError(ErrUnknownOpcode, stmt.mnemLine, "unknown opcode %q", stmt.mnemonic)
	}

	var words []uint32
	i := 0

	if op.HasResultType() {
		if i >= len(stmt.operands) || stmt.operands[i].kind != operandID {
			return spirv.Instruction{}, newError(ErrMalformedOperands, stmt.mnemLine, "%s expects a result-type operand", stmt.mnemonic)
		}
		words = append(words, ids.resolve(stmt.operands[i].text))
		i++
	}

	if op.HasResult() {
		if stmt.resultName == "" {
			return spirv.Instruction{}, newError(ErrMalformedOperands, stmt.mnemLine, "%s requires a %%result = assignment", stmt.mnemonic)
		}
		words = append(words, ids.resolve(stmt.resultName))
	} else if stmt.resultName != "" {
		return spirv.Instruction{}, newError(ErrMalformedOperands, stmt.mnemLine, "%s has no result to assign %%%s to", stmt.mnemonic, stmt.resultName)
	}

	rest, err := encodeOperands(op, stmt.operands[i:], ids)
	if err != nil {
		return spirv.Instruction{}, err
	}
	words = append(words, rest...)

	return spirv.Instruction{Opcode: op, Operands: words}, nil
}

// encodeOperands walks the remaining parsed operands left to right,
// tracking the emitted word position so it can consult the same
// position-keyed shape tables (spirv.OperandEnumKind/IsStringOperand)
// the disassembler reads in reverse.
func encodeOperands(op spirv.OpCode, ops []parsedOperand, ids *idTable) ([]uint32, error) {
	var words []uint32
	wordPos := 0
	for _, operand := range ops {
		if kind, ok := spirv.OperandEnumKind(op, wordPos); ok {
			if operand.kind != operandIdent {
				return nil, newError(ErrMalformedOperands, operand.line, "expected an enum mnemonic, got %q", operand.text)
			}
			v, ok := spirv.EnumValue(kind, operand.text)
			if !ok {
				return nil, newError(ErrUnknownEnum, operand.line, "unrecognized mnemonic %q", operand.text)
			}
			words = append(words, v)
			wordPos++
			continue
		}
		if spirv.IsStringOperand(op, wordPos) {
			if operand.kind != operandString {
				return nil, newError(ErrMalformedOperands, operand.line, "expected a string literal, got %q", operand.text)
			}
			packed := spirv.PackString(operand.text)
			words = append(words, packed...)
			wordPos += len(packed)
			continue
		}
		w, err := encodeScalarOperand(ids, operand)
		if err != nil {
			return nil, err
		}
		words = append(words, w)
		wordPos++
	}
	return words, nil
}

// encodeScalarOperand encodes an id reference or a literal constant
// value. Float literals are encoded at 32-bit width; this toolkit's
// assembler does not infer a literal's declared type width from
// context, so 64-bit float constants must be supplied as
// OpSpecConstantOp/composite fixtures instead of a bare literal.
func encodeScalarOperand(ids *idTable, operand parsedOperand) (uint32, error) {
	switch operand.kind {
	case operandID:
		return ids.resolve(operand.text), nil
	case operandInt:
		return uint32(int32(operand.ival)), nil
	case operandFloat:
		return math.Float32bits(float32(operand.fval)), nil
	default:
		return 0, newError(ErrMalformedOperands, operand.line, "unexpected bare word %q in operand position", operand.text)
	}
}
