package disasm

import (
	"strings"
	"testing"

	"github.com/gogpu/spirvreflect/spirv"
)

// buildModule assembles a tiny module: void/float types, a Location-0
// float input/output pair, an unnamed uniform struct with one named
// member, and a Fragment entry point whose body loads and stores.
func buildModule() []byte {
	const (
		tVoid      = 1
		tFloat     = 2
		tStruct    = 5
		tPtrUnif   = 6
		varUnif    = 7
		tPtrInput  = 8
		varInput   = 9
		tPtrOutput = 10
		varOutput  = 11
		tFn        = 12
		fnMain     = 13
		lblMain    = 14
		loadedVal  = 15
	)

	entryOps := append([]uint32{uint32(spirv.ExecutionModelFragment), fnMain}, spirv.PackString("main")...)
	entryOps = append(entryOps, varInput, varOutput)

	instrs := []spirv.Instruction{
		{Opcode: spirv.OpCapability, Operands: []uint32{uint32(spirv.CapabilityShader)}},
		{Opcode: spirv.OpMemoryModel, Operands: []uint32{uint32(spirv.AddressingModelLogical), uint32(spirv.MemoryModelGLSL450)}},
		{Opcode: spirv.OpEntryPoint, Operands: entryOps},
		{Opcode: spirv.OpExecutionMode, Operands: []uint32{fnMain, uint32(spirv.ExecutionModeOriginUpperLeft)}},

		{Opcode: spirv.OpMemberName, Operands: append([]uint32{tStruct, 0}, spirv.PackString("scale")...)},
		{Opcode: spirv.OpDecorate, Operands: []uint32{tStruct, uint32(spirv.DecorationBlock)}},
		{Opcode: spirv.OpMemberDecorate, Operands: []uint32{tStruct, 0, uint32(spirv.DecorationOffset), 0}},
		{Opcode: spirv.OpDecorate, Operands: []uint32{varUnif, uint32(spirv.DecorationDescriptorSet), 0}},
		{Opcode: spirv.OpDecorate, Operands: []uint32{varUnif, uint32(spirv.DecorationBinding), 0}},
		{Opcode: spirv.OpDecorate, Operands: []uint32{varInput, uint32(spirv.DecorationLocation), 0}},
		{Opcode: spirv.OpDecorate, Operands: []uint32{varOutput, uint32(spirv.DecorationLocation), 0}},

		{Opcode: spirv.OpTypeVoid, Operands: []uint32{tVoid}},
		{Opcode: spirv.OpTypeFloat, Operands: []uint32{tFloat, 32}},
		{Opcode: spirv.OpTypeStruct, Operands: []uint32{tStruct, tFloat}},
		{Opcode: spirv.OpTypePointer, Operands: []uint32{tPtrUnif, uint32(spirv.StorageClassUniform), tStruct}},
		{Opcode: spirv.OpTypePointer, Operands: []uint32{tPtrInput, uint32(spirv.StorageClassInput), tFloat}},
		{Opcode: spirv.OpTypePointer, Operands: []uint32{tPtrOutput, uint32(spirv.StorageClassOutput), tFloat}},
		{Opcode: spirv.OpTypeFunction, Operands: []uint32{tFn, tVoid}},

		{Opcode: spirv.OpVariable, Operands: []uint32{tPtrUnif, varUnif, uint32(spirv.StorageClassUniform)}},
		{Opcode: spirv.OpVariable, Operands: []uint32{tPtrInput, varInput, uint32(spirv.StorageClassInput)}},
		{Opcode: spirv.OpVariable, Operands: []uint32{tPtrOutput, varOutput, uint32(spirv.StorageClassOutput)}},

		{Opcode: spirv.OpFunction, Operands: []uint32{tVoid, fnMain, 0, tFn}},
		{Opcode: spirv.OpLabel, Operands: []uint32{lblMain}},
		{Opcode: spirv.OpLoad, Operands: []uint32{tFloat, loadedVal, varInput}},
		{Opcode: spirv.OpStore, Operands: []uint32{varOutput, loadedVal}},
		{Opcode: spirv.OpReturn, Operands: nil},
		{Opcode: spirv.OpFunctionEnd, Operands: nil},
	}

	header := spirv.Header{Version: spirv.Version1_3, IDBound: 16}
	return spirv.Encode(header, instrs)
}

func TestDisassembleProducesShapeNames(t *testing.T) {
	text, err := Disassemble(buildModule(), DefaultConfig())
	if err != nil {
		t.Fatalf("Disassemble: %v", err)
	}
	for _, want := range []string{"%void", "%float", "OpTypeFloat", "OpEntryPoint Fragment", "OpFunctionEnd"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, text)
		}
	}
}

func TestDisassembleHeaderToggle(t *testing.T) {
	withHeader, err := Disassemble(buildModule(), DefaultConfig())
	if err != nil {
		t.Fatalf("Disassemble: %v", err)
	}
	if !strings.HasPrefix(withHeader, "; SPIR-V") {
		t.Errorf("expected header comment block, got:\n%s", withHeader)
	}

	cfg := DefaultConfig()
	cfg.NoHeader = true
	withoutHeader, err := Disassemble(buildModule(), cfg)
	if err != nil {
		t.Fatalf("Disassemble: %v", err)
	}
	if strings.HasPrefix(withoutHeader, ";") {
		t.Errorf("expected no header comment with NoHeader, got:\n%s", withoutHeader)
	}
}

func TestDisassembleRawIdFallsBackToNumericNames(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RawId = true
	text, err := Disassemble(buildModule(), cfg)
	if err != nil {
		t.Fatalf("Disassemble: %v", err)
	}
	if strings.Contains(text, "%void") || strings.Contains(text, "%float") {
		t.Errorf("RawId should suppress shape names, got:\n%s", text)
	}
	if !strings.Contains(text, "%1") {
		t.Errorf("expected raw numeric id %%1, got:\n%s", text)
	}
}

func TestDisassembleStructMemberNameSurvives(t *testing.T) {
	text, err := Disassemble(buildModule(), DefaultConfig())
	if err != nil {
		t.Fatalf("Disassemble: %v", err)
	}
	if !strings.Contains(text, `OpMemberName %_struct_5 0 "scale"`) {
		t.Errorf("expected struct member name line, got:\n%s", text)
	}
}

func TestNamerDisambiguatesCollidingNames(t *testing.T) {
	n := newNamer()
	a := n.Assign(1, "", "foo")
	b := n.Assign(2, "", "foo")
	if a == b {
		t.Errorf("expected distinct names for colliding shapes, got %q twice", a)
	}
	if n.Assign(1, "", "foo") != a {
		t.Error("re-Assign of the same id must return its original name")
	}
}
