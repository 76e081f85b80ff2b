package asm

import (
	"testing"

	"github.com/gogpu/spirvreflect/spirv"
)

const sampleText = `
OpCapability Shader
OpMemoryModel Logical GLSL450
OpEntryPoint Fragment %main "main" %in_color %out_color
OpExecutionMode %main OriginUpperLeft
OpDecorate %in_color Location 0
OpDecorate %out_color Location 0
%void = OpTypeVoid
%float = OpTypeFloat 32
%ptr_in = OpTypePointer Input %float
%ptr_out = OpTypePointer Output %float
%fn_void = OpTypeFunction %void
%in_color = OpVariable %ptr_in Input
%out_color = OpVariable %ptr_out Output
%main = OpFunction %void None %fn_void
%entry = OpLabel
%loaded = OpLoad %float %in_color
OpStore %out_color %loaded
OpReturn
OpFunctionEnd
`

func TestAssembleProducesDecodableModule(t *testing.T) {
	data, err := Assemble(sampleText, DefaultConfig())
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	header, instrs, err := spirv.Decode(data)
	if err != nil {
		t.Fatalf("decoding assembled module: %v", err)
	}
	if header.Version != spirv.Version1_3 {
		t.Errorf("expected version 1.3, got %+v", header.Version)
	}

	var sawEntryPoint, sawStore bool
	for _, instr := range instrs {
		switch instr.Opcode {
		case spirv.OpEntryPoint:
			sawEntryPoint = true
			if instr.Operands[0] != uint32(spirv.ExecutionModelFragment) {
				t.Errorf("expected Fragment execution model, got %d", instr.Operands[0])
			}
		case spirv.OpStore:
			sawStore = true
		}
	}
	if !sawEntryPoint {
		t.Error("expected an OpEntryPoint instruction in the assembled module")
	}
	if !sawStore {
		t.Error("expected an OpStore instruction in the assembled module")
	}
}

func TestAssembleSameNameAlwaysResolvesToSameID(t *testing.T) {
	data, err := Assemble(sampleText, DefaultConfig())
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	_, instrs, err := spirv.Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	var loadVarID, storeVarID uint32
	for _, instr := range instrs {
		switch instr.Opcode {
		case spirv.OpLoad:
			loadVarID = instr.Operands[2]
		case spirv.OpVariable:
			// the first OpVariable in source order is %in_color
			if storeVarID == 0 {
				storeVarID = instr.Operands[1]
			}
		}
	}
	if loadVarID == 0 || loadVarID != storeVarID {
		t.Errorf("expected %%in_color to resolve to the same id in both OpVariable and OpLoad, got %d vs %d", storeVarID, loadVarID)
	}
}

func TestAssembleRejectsUnknownOpcode(t *testing.T) {
	_, err := Assemble("%x = OpNotARealOpcode %y\n", DefaultConfig())
	if err == nil {
		t.Fatal("expected an error for an unrecognized mnemonic")
	}
}

func TestAssembleRejectsMissingResultAssignment(t *testing.T) {
	_, err := Assemble("OpTypeVoid\n", DefaultConfig())
	if err == nil {
		t.Fatal("expected an error when a result-bearing opcode has no %result = prefix")
	}
}

func TestLexerTokenizesResultIDsAndStrings(t *testing.T) {
	tokens, err := NewLexer(`%foo = OpName %foo "hello world"` + "\n").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	want := []TokenKind{TokenResultID, TokenEqual, TokenIdent, TokenResultID, TokenString, TokenNewline, TokenEOF}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %+v", len(want), len(tokens), tokens)
	}
	for i, k := range want {
		if tokens[i].Kind != k {
			t.Errorf("token %d: expected kind %d, got %d (%q)", i, k, tokens[i].Kind, tokens[i].Text)
		}
	}
}
