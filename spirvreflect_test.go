package spirvreflect

import (
	"strings"
	"testing"
)

const fragmentShaderAsm = `
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

func TestEndToEndAssembleDisassembleReflect(t *testing.T) {
	data, err := Assemble(fragmentShaderAsm, DefaultAssembleOptions())
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	text, err := Disassemble(data, DisassembleOptions{})
	if err != nil {
		t.Fatalf("Disassemble: %v", err)
	}
	if !strings.Contains(text, "OpEntryPoint Fragment") {
		t.Errorf("expected disassembly to mention the Fragment entry point, got:\n%s", text)
	}

	result, err := Reflect(data, DefaultOptions())
	if err != nil {
		t.Fatalf("Reflect: %v", err)
	}
	if len(result.EntryPoints) != 1 {
		t.Fatalf("expected 1 entry point, got %d", len(result.EntryPoints))
	}
	if len(result.EntryPoints[0].Variables) != 2 {
		t.Fatalf("expected 2 reachable variables (input+output), got %d", len(result.EntryPoints[0].Variables))
	}
}
