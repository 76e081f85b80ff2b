package disasm_test

import (
	"fmt"
	"strings"

	"github.com/gogpu/spirvreflect/asm"
	"github.com/gogpu/spirvreflect/disasm"
)

// ExampleDisassemble demonstrates round-tripping a tiny fragment shader
// through the assembler and back out as assembly text.
func ExampleDisassemble() {
	data, err := asm.Assemble(`
OpCapability Shader
OpMemoryModel Logical GLSL450
OpEntryPoint Fragment %main "main"
OpExecutionMode %main OriginUpperLeft
%void = OpTypeVoid
%fn_void = OpTypeFunction %void
%main = OpFunction %void None %fn_void
%entry = OpLabel
OpReturn
OpFunctionEnd
`, asm.DefaultConfig())
	if err != nil {
		fmt.Println("assemble error:", err)
		return
	}

	text, err := disasm.Disassemble(data, disasm.Config{NoHeader: true})
	if err != nil {
		fmt.Println("disassemble error:", err)
		return
	}

	fmt.Println(strings.Contains(text, "OpEntryPoint Fragment"))
	fmt.Println(strings.Contains(text, "%void = OpTypeVoid"))
	fmt.Println(strings.Contains(text, "OpFunctionEnd"))
	// Output:
	// true
	// true
	// true
}
