package reflect_test

import (
	"fmt"

	"github.com/gogpu/spirvreflect/asm"
	"github.com/gogpu/spirvreflect/reflect"
)

// ExampleReflect demonstrates reflecting a fragment shader's entry point
// interface out of a compiled module.
func ExampleReflect() {
	data, err := asm.Assemble(`
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
`, asm.DefaultConfig())
	if err != nil {
		fmt.Println("assemble error:", err)
		return
	}

	result, err := reflect.Reflect(data, reflect.DefaultConfig())
	if err != nil {
		fmt.Println("reflect error:", err)
		return
	}

	fmt.Println(len(result.EntryPoints))
	fmt.Println(result.EntryPoints[0].Name)
	fmt.Println(len(result.EntryPoints[0].Variables))
	// Output:
	// 1
	// main
	// 2
}
