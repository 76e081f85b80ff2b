package asm_test

import (
	"fmt"

	"github.com/gogpu/spirvreflect/asm"
	"github.com/gogpu/spirvreflect/spirv"
)

// ExampleAssemble demonstrates assembling a minimal module header.
func ExampleAssemble() {
	data, err := asm.Assemble(`
OpCapability Shader
OpMemoryModel Logical GLSL450
`, asm.DefaultConfig())
	if err != nil {
		fmt.Println("assemble error:", err)
		return
	}

	header, instrs, err := spirv.Decode(data)
	if err != nil {
		fmt.Println("decode error:", err)
		return
	}

	fmt.Println(header.Version == spirv.Version1_3)
	fmt.Println(len(instrs))
	// Output:
	// true
	// 2
}
