// Package spirv provides the binary codec for SPIR-V modules.
//
// It frames a raw word stream as a header plus a sequence of
// instructions (the binary codec), exposes a typed cursor for reading
// an instruction's operand words (the operand reader), and carries the
// opcode and enum tables that the reflection, disassembly and assembly
// packages all share.
//
// SPIR-V itself is a word-aligned (32-bit) instruction stream: a five
// word header followed by instructions, each packing its opcode and
// word count into the first word. This package only frames that
// stream and names its pieces; it does not interpret operand semantics
// beyond what decoding requires.
package spirv
