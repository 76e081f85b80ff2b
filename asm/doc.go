// Package asm assembles SPIR-V assembly text — the same line-oriented
// "%name = OpFoo %type operand..." format disasm.Disassemble emits —
// back into the binary word stream. It is the mirror image of disasm:
// where disasm turns ids into readable names, asm turns %names back
// into a densely packed id space in first-use order.
package asm
