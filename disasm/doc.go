// Package disasm renders a decoded SPIR-V module as human-readable
// assembly text: one line per instruction, result ids replaced by
// synthesized, disambiguated names derived from each id's declared
// shape (its type, constant value, or debug name when one exists).
//
// Name synthesis here is deliberately independent from the reflect
// package's own id-naming option: disasm needs a name for every id in
// the module (types and constants included, which reflect never
// names), while reflect only ever names Variables.
package disasm
