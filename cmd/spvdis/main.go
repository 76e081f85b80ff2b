// Command spvdis disassembles a SPIR-V binary to assembly text.
//
// Usage:
//
//	spvdis [options] <input.spv>
//
// Examples:
//
//	spvdis shader.spv                  # Disassemble to stdout
//	spvdis -no-header shader.spv       # Omit the header comment block
//	spvdis -raw-id shader.spv          # Print %<id> instead of synthesized names
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gogpu/spirvreflect/disasm"
)

var (
	noHeader = flag.Bool("no-header", false, "omit the header comment block")
	noIndent = flag.Bool("no-indent", false, "don't indent instructions under their function")
	rawId    = flag.Bool("raw-id", false, "print %<id> instead of synthesized shape names")
)

func main() {
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: no input file specified")
		usage()
		os.Exit(1)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	text, err := disasm.Disassemble(data, disasm.Config{
		NoHeader: *noHeader,
		NoIndent: *noIndent,
		RawId:    *rawId,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Disassembly error: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(text)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: spvdis [options] <input.spv>\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  spvdis shader.spv             Disassemble to stdout\n")
	fmt.Fprintf(os.Stderr, "  spvdis -no-header shader.spv  Omit the header comment block\n")
	fmt.Fprintf(os.Stderr, "  spvdis -raw-id shader.spv     Use raw %%id names\n")
}
