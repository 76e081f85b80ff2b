// Command spvasm assembles SPIR-V assembly text into a binary module.
//
// Usage:
//
//	spvasm [options] <input.spvasm>
//
// Examples:
//
//	spvasm shader.spvasm                   # Assemble, write binary to stdout
//	spvasm -o shader.spv shader.spvasm     # Assemble to a file
//	echo "..." | spvasm -target-env 1.5 -  # Read assembly text from stdin
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gogpu/spirvreflect/asm"
	"github.com/gogpu/spirvreflect/spirv"
)

var (
	output    = flag.String("o", "", "output file (default: stdout)")
	targetEnv = flag.String("target-env", "1.3", "SPIR-V version to stamp into the module header (1.0..1.6)")
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

	version, err := parseTargetEnv(*targetEnv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var source []byte
	if args[0] == "-" {
		source, err = io.ReadAll(os.Stdin)
	} else {
		source, err = os.ReadFile(args[0])
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}

	data, err := asm.Assemble(string(source), asm.Config{Version: version})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Assembly error: %v\n", err)
		os.Exit(1)
	}

	if *output != "" {
		if err := os.WriteFile(*output, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Successfully assembled %s to %s (%d bytes)\n", args[0], *output, len(data))
		return
	}

	if _, err := os.Stdout.Write(data); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}
}

func parseTargetEnv(s string) (spirv.Version, error) {
	switch s {
	case "1.0":
		return spirv.Version1_0, nil
	case "1.1":
		return spirv.Version1_1, nil
	case "1.2":
		return spirv.Version1_2, nil
	case "1.3":
		return spirv.Version1_3, nil
	case "1.4":
		return spirv.Version1_4, nil
	case "1.5":
		return spirv.Version1_5, nil
	case "1.6":
		return spirv.Version1_6, nil
	default:
		return spirv.Version{}, fmt.Errorf("unrecognized -target-env %q (want 1.0..1.6)", s)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: spvasm [options] <input.spvasm|->\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  spvasm shader.spvasm               Assemble to stdout\n")
	fmt.Fprintf(os.Stderr, "  spvasm -o shader.spv shader.spvasm  Assemble to file\n")
	fmt.Fprintf(os.Stderr, "  spvasm -target-env 1.5 shader.spvasm  Target SPIR-V 1.5\n")
}
