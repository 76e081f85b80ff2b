// Package spirvreflect provides a Pure Go SPIR-V reflection, disassembly,
// and assembly toolkit.
//
// spirvreflect inspects already-compiled SPIR-V binaries to recover
// their resource layout per entry point — descriptor bindings, push
// constants, input/output interfaces, and specialization constants —
// without needing the original shader source. It also disassembles a
// module to readable assembly text and assembles that text back to
// binary.
//
// The package provides a simple, high-level API as well as lower-level
// access to the individual pipeline stages.
//
// Example usage:
//
//	result, err := spirvreflect.Reflect(spirvBytes, spirvreflect.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, ep := range result.EntryPoints {
//	    fmt.Println(ep.Name, len(ep.Variables))
//	}
//
// For disassembly, use the disasm package directly; for assembly, asm.
package spirvreflect

import (
	"fmt"

	"github.com/gogpu/spirvreflect/asm"
	"github.com/gogpu/spirvreflect/disasm"
	"github.com/gogpu/spirvreflect/reflect"
	"github.com/gogpu/spirvreflect/spirv"
)

// Options configures reflection.
type Options struct {
	// ReferenceAllResources, when true, reports every module-level
	// resource variable for each entry point instead of narrowing to
	// the set actually reachable from that entry point's call graph.
	ReferenceAllResources bool

	// CombineImageSamplers folds a separately declared image and sampler
	// that share the same set and binding into one combined descriptor.
	// An OpTypeSampledImage variable is reported as a combined descriptor
	// either way.
	CombineImageSamplers bool

	// GenerateUniqueNames synthesizes a name for any variable missing
	// an OpName debug name.
	GenerateUniqueNames bool

	// Specializations overrides spec constant values by SpecId before
	// OpSpecConstantOp expression trees are evaluated.
	Specializations map[uint32]reflect.Value
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{GenerateUniqueNames: true}
}

// Reflect inspects a SPIR-V binary and returns its per-entry-point
// resource layout.
//
// The reflection pipeline is:
//  1. Decode the binary word stream (spirv.Decode)
//  2. Declare every type, constant, annotation, variable, and function
//     header (reflect's declaration pass)
//  3. Scan function bodies for variable access and call edges (reflect's
//     body pass)
//  4. Apply specialization overrides, then materialize each entry
//     point's reachable variable set (reflect's synthesis pass)
func Reflect(data []byte, opts Options) (*reflect.Result, error) {
	cfg := reflect.Config{
		ReferenceAllResources: opts.ReferenceAllResources,
		CombineImageSamplers:  opts.CombineImageSamplers,
		GenerateUniqueNames:   opts.GenerateUniqueNames,
		Specializations:       opts.Specializations,
	}
	result, err := reflect.Reflect(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("spirvreflect: reflection failed: %w", err)
	}
	return result, nil
}

// DisassembleOptions configures Disassemble.
type DisassembleOptions struct {
	NoHeader bool
	NoIndent bool
	RawId    bool
}

// Disassemble renders a SPIR-V binary as assembly text.
func Disassemble(data []byte, opts DisassembleOptions) (string, error) {
	text, err := disasm.Disassemble(data, disasm.Config{
		NoHeader: opts.NoHeader,
		NoIndent: opts.NoIndent,
		RawId:    opts.RawId,
	})
	if err != nil {
		return "", fmt.Errorf("spirvreflect: disassembly failed: %w", err)
	}
	return text, nil
}

// AssembleOptions configures Assemble.
type AssembleOptions struct {
	// Version is the SPIR-V version word to stamp into the assembled
	// module's header (default: 1.3).
	Version spirv.Version
}

// DefaultAssembleOptions returns sensible default options.
func DefaultAssembleOptions() AssembleOptions {
	return AssembleOptions{Version: spirv.Version1_3}
}

// Assemble parses SPIR-V assembly text and encodes it to a binary
// module.
func Assemble(text string, opts AssembleOptions) ([]byte, error) {
	data, err := asm.Assemble(text, asm.Config{Version: opts.Version})
	if err != nil {
		return nil, fmt.Errorf("spirvreflect: assembly failed: %w", err)
	}
	return data, nil
}
