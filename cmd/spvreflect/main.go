// Command spvreflect reflects a SPIR-V binary and prints its per-entry-point
// resource layout as JSON.
//
// Usage:
//
//	spvreflect [options] <input.spv>
//
// Examples:
//
//	spvreflect shader.spv                          # Print resource layout as JSON
//	spvreflect -reference-all-resources shader.spv # Include unreachable resources
//	spvreflect -spec 0=4 -spec 1=64 shader.spv     # Override spec constants 0 and 1
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gogpu/spirvreflect/reflect"
)

var (
	referenceAll = flag.Bool("reference-all-resources", false, "report every resource variable, not just those reachable from an entry point")
	combineImage = flag.Bool("combine-image-samplers", false, "treat a sampled-image pair as one combined descriptor")
	uniqueNames  = flag.Bool("generate-unique-names", true, "synthesize a name for any variable missing debug info")
	specOverride specFlags
)

func init() {
	flag.Var(&specOverride, "spec", "override a specialization constant, as id=value (repeatable)")
}

// specFlags accumulates repeated -spec id=value flags into a
// SpecId -> Value override map. Each value is a signed 32-bit integer,
// so Reflect rejects it for a spec constant of any other declared type.
type specFlags map[uint32]reflect.Value

func (s *specFlags) String() string { return "" }

func (s *specFlags) Set(raw string) error {
	if *s == nil {
		*s = specFlags{}
	}
	id, val, ok := strings.Cut(raw, "=")
	if !ok {
		return fmt.Errorf("expected id=value, got %q", raw)
	}
	specId, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		return fmt.Errorf("invalid spec id %q: %w", id, err)
	}
	bits, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid spec value %q: %w", val, err)
	}
	(*s)[uint32(specId)] = reflect.Value{Kind: reflect.ScalarSigned, Width: 32, Bits: uint64(uint32(bits))}
	return nil
}

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

	cfg := reflect.Config{
		ReferenceAllResources: *referenceAll,
		CombineImageSamplers:  *combineImage,
		GenerateUniqueNames:   *uniqueNames,
		Specializations:       map[uint32]reflect.Value(specOverride),
	}

	result, err := reflect.Reflect(data, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Reflection error: %v\n", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: spvreflect [options] <input.spv>\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  spvreflect shader.spv                Print resource layout as JSON\n")
	fmt.Fprintf(os.Stderr, "  spvreflect -spec 0=4 shader.spv       Override spec constant 0 with 4\n")
}
