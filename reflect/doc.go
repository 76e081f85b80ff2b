// Package reflect parses a SPIR-V module's declarations into its
// public interface: entry points, execution modes, interface
// variables, descriptor resources, push constants and specialization
// constants, together with their full structural types.
//
// The package is organized around four registries populated by a
// declaration pass (types, annotations, constants, variables), a
// function-body pass that records which globals each function touches
// (the function graph), and a synthesis pass that, per entry point,
// computes the reachable variable set and materializes the result.
// Registries are owned by one Reflect call and never shared across
// calls; the Result returned to the caller is self-contained.
package reflect
