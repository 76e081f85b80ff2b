package reflect

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/spirvreflect/spirv"
)

// buildModule assembles a minimal module by hand: one uniform buffer
// with a single float member at binding (0,0), one Location-0 float
// input, one Location-0 float output, and a Fragment entry point whose
// body loads the input and stores the output, but never touches the
// uniform buffer — used to test that Reachable narrows the default
// (ReferenceAllResources=false) result to only the variables the
// entry point's closure actually touches.
func buildModule() []byte {
	const (
		tVoid       = 1
		tFloat      = 2
		tStruct     = 5
		tPtrUniform = 6
		varUniform  = 7
		tPtrInput   = 8
		varInput    = 9
		tPtrOutput  = 10
		varOutput   = 11
		tFn         = 12
		fnMain      = 13
		lblMain     = 14
		loadedVal   = 15
	)

	entryPointOps := append([]uint32{uint32(spirv.ExecutionModelFragment), fnMain}, spirv.PackString("main")...)
	entryPointOps = append(entryPointOps, varInput, varOutput)

	instrs := []spirv.Instruction{
		{Opcode: spirv.OpCapability, Operands: []uint32{uint32(spirv.CapabilityShader)}},
		{Opcode: spirv.OpMemoryModel, Operands: []uint32{uint32(spirv.AddressingModelLogical), uint32(spirv.MemoryModelGLSL450)}},
		{Opcode: spirv.OpEntryPoint, Operands: entryPointOps},
		{Opcode: spirv.OpExecutionMode, Operands: []uint32{fnMain, uint32(spirv.ExecutionModeOriginUpperLeft)}},

		{Opcode: spirv.OpName, Operands: append([]uint32{tStruct}, spirv.PackString("Block")...)},
		{Opcode: spirv.OpMemberName, Operands: append([]uint32{tStruct, 0}, spirv.PackString("scale")...)},

		{Opcode: spirv.OpDecorate, Operands: []uint32{tStruct, uint32(spirv.DecorationBlock)}},
		{Opcode: spirv.OpMemberDecorate, Operands: []uint32{tStruct, 0, uint32(spirv.DecorationOffset), 0}},
		{Opcode: spirv.OpDecorate, Operands: []uint32{varUniform, uint32(spirv.DecorationDescriptorSet), 0}},
		{Opcode: spirv.OpDecorate, Operands: []uint32{varUniform, uint32(spirv.DecorationBinding), 0}},
		{Opcode: spirv.OpDecorate, Operands: []uint32{varInput, uint32(spirv.DecorationLocation), 0}},
		{Opcode: spirv.OpDecorate, Operands: []uint32{varOutput, uint32(spirv.DecorationLocation), 0}},

		{Opcode: spirv.OpTypeVoid, Operands: []uint32{tVoid}},
		{Opcode: spirv.OpTypeFloat, Operands: []uint32{tFloat, 32}},
		{Opcode: spirv.OpTypeStruct, Operands: []uint32{tStruct, tFloat}},
		{Opcode: spirv.OpTypePointer, Operands: []uint32{tPtrUniform, uint32(spirv.StorageClassUniform), tStruct}},
		{Opcode: spirv.OpTypePointer, Operands: []uint32{tPtrInput, uint32(spirv.StorageClassInput), tFloat}},
		{Opcode: spirv.OpTypePointer, Operands: []uint32{tPtrOutput, uint32(spirv.StorageClassOutput), tFloat}},
		{Opcode: spirv.OpTypeFunction, Operands: []uint32{tFn, tVoid}},

		{Opcode: spirv.OpVariable, Operands: []uint32{tPtrUniform, varUniform, uint32(spirv.StorageClassUniform)}},
		{Opcode: spirv.OpVariable, Operands: []uint32{tPtrInput, varInput, uint32(spirv.StorageClassInput)}},
		{Opcode: spirv.OpVariable, Operands: []uint32{tPtrOutput, varOutput, uint32(spirv.StorageClassOutput)}},

		{Opcode: spirv.OpFunction, Operands: []uint32{tVoid, fnMain, 0, tFn}},
		{Opcode: spirv.OpLabel, Operands: []uint32{lblMain}},
		{Opcode: spirv.OpLoad, Operands: []uint32{tFloat, loadedVal, varInput}},
		{Opcode: spirv.OpStore, Operands: []uint32{varOutput, loadedVal}},
		{Opcode: spirv.OpReturn, Operands: nil},
		{Opcode: spirv.OpFunctionEnd, Operands: nil},
	}

	header := spirv.Header{Version: spirv.Version1_3, IDBound: 16}
	return spirv.Encode(header, instrs)
}

func TestReflectNarrowsToReachableVariables(t *testing.T) {
	result, err := Reflect(buildModule(), DefaultConfig())
	if err != nil {
		t.Fatalf("Reflect: %v", err)
	}
	if len(result.EntryPoints) != 1 {
		t.Fatalf("expected 1 entry point, got %d", len(result.EntryPoints))
	}
	ep := result.EntryPoints[0]
	if ep.Name != "main" || ep.Model != spirv.ExecutionModelFragment {
		t.Errorf("unexpected entry point %+v", ep)
	}
	if len(ep.ExecutionModes) != 1 || ep.ExecutionModes[0].Mode != spirv.ExecutionModeOriginUpperLeft {
		t.Errorf("expected OriginUpperLeft execution mode, got %+v", ep.ExecutionModes)
	}

	// The body only loads the input and stores the output; the uniform
	// buffer is never referenced, so it must not appear.
	if len(ep.Variables) != 2 {
		t.Fatalf("expected 2 reachable variables, got %d: %+v", len(ep.Variables), ep.Variables)
	}
	for _, v := range ep.Variables {
		if v.StorageClass == spirv.StorageClassUniform {
			t.Errorf("unreferenced uniform buffer leaked into reachable set: %+v", v)
		}
	}
}

func TestReflectReferenceAllResourcesIncludesEverything(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ReferenceAllResources = true
	result, err := Reflect(buildModule(), cfg)
	if err != nil {
		t.Fatalf("Reflect: %v", err)
	}
	if len(result.EntryPoints[0].Variables) != 3 {
		t.Fatalf("expected all 3 variables with ReferenceAllResources, got %d", len(result.EntryPoints[0].Variables))
	}
}

func TestReflectClassifiesUniformBuffer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ReferenceAllResources = true
	result, err := Reflect(buildModule(), cfg)
	if err != nil {
		t.Fatalf("Reflect: %v", err)
	}
	for _, v := range result.EntryPoints[0].Variables {
		if v.StorageClass != spirv.StorageClassUniform {
			continue
		}
		loc, ok := v.Locator.(DescriptorLocator)
		if !ok {
			t.Fatalf("expected DescriptorLocator, got %T", v.Locator)
		}
		if loc.Kind != DescriptorUniformBuffer || loc.Set != 0 || loc.Binding != 0 {
			t.Errorf("unexpected locator %+v", loc)
		}
		st, ok := v.Type.(StructType)
		if !ok || len(st.Members) != 1 || st.Members[0].Name != "scale" {
			t.Errorf("unexpected struct shape %+v", v.Type)
		}
	}
}

// buildSpecializationModule assembles `const double x = 3.0; const
// uint OFFSET = 2; const uint NUM = 42; const int PERM = 12;` (spec ids
// 1..4 respectively) followed by a sampler array bound at (0,0) whose
// length is the expression NUM*PERM+1.
func buildSpecializationModule() []byte {
	const (
		tVoid   = 1
		tDouble = 2
		tUint   = 3
		tInt    = 4
		tSampler = 5
		fnVoid  = 6
		fnMain  = 7
		lblMain = 8
		cX      = 9
		cOFFSET = 10
		cNUM    = 11
		cPERM   = 12
		cOne    = 13
		mulNumPerm = 14
		addOne     = 15
		tArr    = 16
		tPtrArr = 17
		varArr  = 18
	)

	xBits := math.Float64bits(3.0)

	entryPointOps := append([]uint32{uint32(spirv.ExecutionModelFragment), fnMain}, spirv.PackString("main")...)

	instrs := []spirv.Instruction{
		{Opcode: spirv.OpCapability, Operands: []uint32{uint32(spirv.CapabilityShader)}},
		{Opcode: spirv.OpMemoryModel, Operands: []uint32{uint32(spirv.AddressingModelLogical), uint32(spirv.MemoryModelGLSL450)}},
		{Opcode: spirv.OpEntryPoint, Operands: entryPointOps},
		{Opcode: spirv.OpExecutionMode, Operands: []uint32{fnMain, uint32(spirv.ExecutionModeOriginUpperLeft)}},

		{Opcode: spirv.OpDecorate, Operands: []uint32{cX, uint32(spirv.DecorationSpecId), 1}},
		{Opcode: spirv.OpDecorate, Operands: []uint32{cOFFSET, uint32(spirv.DecorationSpecId), 2}},
		{Opcode: spirv.OpDecorate, Operands: []uint32{cNUM, uint32(spirv.DecorationSpecId), 3}},
		{Opcode: spirv.OpDecorate, Operands: []uint32{cPERM, uint32(spirv.DecorationSpecId), 4}},
		{Opcode: spirv.OpDecorate, Operands: []uint32{varArr, uint32(spirv.DecorationDescriptorSet), 0}},
		{Opcode: spirv.OpDecorate, Operands: []uint32{varArr, uint32(spirv.DecorationBinding), 0}},

		{Opcode: spirv.OpTypeVoid, Operands: []uint32{tVoid}},
		{Opcode: spirv.OpTypeFloat, Operands: []uint32{tDouble, 64}},
		{Opcode: spirv.OpTypeInt, Operands: []uint32{tUint, 32, 0}},
		{Opcode: spirv.OpTypeInt, Operands: []uint32{tInt, 32, 1}},
		{Opcode: spirv.OpTypeSampler, Operands: []uint32{tSampler}},
		{Opcode: spirv.OpTypeFunction, Operands: []uint32{fnVoid, tVoid}},

		{Opcode: spirv.OpSpecConstant, Operands: []uint32{tDouble, cX, uint32(xBits), uint32(xBits >> 32)}},
		{Opcode: spirv.OpSpecConstant, Operands: []uint32{tUint, cOFFSET, 2}},
		{Opcode: spirv.OpSpecConstant, Operands: []uint32{tUint, cNUM, 42}},
		{Opcode: spirv.OpSpecConstant, Operands: []uint32{tInt, cPERM, 12}},
		{Opcode: spirv.OpConstant, Operands: []uint32{tUint, cOne, 1}},
		{Opcode: spirv.OpSpecConstantOp, Operands: []uint32{tUint, mulNumPerm, uint32(spirv.OpIMul), cNUM, cPERM}},
		{Opcode: spirv.OpSpecConstantOp, Operands: []uint32{tUint, addOne, uint32(spirv.OpIAdd), mulNumPerm, cOne}},
		{Opcode: spirv.OpTypeArray, Operands: []uint32{tArr, tSampler, addOne}},
		{Opcode: spirv.OpTypePointer, Operands: []uint32{tPtrArr, uint32(spirv.StorageClassUniformConstant), tArr}},
		{Opcode: spirv.OpVariable, Operands: []uint32{tPtrArr, varArr, uint32(spirv.StorageClassUniformConstant)}},

		{Opcode: spirv.OpFunction, Operands: []uint32{tVoid, fnMain, 0, fnVoid}},
		{Opcode: spirv.OpLabel, Operands: []uint32{lblMain}},
		{Opcode: spirv.OpReturn, Operands: nil},
		{Opcode: spirv.OpFunctionEnd, Operands: nil},
	}

	header := spirv.Header{Version: spirv.Version1_3, IDBound: 19}
	return spirv.Encode(header, instrs)
}

func TestReflectSpecializationResizesArrayAndListsRemainingSpecConstant(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ReferenceAllResources = true
	cfg.Specializations = map[uint32]Value{
		1: {Kind: ScalarFloat, Width: 64, Bits: math.Float64bits(4.0)},
		3: {Kind: ScalarUnsigned, Width: 32, Bits: 7},
		4: {Kind: ScalarSigned, Width: 32, Bits: 9},
	}

	result, err := Reflect(buildSpecializationModule(), cfg)
	if err != nil {
		t.Fatalf("Reflect: %v", err)
	}
	ep := result.EntryPoints[0]

	var arrVar *Variable
	var specVar *Variable
	for i := range ep.Variables {
		v := &ep.Variables[i]
		switch loc := v.Locator.(type) {
		case DescriptorLocator:
			if loc.Set == 0 && loc.Binding == 0 {
				arrVar = v
			}
		case SpecConstantLocator:
			specVar = v
		}
	}

	if arrVar == nil {
		t.Fatalf("expected a descriptor at (0,0), variables: %+v", ep.Variables)
	}
	arrType, ok := arrVar.Type.(ArrayType)
	if !ok || arrType.Count == nil {
		t.Fatalf("expected a sized array type, got %+v", arrVar.Type)
	}
	if *arrType.Count != 64 {
		t.Errorf("expected bind-count 64 (7*9+1) after specialization, got %d", *arrType.Count)
	}
	dl := arrVar.Locator.(DescriptorLocator)
	if !dl.Count.IsArray || dl.Count.Runtime || dl.Count.Len != 64 {
		t.Errorf("expected DescriptorCount{IsArray:true, Len:64}, got %+v", dl.Count)
	}

	if specVar == nil {
		t.Fatalf("expected the unspecialized OFFSET spec constant to be listed, variables: %+v", ep.Variables)
	}
	if sl := specVar.Locator.(SpecConstantLocator); sl.SpecId != 2 {
		t.Errorf("expected remaining spec constant id=2, got %d", sl.SpecId)
	}
	scalar, ok := specVar.Type.(ScalarType)
	if !ok || scalar.Kind != ScalarUnsigned {
		t.Errorf("expected remaining spec constant of type uint, got %+v", specVar.Type)
	}
}

func TestApplySpecializationsRejectsTypeMismatch(t *testing.T) {
	data := buildSpecializationModule()
	cfg := DefaultConfig()
	cfg.Specializations = map[uint32]Value{
		// SpecId 3 (NUM) is declared uint32; supplying a 64-bit float
		// override must be rejected rather than silently applied.
		3: {Kind: ScalarFloat, Width: 64, Bits: math.Float64bits(1.0)},
	}
	_, err := Reflect(data, cfg)
	if err == nil {
		t.Fatal("expected InvalidSpecialization error")
	}
	var rerr *Error
	if !errors.As(err, &rerr) || rerr.Kind != ErrInvalidSpecialization {
		t.Errorf("expected InvalidSpecialization, got %v", err)
	}
}

func TestTypeRegistryRejectsIdCollision(t *testing.T) {
	r := NewTypeRegistry()
	if err := r.Bind(1, ScalarType{Kind: ScalarFloat, Width: 32}); err != nil {
		t.Fatalf("first bind: %v", err)
	}
	err := r.Bind(1, ScalarType{Kind: ScalarFloat, Width: 32})
	if err == nil {
		t.Fatal("expected IdCollision on rebinding the same id")
	}
	var rerr *Error
	if !errors.As(err, &rerr) || rerr.Kind != ErrIdCollision {
		t.Errorf("expected IdCollision, got %v", err)
	}
}

func TestTypeRegistryForwardPointerPromotion(t *testing.T) {
	r := NewTypeRegistry()
	if err := r.ReserveForward(1); err != nil {
		t.Fatalf("ReserveForward: %v", err)
	}
	if err := r.Bind(2, ScalarType{Kind: ScalarFloat, Width: 32}); err != nil {
		t.Fatalf("bind scalar: %v", err)
	}
	pointee := mustGet(t, r, 2)
	if err := r.Bind(1, PointerType{StorageClass: spirv.StorageClassFunction, Pointee: pointee}); err != nil {
		t.Fatalf("promote forward pointer: %v", err)
	}
	if r.IsForward(1) {
		t.Error("expected id 1 to no longer be a pending forward pointer")
	}
}

func mustGet(t *testing.T, r *TypeRegistry, id uint32) Type {
	t.Helper()
	ty, err := r.Get(id)
	if err != nil {
		t.Fatalf("Get(%d): %v", id, err)
	}
	return ty
}
