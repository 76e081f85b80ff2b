package reflect

import "github.com/gogpu/spirvreflect/spirv"

// declarationPass is the driver's first pass (§4.8): it walks every
// instruction once, in module order, registering types, annotations,
// constants and variables, and collecting the raw OpEntryPoint/
// OpExecutionMode payloads; once the walk ends, each entry point's
// execution modes are attached to it. Function bodies contribute
// nothing here (function-scope OpVariables are not registered); only
// the OpFunction header is recorded so the function graph knows every
// valid callee id before bodyPass runs.
//
// Every instruction's operand words are read through a spirv.Cursor
// (C2) rather than indexed directly, so the two share one definition of
// an instruction's wire layout.
func declarationPass(instrs []spirv.Instruction, types *TypeRegistry, annots *Annotations, consts *ConstantPool, graph *FuncGraph, vars map[uint32]*Variable) ([]entryPointDecl, []arrayLengthRef, error) {
	var entryPoints []entryPointDecl
	var arrayLens []arrayLengthRef
	modeBuffer := make(map[uint32][]ExecutionModeInfo)
	builder := &VariableBuilder{types: types, annots: annots}

	for _, instr := range instrs {
		cur := spirv.NewCursor(instr.Operands)
		switch instr.Opcode {
		case spirv.OpName:
			target, err := cur.ReadID()
			if err != nil {
				return nil, nil, err
			}
			name, err := cur.ReadString()
			if err != nil {
				return nil, nil, err
			}
			if err := annots.SetName(target, -1, name); err != nil {
				return nil, nil, err
			}
		case spirv.OpMemberName:
			target, err := cur.ReadID()
			if err != nil {
				return nil, nil, err
			}
			member, err := cur.ReadUint32()
			if err != nil {
				return nil, nil, err
			}
			name, err := cur.ReadString()
			if err != nil {
				return nil, nil, err
			}
			if err := annots.SetName(target, int32(member), name); err != nil {
				return nil, nil, err
			}
		case spirv.OpDecorate:
			target, err := cur.ReadID()
			if err != nil {
				return nil, nil, err
			}
			deco, err := cur.ReadUint32()
			if err != nil {
				return nil, nil, err
			}
			if err := annots.AddDecoration(target, -1, spirv.Decoration(deco), cur.ReadList()); err != nil {
				return nil, nil, err
			}
		case spirv.OpMemberDecorate:
			target, err := cur.ReadID()
			if err != nil {
				return nil, nil, err
			}
			member, err := cur.ReadUint32()
			if err != nil {
				return nil, nil, err
			}
			deco, err := cur.ReadUint32()
			if err != nil {
				return nil, nil, err
			}
			if err := annots.AddDecoration(target, int32(member), spirv.Decoration(deco), cur.ReadList()); err != nil {
				return nil, nil, err
			}

		case spirv.OpTypeVoid:
			id, err := cur.ReadID()
			if err != nil {
				return nil, nil, err
			}
			if err := types.Bind(id, VoidType{}); err != nil {
				return nil, nil, err
			}
		case spirv.OpTypeBool:
			id, err := cur.ReadID()
			if err != nil {
				return nil, nil, err
			}
			if err := types.Bind(id, ScalarType{Kind: ScalarBool}); err != nil {
				return nil, nil, err
			}
		case spirv.OpTypeInt:
			id, err := cur.ReadID()
			if err != nil {
				return nil, nil, err
			}
			width, err := cur.ReadUint32()
			if err != nil {
				return nil, nil, err
			}
			signed, err := cur.ReadUint32()
			if err != nil {
				return nil, nil, err
			}
			kind := ScalarSigned
			if signed == 0 {
				kind = ScalarUnsigned
			}
			if err := types.Bind(id, ScalarType{Kind: kind, Width: uint8(width)}); err != nil {
				return nil, nil, err
			}
		case spirv.OpTypeFloat:
			id, err := cur.ReadID()
			if err != nil {
				return nil, nil, err
			}
			width, err := cur.ReadUint32()
			if err != nil {
				return nil, nil, err
			}
			if err := types.Bind(id, ScalarType{Kind: ScalarFloat, Width: uint8(width)}); err != nil {
				return nil, nil, err
			}
		case spirv.OpTypeVector:
			id, err := cur.ReadID()
			if err != nil {
				return nil, nil, err
			}
			compId, err := cur.ReadID()
			if err != nil {
				return nil, nil, err
			}
			count, err := cur.ReadUint32()
			if err != nil {
				return nil, nil, err
			}
			comp, err := types.Get(compId)
			if err != nil {
				return nil, nil, err
			}
			scalar, ok := comp.(ScalarType)
			if !ok {
				return nil, nil, newError(ErrUnsupportedType, id, "vector component type must be scalar")
			}
			if err := types.Bind(id, VectorType{Component: scalar, Count: uint8(count)}); err != nil {
				return nil, nil, err
			}
		case spirv.OpTypeMatrix:
			id, err := cur.ReadID()
			if err != nil {
				return nil, nil, err
			}
			colId, err := cur.ReadID()
			if err != nil {
				return nil, nil, err
			}
			count, err := cur.ReadUint32()
			if err != nil {
				return nil, nil, err
			}
			col, err := types.Get(colId)
			if err != nil {
				return nil, nil, err
			}
			vec, ok := col.(VectorType)
			if !ok {
				return nil, nil, newError(ErrUnsupportedType, id, "matrix column type must be a vector")
			}
			m := MatrixType{Column: vec, Count: uint8(count)}
			if stride, ok := annots.Decoration(id, -1, spirv.DecorationMatrixStride); ok && len(stride) > 0 {
				s := stride[0]
				m.Stride = &s
			}
			if annots.Has(id, -1, spirv.DecorationRowMajor) {
				m.Major = MajorRow
			} else if annots.Has(id, -1, spirv.DecorationColMajor) {
				m.Major = MajorColumn
			}
			if err := types.Bind(id, m); err != nil {
				return nil, nil, err
			}
		case spirv.OpTypeArray:
			id, err := cur.ReadID()
			if err != nil {
				return nil, nil, err
			}
			elemId, err := cur.ReadID()
			if err != nil {
				return nil, nil, err
			}
			lengthId, err := cur.ReadID()
			if err != nil {
				return nil, nil, err
			}
			elem, err := types.Get(elemId)
			if err != nil {
				return nil, nil, err
			}
			length, err := consts.Evaluate(lengthId)
			if err != nil {
				return nil, nil, err
			}
			count := uint32(length.Uint64())
			a := ArrayType{Element: elem, Count: &count}
			if stride, ok := annots.Decoration(id, -1, spirv.DecorationArrayStride); ok && len(stride) > 0 {
				s := stride[0]
				a.Stride = &s
			}
			if err := types.Bind(id, a); err != nil {
				return nil, nil, err
			}
			arrayLens = append(arrayLens, arrayLengthRef{lengthConstId: lengthId, count: a.Count})
		case spirv.OpTypeRuntimeArray:
			id, err := cur.ReadID()
			if err != nil {
				return nil, nil, err
			}
			elemId, err := cur.ReadID()
			if err != nil {
				return nil, nil, err
			}
			elem, err := types.Get(elemId)
			if err != nil {
				return nil, nil, err
			}
			a := ArrayType{Element: elem}
			if stride, ok := annots.Decoration(id, -1, spirv.DecorationArrayStride); ok && len(stride) > 0 {
				s := stride[0]
				a.Stride = &s
			}
			if err := types.Bind(id, a); err != nil {
				return nil, nil, err
			}
		case spirv.OpTypeStruct:
			id, err := cur.ReadID()
			if err != nil {
				return nil, nil, err
			}
			memberTypeIds := cur.ReadList()
			st := StructType{Name: annots.Name(id, -1)}
			for i, memberTypeId := range memberTypeIds {
				mt, err := types.Get(memberTypeId)
				if err != nil {
					return nil, nil, err
				}
				member := StructMember{
					Name: annots.Name(id, int32(i)),
					Type: mt,
				}
				if off, ok := annots.Decoration(id, int32(i), spirv.DecorationOffset); ok && len(off) > 0 {
					o := off[0]
					member.Offset = &o
				}
				nonWritable := annots.Has(id, int32(i), spirv.DecorationNonWritable)
				nonReadable := annots.Has(id, int32(i), spirv.DecorationNonReadable)
				switch {
				case nonWritable && nonReadable:
					return nil, nil, newError(ErrAccessConflict, id, "struct member %d is decorated both NonWritable and NonReadable", i)
				case nonWritable:
					member.Access = AccessReadOnly
				case nonReadable:
					member.Access = AccessWriteOnly
				}
				st.Members = append(st.Members, member)
			}
			if err := types.Bind(id, st); err != nil {
				return nil, nil, err
			}
		case spirv.OpTypePointer:
			id, err := cur.ReadID()
			if err != nil {
				return nil, nil, err
			}
			sc, err := cur.ReadUint32()
			if err != nil {
				return nil, nil, err
			}
			pointeeId, err := cur.ReadID()
			if err != nil {
				return nil, nil, err
			}
			pointee, err := types.Get(pointeeId)
			if err != nil {
				return nil, nil, err
			}
			if err := types.Bind(id, PointerType{StorageClass: spirv.StorageClass(sc), Pointee: pointee}); err != nil {
				return nil, nil, err
			}
		case spirv.OpTypeForwardPointer:
			id, err := cur.ReadID()
			if err != nil {
				return nil, nil, err
			}
			if err := types.ReserveForward(id); err != nil {
				return nil, nil, err
			}
		case spirv.OpTypeImage:
			id, err := cur.ReadID()
			if err != nil {
				return nil, nil, err
			}
			sampledId, err := cur.ReadID()
			if err != nil {
				return nil, nil, err
			}
			dim, err := cur.ReadUint32()
			if err != nil {
				return nil, nil, err
			}
			depth, err := cur.ReadUint32()
			if err != nil {
				return nil, nil, err
			}
			arrayed, err := cur.ReadUint32()
			if err != nil {
				return nil, nil, err
			}
			ms, err := cur.ReadUint32()
			if err != nil {
				return nil, nil, err
			}
			sampledFlag, err := cur.ReadUint32()
			if err != nil {
				return nil, nil, err
			}
			format, err := cur.ReadUint32()
			if err != nil {
				return nil, nil, err
			}
			sampled, err := types.Get(sampledId)
			if err != nil {
				return nil, nil, err
			}
			scalar, ok := sampled.(ScalarType)
			if !ok {
				return nil, nil, newError(ErrUnsupportedType, id, "sampled type of an image must be scalar")
			}
			img := ImageType{
				Sampled:   scalar,
				Dim:       spirv.Dim(dim),
				Depth:     Tri(depth),
				Arrayed:   arrayed != 0,
				MS:        ms != 0,
				IsSampled: Tri(sampledFlag),
				Format:    spirv.ImageFormat(format),
			}
			if err := types.Bind(id, img); err != nil {
				return nil, nil, err
			}
		case spirv.OpTypeSampler:
			id, err := cur.ReadID()
			if err != nil {
				return nil, nil, err
			}
			if err := types.Bind(id, SamplerType{}); err != nil {
				return nil, nil, err
			}
		case spirv.OpTypeSampledImage:
			id, err := cur.ReadID()
			if err != nil {
				return nil, nil, err
			}
			imgId, err := cur.ReadID()
			if err != nil {
				return nil, nil, err
			}
			img, err := types.Get(imgId)
			if err != nil {
				return nil, nil, err
			}
			it, ok := img.(ImageType)
			if !ok {
				return nil, nil, newError(ErrUnsupportedType, id, "OpTypeSampledImage operand must be an image type")
			}
			if err := types.Bind(id, SampledImageType{Image: it}); err != nil {
				return nil, nil, err
			}
		case spirv.OpTypeAccelerationStructureKHR:
			id, err := cur.ReadID()
			if err != nil {
				return nil, nil, err
			}
			if err := types.Bind(id, AccelerationStructureType{}); err != nil {
				return nil, nil, err
			}

		case spirv.OpConstantTrue, spirv.OpConstantFalse:
			typeId, err := cur.ReadID()
			if err != nil {
				return nil, nil, err
			}
			id, err := cur.ReadID()
			if err != nil {
				return nil, nil, err
			}
			if err := consts.Bind(&Constant{Id: id, Type: mustType(types, typeId), Scalar: boolScalar(instr.Opcode == spirv.OpConstantTrue)}); err != nil {
				return nil, nil, err
			}
		case spirv.OpConstant:
			typeId, err := cur.ReadID()
			if err != nil {
				return nil, nil, err
			}
			id, err := cur.ReadID()
			if err != nil {
				return nil, nil, err
			}
			t, err := types.Get(typeId)
			if err != nil {
				return nil, nil, err
			}
			scalar, ok := t.(ScalarType)
			if !ok {
				return nil, nil, newError(ErrUnsupportedType, id, "OpConstant result type must be scalar")
			}
			v := decodeLiteral(scalar, cur.ReadList())
			if err := consts.Bind(&Constant{Id: id, Type: t, Scalar: &v}); err != nil {
				return nil, nil, err
			}
		case spirv.OpConstantComposite, spirv.OpSpecConstantComposite:
			typeId, err := cur.ReadID()
			if err != nil {
				return nil, nil, err
			}
			id, err := cur.ReadID()
			if err != nil {
				return nil, nil, err
			}
			t, err := types.Get(typeId)
			if err != nil {
				return nil, nil, err
			}
			comps := cur.ReadList()
			if err := consts.Bind(&Constant{Id: id, Type: t, Components: comps, IsSpec: instr.Opcode == spirv.OpSpecConstantComposite}); err != nil {
				return nil, nil, err
			}
		case spirv.OpConstantNull:
			typeId, err := cur.ReadID()
			if err != nil {
				return nil, nil, err
			}
			id, err := cur.ReadID()
			if err != nil {
				return nil, nil, err
			}
			t, err := types.Get(typeId)
			if err != nil {
				return nil, nil, err
			}
			zero := Value{}
			if err := consts.Bind(&Constant{Id: id, Type: t, Scalar: &zero}); err != nil {
				return nil, nil, err
			}
		case spirv.OpSpecConstantTrue, spirv.OpSpecConstantFalse:
			typeId, err := cur.ReadID()
			if err != nil {
				return nil, nil, err
			}
			id, err := cur.ReadID()
			if err != nil {
				return nil, nil, err
			}
			v := boolScalar(instr.Opcode == spirv.OpSpecConstantTrue)
			c := &Constant{Id: id, Type: mustType(types, typeId), Scalar: v, IsSpec: true}
			attachSpecId(c, annots)
			if err := consts.Bind(c); err != nil {
				return nil, nil, err
			}
		case spirv.OpSpecConstant:
			typeId, err := cur.ReadID()
			if err != nil {
				return nil, nil, err
			}
			id, err := cur.ReadID()
			if err != nil {
				return nil, nil, err
			}
			t, err := types.Get(typeId)
			if err != nil {
				return nil, nil, err
			}
			scalar, ok := t.(ScalarType)
			if !ok {
				return nil, nil, newError(ErrUnsupportedType, id, "OpSpecConstant result type must be scalar")
			}
			v := decodeLiteral(scalar, cur.ReadList())
			c := &Constant{Id: id, Type: t, Scalar: &v, IsSpec: true}
			attachSpecId(c, annots)
			if err := consts.Bind(c); err != nil {
				return nil, nil, err
			}
		case spirv.OpSpecConstantOp:
			typeId, err := cur.ReadID()
			if err != nil {
				return nil, nil, err
			}
			id, err := cur.ReadID()
			if err != nil {
				return nil, nil, err
			}
			wrappedRaw, err := cur.ReadUint32()
			if err != nil {
				return nil, nil, err
			}
			t, err := types.Get(typeId)
			if err != nil {
				return nil, nil, err
			}
			operandIds := cur.ReadList()
			c := &Constant{Id: id, Type: t, IsSpec: true, SpecOp: &SpecOp{Opcode: spirv.OpCode(wrappedRaw), Operands: operandIds}}
			if err := consts.Bind(c); err != nil {
				return nil, nil, err
			}

		case spirv.OpVariable:
			typeId, err := cur.ReadID()
			if err != nil {
				return nil, nil, err
			}
			id, err := cur.ReadID()
			if err != nil {
				return nil, nil, err
			}
			pt, err := types.Get(typeId)
			if err != nil {
				return nil, nil, err
			}
			ptr, ok := pt.(PointerType)
			if !ok {
				return nil, nil, newError(ErrUnsupportedType, id, "OpVariable type must be a pointer")
			}
			if ptr.StorageClass == spirv.StorageClassFunction {
				break
			}
			v, err := builder.Build(id, ptr)
			if err != nil {
				return nil, nil, err
			}
			vars[id] = v

		case spirv.OpFunction:
			_, err := cur.ReadID() // result type, unused
			if err != nil {
				return nil, nil, err
			}
			id, err := cur.ReadID()
			if err != nil {
				return nil, nil, err
			}
			if err := graph.Declare(id, annots.Name(id, -1)); err != nil {
				return nil, nil, err
			}

		case spirv.OpEntryPoint:
			model, err := cur.ReadUint32()
			if err != nil {
				return nil, nil, err
			}
			funcId, err := cur.ReadID()
			if err != nil {
				return nil, nil, err
			}
			name, err := cur.ReadString()
			if err != nil {
				return nil, nil, err
			}
			decl := entryPointDecl{
				model:  spirv.ExecutionModel(model),
				funcId: funcId,
				name:   name,
				iface:  cur.ReadList(),
			}
			entryPoints = append(entryPoints, decl)

		case spirv.OpExecutionMode:
			target, err := cur.ReadID()
			if err != nil {
				return nil, nil, err
			}
			modeVal, err := cur.ReadUint32()
			if err != nil {
				return nil, nil, err
			}
			mode := ExecutionModeInfo{Mode: spirv.ExecutionMode(modeVal), Operands: cur.ReadList()}
			modeBuffer[target] = append(modeBuffer[target], mode)
		}
	}

	for i := range entryPoints {
		entryPoints[i].modes = modeBuffer[entryPoints[i].funcId]
	}

	return entryPoints, arrayLens, nil
}

// arrayLengthRef remembers which ConstantPool id produced an array
// type's element count, and the exact *uint32 cell that count was
// written into, so a specialization override applied after
// declarationPass can patch the already-bound ArrayType in place (see
// reevaluateArrayLengths in driver.go).
type arrayLengthRef struct {
	lengthConstId uint32
	count         *uint32
}

func mustType(types *TypeRegistry, id uint32) Type {
	t, err := types.Get(id)
	if err != nil {
		return ScalarType{Kind: ScalarBool}
	}
	return t
}

func boolScalar(v bool) *Value {
	b := boolResult(v)
	return &b
}

func attachSpecId(c *Constant, annots *Annotations) {
	if ops, ok := annots.Decoration(c.Id, -1, spirv.DecorationSpecId); ok && len(ops) > 0 {
		id := ops[0]
		c.SpecId = &id
	}
}

func decodeLiteral(t ScalarType, words []uint32) Value {
	if len(words) == 0 {
		return Value{Kind: t.Kind, Width: t.Width}
	}
	bits := uint64(words[0])
	if t.Width > 32 && len(words) > 1 {
		bits |= uint64(words[1]) << 32
	}
	return Value{Kind: t.Kind, Width: t.Width, Bits: bits}
}
