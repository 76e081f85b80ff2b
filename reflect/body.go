package reflect

import "github.com/gogpu/spirvreflect/spirv"

// bodyPass is the driver's second pass (§4.8): it scans every
// function body for pointer-chasing instructions and records, against
// the currently open function, which module-scope variable each
// resolves back to and whether the access is a read or a write.
//
// Each instruction's operand words are read positionally through a
// spirv.Cursor (C2), matching declarationPass, rather than indexed
// directly into instr.Operands.
func bodyPass(instrs []spirv.Instruction, graph *FuncGraph, vars map[uint32]*Variable) error {
	pointerBase := make(map[uint32]uint32) // any pointer-typed id -> the module variable it traces back to

	var current uint32
	inFunction := false

	resolve := func(id uint32) (uint32, bool) {
		if _, ok := vars[id]; ok {
			return id, true
		}
		base, ok := pointerBase[id]
		return base, ok
	}

	for _, instr := range instrs {
		cur := spirv.NewCursor(instr.Operands)
		switch instr.Opcode {
		case spirv.OpFunction:
			if _, err := cur.ReadID(); err != nil { // result type, unused
				return err
			}
			id, err := cur.ReadID()
			if err != nil {
				return err
			}
			current = id
			inFunction = true
			continue
		case spirv.OpFunctionEnd:
			inFunction = false
			continue
		}
		if !inFunction {
			continue
		}

		switch instr.Opcode {
		case spirv.OpAccessChain, spirv.OpInBoundsAccessChain, spirv.OpPtrAccessChain:
			resultId, basePointerId, err := readResultAndOperand(cur)
			if err != nil {
				return err
			}
			if base, ok := resolve(basePointerId); ok {
				pointerBase[resultId] = base
			}
		case spirv.OpImageTexelPointer:
			resultId, imageId, err := readResultAndOperand(cur)
			if err != nil {
				return err
			}
			if base, ok := resolve(imageId); ok {
				pointerBase[resultId] = base
			}
		case spirv.OpCopyObject:
			resultId, operandId, err := readResultAndOperand(cur)
			if err != nil {
				return err
			}
			if base, ok := resolve(operandId); ok {
				pointerBase[resultId] = base
			}

		case spirv.OpLoad:
			_, pointerId, err := readResultAndOperand(cur)
			if err != nil {
				return err
			}
			if base, ok := resolve(pointerId); ok {
				if err := graph.RecordRead(current, base); err != nil {
					return err
				}
			}
		case spirv.OpStore:
			pointerId, err := cur.ReadID()
			if err != nil {
				return err
			}
			if base, ok := resolve(pointerId); ok {
				if err := graph.RecordWrite(current, base); err != nil {
					return err
				}
			}
		case spirv.OpCopyMemory:
			targetId, err := cur.ReadID()
			if err != nil {
				return err
			}
			sourceId, err := cur.ReadID()
			if err != nil {
				return err
			}
			if base, ok := resolve(targetId); ok {
				if err := graph.RecordWrite(current, base); err != nil {
					return err
				}
			}
			if base, ok := resolve(sourceId); ok {
				if err := graph.RecordRead(current, base); err != nil {
					return err
				}
			}
		case spirv.OpAtomicLoad:
			_, pointerId, err := readResultAndOperand(cur)
			if err != nil {
				return err
			}
			if base, ok := resolve(pointerId); ok {
				if err := graph.RecordRead(current, base); err != nil {
					return err
				}
			}
		case spirv.OpAtomicStore:
			pointerId, err := cur.ReadID()
			if err != nil {
				return err
			}
			if base, ok := resolve(pointerId); ok {
				if err := graph.RecordWrite(current, base); err != nil {
					return err
				}
			}
		case spirv.OpAtomicExchange, spirv.OpAtomicIIncrement, spirv.OpAtomicIDecrement,
			spirv.OpAtomicIAdd, spirv.OpAtomicISub:
			// All of these share the [resultType, resultId, pointer, scope,
			// semantics, ...] layout, so the pointer is always the third
			// word read off the cursor.
			_, pointerId, err := readResultAndOperand(cur)
			if err != nil {
				return err
			}
			if base, ok := resolve(pointerId); ok {
				if err := graph.RecordRead(current, base); err != nil {
					return err
				}
				if err := graph.RecordWrite(current, base); err != nil {
					return err
				}
			}
		case spirv.OpArrayLength:
			_, pointerId, err := readResultAndOperand(cur)
			if err != nil {
				return err
			}
			if base, ok := resolve(pointerId); ok {
				if err := graph.RecordRead(current, base); err != nil {
					return err
				}
			}

		case spirv.OpFunctionCall:
			_, funcId, err := readResultAndOperand(cur)
			if err != nil {
				return err
			}
			if err := graph.RecordCall(current, funcId); err != nil {
				return err
			}
		}
	}

	return nil
}

// readResultAndOperand reads the [resultType, resultId, operand] prefix
// shared by every instruction handled above, returning the result id
// and the first operand word that follows it.
func readResultAndOperand(cur *spirv.Cursor) (resultId uint32, operand uint32, err error) {
	if _, err = cur.ReadID(); err != nil { // result type
		return 0, 0, err
	}
	if resultId, err = cur.ReadID(); err != nil {
		return 0, 0, err
	}
	if operand, err = cur.ReadID(); err != nil {
		return 0, 0, err
	}
	return resultId, operand, nil
}
