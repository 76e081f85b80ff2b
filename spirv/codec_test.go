package spirv

import (
	"errors"
	"reflect"
	"testing"
)

func sampleModule() (Header, []Instruction) {
	header := Header{Version: Version1_3, Generator: 0, IDBound: 3, Schema: 0}
	instrs := []Instruction{
		{Opcode: OpCapability, Operands: []uint32{uint32(CapabilityShader)}},
		{Opcode: OpMemoryModel, Operands: []uint32{uint32(AddressingModelLogical), uint32(MemoryModelGLSL450)}},
		{Opcode: OpTypeVoid, Operands: []uint32{1}},
	}
	return header, instrs
}

// TestRoundTrip verifies testable property #1: decode(encode(M)) == M.
func TestRoundTrip(t *testing.T) {
	header, instrs := sampleModule()
	data := Encode(header, instrs)

	gotHeader, gotInstrs, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if gotHeader != header {
		t.Errorf("header mismatch: got %+v, want %+v", gotHeader, header)
	}
	if !reflect.DeepEqual(gotInstrs, instrs) {
		t.Errorf("instructions mismatch: got %+v, want %+v", gotInstrs, instrs)
	}
}

func TestDecodeRejectsShortInput(t *testing.T) {
	_, _, err := Decode([]byte{1, 2, 3})
	if err == nil {
		t.Fatal("expected error for misaligned input")
	}
	var serr *Error
	if !errors.As(err, &serr) || serr.Kind != ErrMalformed {
		t.Errorf("expected Malformed, got %v", err)
	}
}

func TestDecodeRejectsTruncatedInstruction(t *testing.T) {
	header, instrs := sampleModule()
	data := Encode(header, instrs)
	// Chop off the last instruction's final word so its declared word
	// count overruns the buffer.
	data = data[:len(data)-4]

	_, _, err := Decode(data)
	if err == nil {
		t.Fatal("expected truncation error")
	}
	var serr *Error
	if !errors.As(err, &serr) || serr.Kind != ErrTruncated {
		t.Errorf("expected Truncated, got %v", err)
	}
}

func TestDecodeBigEndian(t *testing.T) {
	header, instrs := sampleModule()
	header.BigEndian = true
	data := Encode(header, instrs)

	if data[0] != 0x07 {
		t.Fatalf("expected first magic byte 0x07 for big-endian, got 0x%02x", data[0])
	}

	gotHeader, gotInstrs, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !gotHeader.BigEndian {
		t.Error("expected BigEndian to be detected")
	}
	if !reflect.DeepEqual(gotInstrs, instrs) {
		t.Errorf("instructions mismatch: got %+v, want %+v", gotInstrs, instrs)
	}
}

func TestCursorReadString(t *testing.T) {
	words := PackString("main")
	c := NewCursor(words)
	s, err := c.ReadString()
	if err != nil {
		t.Fatalf("ReadString: %v", err)
	}
	if s != "main" {
		t.Errorf("got %q, want %q", s, "main")
	}
	if c.Len() != 0 {
		t.Errorf("expected cursor exhausted, %d words remain", c.Len())
	}
}

func TestCursorReadStringUnterminated(t *testing.T) {
	c := NewCursor([]uint32{0x64616161}) // "aaad" with no NUL byte
	_, err := c.ReadString()
	if err == nil {
		t.Fatal("expected unterminated string error")
	}
}

func TestCursorReadEnumUnencoded(t *testing.T) {
	c := NewCursor([]uint32{9999})
	_, err := c.ReadEnum(EnumStorageClass)
	if err == nil {
		t.Fatal("expected unencoded enum error")
	}
}

func TestEnumNameAndValueRoundTrip(t *testing.T) {
	name, ok := EnumName(EnumDecoration, uint32(DecorationBinding))
	if !ok || name != "Binding" {
		t.Fatalf("EnumName(Binding) = %q, %v", name, ok)
	}
	v, ok := EnumValue(EnumDecoration, "Binding")
	if !ok || v != uint32(DecorationBinding) {
		t.Fatalf("EnumValue(Binding) = %d, %v", v, ok)
	}
}

func TestOpCodeNameRoundTrip(t *testing.T) {
	if OpLoad.Name() != "OpLoad" {
		t.Errorf("got %q", OpLoad.Name())
	}
	op, ok := ParseOpCode("OpLoad")
	if !ok || op != OpLoad {
		t.Errorf("ParseOpCode(OpLoad) = %v, %v", op, ok)
	}
}
