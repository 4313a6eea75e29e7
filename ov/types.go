package ov

import (
	"fmt"
	"strings"
)

// Type is a tensor element type.
type Type struct {
	name     string
	bitwidth int
	real     bool
	signed   bool
}

// Element types.
var (
	Dynamic    = Type{name: "dynamic"}
	Boolean    = Type{name: "boolean", bitwidth: 8}
	BF16       = Type{name: "bf16", bitwidth: 16, real: true, signed: true}
	F16        = Type{name: "f16", bitwidth: 16, real: true, signed: true}
	F32        = Type{name: "f32", bitwidth: 32, real: true, signed: true}
	F64        = Type{name: "f64", bitwidth: 64, real: true, signed: true}
	I4         = Type{name: "i4", bitwidth: 4, signed: true}
	I8         = Type{name: "i8", bitwidth: 8, signed: true}
	I16        = Type{name: "i16", bitwidth: 16, signed: true}
	I32        = Type{name: "i32", bitwidth: 32, signed: true}
	I64        = Type{name: "i64", bitwidth: 64, signed: true}
	U1         = Type{name: "u1", bitwidth: 1}
	U4         = Type{name: "u4", bitwidth: 4}
	U8         = Type{name: "u8", bitwidth: 8}
	U16        = Type{name: "u16", bitwidth: 16}
	U32        = Type{name: "u32", bitwidth: 32}
	U64        = Type{name: "u64", bitwidth: 64}
	StringType = Type{name: "string"}
)

var typesByName = map[string]Type{}

func init() {
	for _, t := range []Type{Dynamic, Boolean, BF16, F16, F32, F64, I4, I8, I16, I32, I64, U1, U4, U8, U16, U32, U64, StringType} {
		typesByName[t.name] = t
	}
}

// ParseType resolves an element type by name, e.g. "f32".
func ParseType(name string) (Type, error) {
	t, ok := typesByName[strings.ToLower(name)]
	if !ok {
		return Type{}, fmt.Errorf("unknown element type %q", name)
	}

	return t, nil
}

func (t Type) String() string { return t.name }

// Bitwidth returns the number of bits per element; 0 for dynamic and string.
func (t Type) Bitwidth() int { return t.bitwidth }

// IsReal reports whether t is a floating point type.
func (t Type) IsReal() bool { return t.real }

// IsSigned reports whether t can hold negative values.
func (t Type) IsSigned() bool { return t.signed }

// IsDynamic reports whether t is the dynamic placeholder type.
func (t Type) IsDynamic() bool { return t == Dynamic }

// ByteSize returns the storage needed for n elements of t, rounding sub-byte types up.
func (t Type) ByteSize(n uint64) uint64 {
	return (n*uint64(t.bitwidth) + 7) / 8
}
