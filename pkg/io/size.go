package io

import (
	"errors"
	"fmt"
	"reflect"
)

var errAdditionalData = errors.New("additional data after the end of the buffer")

// Sizer is implemented by types that know the exact size of their binary
// representation without serializing for real.
type Sizer interface {
	Size() int
}

// GetVarIntSize returns the size in number of bytes of a variable integer.
// Reference: GetVarSize(int value), https://github.com/neo-project/neo/blob/master/src/neo/IO/Helper.cs
func GetVarIntSize(value int) int {
	var size uintptr

	if value < 0xFD {
		size = 1 // unit8
	} else if value <= 0xFFFF {
		size = 3 // byte + uint16
	} else {
		size = 5 // byte + uint32
	}
	return int(size)
}

// GetVarStringSize returns the size of a variable string.
func GetVarStringSize(value string) int {
	valueSize := len([]byte(value))
	return GetVarIntSize(valueSize) + valueSize
}

// GetVarSize returns the serialized size of the given value: length-prefixed
// for strings, byte slices and slices of Sizer implementors, varint-encoded
// for integers.
func GetVarSize(value any) int {
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.String:
		return GetVarStringSize(v.String())
	case reflect.Int,
		reflect.Int8,
		reflect.Int16,
		reflect.Int32,
		reflect.Int64:
		return GetVarIntSize(int(v.Int()))
	case reflect.Uint,
		reflect.Uint8,
		reflect.Uint16,
		reflect.Uint32,
		reflect.Uint64:
		return GetVarIntSize(int(v.Uint()))
	case reflect.Slice, reflect.Array:
		valueLength := v.Len()
		valueSize := 0

		if valueLength != 0 {
			switch reflect.ValueOf(value).Index(0).Interface().(type) {
			case Sizer:
				for i := 0; i < valueLength; i++ {
					elem := v.Index(i).Interface().(Sizer)
					valueSize += elem.Size()
				}
			case uint8, int8:
				valueSize = valueLength
			case uint16, int16:
				valueSize = valueLength * 2
			case uint32, int32:
				valueSize = valueLength * 4
			case uint64, int64:
				valueSize = valueLength * 8
			}
		}

		return GetVarIntSize(valueLength) + valueSize
	default:
		panic(fmt.Sprintf("unable to calculate GetVarSize for %s", reflect.TypeOf(value)))
	}
}
