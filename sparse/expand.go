package sparse

import (
	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/decimal128"
	"github.com/apache/arrow/go/v17/arrow/decimal256"
	"github.com/apache/arrow/go/v17/arrow/memory"

	"github.com/chproto/arrowcodec/errs"
)

// Expand materializes a dense Arrow array of totalRows elements from a
// sparse column: values holds one entry per position in positions, all
// other rows take the type's zero value. values.DataType() drives the
// dispatch; unsupported types fail rather than silently returning zeros.
func Expand(values arrow.Array, positions []uint64, totalRows int, mem memory.Allocator) (arrow.Array, error) {
	if values.Len() != len(positions) {
		return nil, errs.Errorf(errs.Protocol, nil,
			"sparse values length %d does not match positions length %d", values.Len(), len(positions))
	}

	switch dt := values.DataType().(type) {
	case *arrow.Int8Type:
		return expandPrimitive[int8](values.(*array.Int8), positions, totalRows,
			func() *array.Int8Builder { return array.NewInt8Builder(mem) }), nil
	case *arrow.Int16Type:
		return expandPrimitive[int16](values.(*array.Int16), positions, totalRows,
			func() *array.Int16Builder { return array.NewInt16Builder(mem) }), nil
	case *arrow.Int32Type:
		return expandPrimitive[int32](values.(*array.Int32), positions, totalRows,
			func() *array.Int32Builder { return array.NewInt32Builder(mem) }), nil
	case *arrow.Int64Type:
		return expandPrimitive[int64](values.(*array.Int64), positions, totalRows,
			func() *array.Int64Builder { return array.NewInt64Builder(mem) }), nil
	case *arrow.Uint8Type:
		return expandPrimitive[uint8](values.(*array.Uint8), positions, totalRows,
			func() *array.Uint8Builder { return array.NewUint8Builder(mem) }), nil
	case *arrow.Uint16Type:
		return expandPrimitive[uint16](values.(*array.Uint16), positions, totalRows,
			func() *array.Uint16Builder { return array.NewUint16Builder(mem) }), nil
	case *arrow.Uint32Type:
		return expandPrimitive[uint32](values.(*array.Uint32), positions, totalRows,
			func() *array.Uint32Builder { return array.NewUint32Builder(mem) }), nil
	case *arrow.Uint64Type:
		return expandPrimitive[uint64](values.(*array.Uint64), positions, totalRows,
			func() *array.Uint64Builder { return array.NewUint64Builder(mem) }), nil
	case *arrow.Float32Type:
		return expandPrimitive[float32](values.(*array.Float32), positions, totalRows,
			func() *array.Float32Builder { return array.NewFloat32Builder(mem) }), nil
	case *arrow.Float64Type:
		return expandPrimitive[float64](values.(*array.Float64), positions, totalRows,
			func() *array.Float64Builder { return array.NewFloat64Builder(mem) }), nil
	case *arrow.Date32Type:
		return expandPrimitive[arrow.Date32](values.(*array.Date32), positions, totalRows,
			func() *array.Date32Builder { return array.NewDate32Builder(mem) }), nil
	case *arrow.Date64Type:
		return expandPrimitive[arrow.Date64](values.(*array.Date64), positions, totalRows,
			func() *array.Date64Builder { return array.NewDate64Builder(mem) }), nil
	case *arrow.BooleanType:
		return expandBoolean(values.(*array.Boolean), positions, totalRows, mem), nil
	case *arrow.StringType:
		return expandString(values.(*array.String), positions, totalRows, mem), nil
	case *arrow.LargeStringType:
		return expandLargeString(values.(*array.LargeString), positions, totalRows, mem), nil
	case *arrow.BinaryType:
		return expandBinary(values.(*array.Binary), positions, totalRows, mem), nil
	case *arrow.LargeBinaryType:
		return expandLargeBinary(values.(*array.LargeBinary), positions, totalRows, mem), nil
	case *arrow.FixedSizeBinaryType:
		return expandFixedSizeBinary(values.(*array.FixedSizeBinary), positions, totalRows, dt, mem), nil
	case *arrow.TimestampType:
		return expandTimestamp(values.(*array.Timestamp), positions, totalRows, dt, mem), nil
	case *arrow.Decimal128Type:
		return expandDecimal128(values.(*array.Decimal128), positions, totalRows, dt, mem), nil
	case *arrow.Decimal256Type:
		return expandDecimal256(values.(*array.Decimal256), positions, totalRows, dt, mem), nil
	default:
		return nil, errs.Errorf(errs.Unimplemented, nil,
			"sparse expansion not implemented for type %s", values.DataType())
	}
}

type primArray[T any] interface {
	Value(i int) T
	IsNull(i int) bool
	Len() int
}

type primBuilder[T any] interface {
	Append(T)
	AppendNull()
	NewArray() arrow.Array
}

func expandPrimitive[T any, A primArray[T], B primBuilder[T]](values A, positions []uint64, totalRows int, newBuilder func() B) arrow.Array {
	b := newBuilder()
	cursor := 0
	for row := 0; row < totalRows; row++ {
		if cursor < len(positions) && int(positions[cursor]) == row {
			if values.IsNull(cursor) {
				b.AppendNull()
			} else {
				b.Append(values.Value(cursor))
			}
			cursor++
		} else {
			var zero T
			b.Append(zero)
		}
	}
	return b.NewArray()
}

func expandBoolean(values *array.Boolean, positions []uint64, totalRows int, mem memory.Allocator) arrow.Array {
	b := array.NewBooleanBuilder(mem)
	cursor := 0
	for row := 0; row < totalRows; row++ {
		if cursor < len(positions) && int(positions[cursor]) == row {
			if values.IsNull(cursor) {
				b.AppendNull()
			} else {
				b.Append(values.Value(cursor))
			}
			cursor++
		} else {
			b.Append(false)
		}
	}
	return b.NewArray()
}

func expandString(values *array.String, positions []uint64, totalRows int, mem memory.Allocator) arrow.Array {
	b := array.NewStringBuilder(mem)
	cursor := 0
	for row := 0; row < totalRows; row++ {
		if cursor < len(positions) && int(positions[cursor]) == row {
			if values.IsNull(cursor) {
				b.AppendNull()
			} else {
				b.Append(values.Value(cursor))
			}
			cursor++
		} else {
			b.Append("")
		}
	}
	return b.NewArray()
}

func expandLargeString(values *array.LargeString, positions []uint64, totalRows int, mem memory.Allocator) arrow.Array {
	b := array.NewLargeStringBuilder(mem)
	cursor := 0
	for row := 0; row < totalRows; row++ {
		if cursor < len(positions) && int(positions[cursor]) == row {
			if values.IsNull(cursor) {
				b.AppendNull()
			} else {
				b.Append(values.Value(cursor))
			}
			cursor++
		} else {
			b.Append("")
		}
	}
	return b.NewArray()
}

func expandBinary(values *array.Binary, positions []uint64, totalRows int, mem memory.Allocator) arrow.Array {
	b := array.NewBinaryBuilder(mem, arrow.BinaryTypes.Binary)
	cursor := 0
	for row := 0; row < totalRows; row++ {
		if cursor < len(positions) && int(positions[cursor]) == row {
			if values.IsNull(cursor) {
				b.AppendNull()
			} else {
				b.Append(values.Value(cursor))
			}
			cursor++
		} else {
			b.Append([]byte{})
		}
	}
	return b.NewArray()
}

func expandLargeBinary(values *array.LargeBinary, positions []uint64, totalRows int, mem memory.Allocator) arrow.Array {
	b := array.NewBinaryBuilder(mem, arrow.BinaryTypes.LargeBinary)
	cursor := 0
	for row := 0; row < totalRows; row++ {
		if cursor < len(positions) && int(positions[cursor]) == row {
			if values.IsNull(cursor) {
				b.AppendNull()
			} else {
				b.Append(values.Value(cursor))
			}
			cursor++
		} else {
			b.Append([]byte{})
		}
	}
	return b.NewArray()
}

func expandFixedSizeBinary(values *array.FixedSizeBinary, positions []uint64, totalRows int, dt *arrow.FixedSizeBinaryType, mem memory.Allocator) arrow.Array {
	b := array.NewFixedSizeBinaryBuilder(mem, dt)
	zero := make([]byte, dt.ByteWidth)
	cursor := 0
	for row := 0; row < totalRows; row++ {
		if cursor < len(positions) && int(positions[cursor]) == row {
			if values.IsNull(cursor) {
				b.AppendNull()
			} else {
				b.Append(values.Value(cursor))
			}
			cursor++
		} else {
			b.Append(zero)
		}
	}
	return b.NewArray()
}

func expandTimestamp(values *array.Timestamp, positions []uint64, totalRows int, dt *arrow.TimestampType, mem memory.Allocator) arrow.Array {
	b := array.NewTimestampBuilder(mem, dt)
	cursor := 0
	for row := 0; row < totalRows; row++ {
		if cursor < len(positions) && int(positions[cursor]) == row {
			if values.IsNull(cursor) {
				b.AppendNull()
			} else {
				b.Append(values.Value(cursor))
			}
			cursor++
		} else {
			b.Append(0)
		}
	}
	return b.NewArray()
}

func expandDecimal128(values *array.Decimal128, positions []uint64, totalRows int, dt *arrow.Decimal128Type, mem memory.Allocator) arrow.Array {
	b := array.NewDecimal128Builder(mem, dt)
	cursor := 0
	for row := 0; row < totalRows; row++ {
		if cursor < len(positions) && int(positions[cursor]) == row {
			if values.IsNull(cursor) {
				b.AppendNull()
			} else {
				b.Append(values.Value(cursor))
			}
			cursor++
		} else {
			b.Append(decimal128.Num{})
		}
	}
	return b.NewArray()
}

func expandDecimal256(values *array.Decimal256, positions []uint64, totalRows int, dt *arrow.Decimal256Type, mem memory.Allocator) arrow.Array {
	b := array.NewDecimal256Builder(mem, dt)
	cursor := 0
	for row := 0; row < totalRows; row++ {
		if cursor < len(positions) && int(positions[cursor]) == row {
			if values.IsNull(cursor) {
				b.AppendNull()
			} else {
				b.Append(values.Value(cursor))
			}
			cursor++
		} else {
			b.Append(decimal256.Num{})
		}
	}
	return b.NewArray()
}
