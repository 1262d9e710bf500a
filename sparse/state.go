// Package sparse decodes ClickHouse's sparse column encoding — a
// run-length offset stream naming which rows carry a value — into a dense
// Arrow array, and provides a test fixture encoder for the inverse
// direction. The codec only ever reads sparse columns; writing dense
// columns out is the only direction this library produces on the wire.
package sparse

// endOfGranuleFlag marks the final varint of a granule's offset run; the
// remaining 62 bits of that varint are the run length.
const endOfGranuleFlag = uint64(1) << 62

// CarryState threads across successive ReadOffsets calls on the same
// column: a granule's offset run can overshoot the rows requested by one
// call and name rows that belong to the next.
type CarryState struct {
	// TrailingDefaults is the count of default (no-value) rows at the
	// start of the next call that this granule's tail already accounted
	// for.
	TrailingDefaults uint64
	// PendingValue is true when this call's granule named a value at or
	// beyond rowsWanted. The next call records it at the position reached
	// after skipping TrailingDefaults.
	PendingValue bool
}
