package sparse

import (
	"io"

	"github.com/chproto/arrowcodec/errs"
	"github.com/chproto/arrowcodec/varint"
)

// Hooks receives sparse-decode observability callbacks. nil is a safe nop.
type Hooks interface {
	SparseCarryRetained(trailingDefaults uint64, pendingValue bool)
}

// ReadOffsets decodes exactly one granule's varint stream from r — always
// reading through to that granule's end-of-granule marker regardless of
// rowsWanted — folding in carry state left over from the previous granule
// on this column and updating it for the next. Positions at or beyond
// rowsWanted are consumed, to keep the byte stream aligned for whatever is
// read next, but are not included in the returned slice.
func ReadOffsets(r io.Reader, rowsWanted uint64, state *CarryState, hooks Hooks) ([]uint64, error) {
	var positions []uint64
	position := uint64(0)

	if state.TrailingDefaults > 0 {
		position += state.TrailingDefaults
		state.TrailingDefaults = 0
	}
	if state.PendingValue {
		if position < rowsWanted {
			positions = append(positions, position)
		}
		position++
		state.PendingValue = false
	}

	for {
		g, err := readVarint(r)
		if err != nil {
			return nil, errs.Errorf(errs.Io, err, "read sparse offset varint")
		}
		eog := g&endOfGranuleFlag != 0
		run := g &^ endOfGranuleFlag
		position += run

		if eog {
			if position > rowsWanted {
				state.TrailingDefaults = position - rowsWanted
				if hooks != nil {
					hooks.SparseCarryRetained(state.TrailingDefaults, state.PendingValue)
				}
			}
			break
		}

		if position < rowsWanted {
			positions = append(positions, position)
			position++
		} else {
			// Value falls outside the requested window; remember it as
			// pending and keep looping (not returning) so the remaining
			// varints in this granule are still consumed, keeping the
			// stream aligned for whatever reads this column next. Position
			// does not advance past this row: the next group's run length
			// is still measured from here, not from one row further.
			state.PendingValue = true
		}
	}

	return positions, nil
}

func readVarint(r io.Reader) (uint64, error) {
	var buf [varint.MaxLen]byte
	for i := 0; i < varint.MaxLen; i++ {
		if _, err := io.ReadFull(r, buf[i:i+1]); err != nil {
			return 0, err
		}
		if buf[i] < 0x80 {
			v, n := varint.Decode(buf[:i+1])
			if n == 0 {
				return 0, io.ErrUnexpectedEOF
			}
			return v, nil
		}
	}
	return 0, io.ErrUnexpectedEOF
}
