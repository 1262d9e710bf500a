package bitmap

import (
	"io"
	"net"
)

// WriteVectored writes a null mask immediately followed by the column's
// data bytes through net.Buffers: a single vectored write when w is a
// connection that supports one, two back-to-back Write calls otherwise. Array and Map
// columns carry no null mask of their own (their child columns do), so
// callers pass a nil mask for those and WriteVectored writes data alone.
func WriteVectored(w io.Writer, nullMask, data []byte) (int64, error) {
	if len(nullMask) == 0 {
		n, err := w.Write(data)
		return int64(n), err
	}

	buffers := net.Buffers{nullMask, data}
	return buffers.WriteTo(w)
}
