//go:build amd64

package bitmap

// On amd64 the scalar unrolled loop is left to the compiler; a hand-written
// AVX2 path was tried and dropped; see DESIGN.md.
func expandValidity(validity []byte, length int) []byte {
	return expandScalar(validity, length)
}
