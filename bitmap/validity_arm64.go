//go:build arm64

package bitmap

// NEON intrinsics showed no advantage over the autovectorized scalar loop
// here either; see DESIGN.md.
func expandValidity(validity []byte, length int) []byte {
	return expandScalar(validity, length)
}
