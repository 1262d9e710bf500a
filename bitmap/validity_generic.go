//go:build !amd64 && !arm64

package bitmap

func expandValidity(validity []byte, length int) []byte {
	return expandScalar(validity, length)
}
