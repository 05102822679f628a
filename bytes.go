package gpuobj

import "unsafe"

// sliceBytes views the memory of s as bytes. T must not contain pointers.
func sliceBytes[T any](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), len(s)*int(unsafe.Sizeof(zero)))
}

// sizeOf returns the byte size of T. Zero-sized types panic: they cannot
// describe device memory.
func sizeOf[T any]() int {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size == 0 {
		panic("gpuobj: zero-sized element type")
	}
	return size
}

// makeElements returns a slice of n zero elements and its byte view.
func makeElements[T any](n int) ([]T, []byte) {
	s := make([]T, n)
	return s, sliceBytes(s)
}
