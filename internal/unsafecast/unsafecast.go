// Package unsafecast exposes the handful of unsafe conversions that the arena
// and wire decoders need, so that text copied once into arena memory can be
// handed to callers as a string without a second copy.
//
//	With great power comes great responsibility.
package unsafecast

import "unsafe"

// BytesToString converts a byte slice to a string value. The returned string
// shares the backing array of the byte slice.
//
// Programs using this function are responsible for ensuring that the data
// slice is not modified while the returned string is in use, otherwise the
// guarantee of immutability of Go string values will be violated, resulting
// in undefined behavior. The arena satisfies this by never mutating bytes it
// has already handed out.
func BytesToString(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(data), len(data))
}

// StringToBytes applies the inverse conversion of BytesToString.
func StringToBytes(data string) []byte {
	if len(data) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(data), len(data))
}
