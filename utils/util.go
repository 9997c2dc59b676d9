package utils

import "bytes"

// IndexOf returns the index of the first c in b, or -1.
func IndexOf(b []byte, c byte) int {
	return bytes.IndexByte(b, c)
}

// CString returns b up to, not including, the first NUL byte.
func CString(b []byte) []byte {
	if i := IndexOf(b, 0); i >= 0 {
		return b[:i]
	}
	return b
}
