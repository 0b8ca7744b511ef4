// Package utils holds small helpers shared by the editing packages.
package utils

import "unicode/utf8"

// RuneIndexToByteOffset converts a 0-based rune index to a byte offset in s.
// The index just past the last rune maps to len(s). Returns -1 if runeIndex is out of bounds.
func RuneIndexToByteOffset(s string, runeIndex int) int {
	if runeIndex < 0 {
		return -1
	}
	currentRune := 0
	for byteOffset := range s {
		if currentRune == runeIndex {
			return byteOffset
		}
		currentRune++
	}
	if currentRune == runeIndex {
		return len(s)
	}
	return -1
}

// ByteOffsetToRuneIndex converts a byte offset in s to a 0-based rune index.
// Offsets inside a multi-byte rune count only the runes that end before them.
func ByteOffsetToRuneIndex(s string, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset > len(s) {
		byteOffset = len(s)
	}
	runeIndex := 0
	for currentOffset := 0; currentOffset < byteOffset; {
		_, size := utf8.DecodeRuneInString(s[currentOffset:])
		if currentOffset+size > byteOffset {
			break
		}
		currentOffset += size
		runeIndex++
	}
	return runeIndex
}
