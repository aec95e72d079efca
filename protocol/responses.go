package protocol

// Compare checks read-back data against the expected bytes written at offset.
// It returns one ByteDiff per differing position, or nil when both are equal.
// A short read counts every missing position as differing with an actual value of 0.
func Compare(offset uint16, expected, actual []byte) []ByteDiff {
	var diffs []ByteDiff
	for i, want := range expected {
		var got byte
		if i < len(actual) {
			got = actual[i]
		}
		if i >= len(actual) || got != want {
			diffs = append(diffs, ByteDiff{
				Index:    i,
				Offset:   offset + uint16(i),
				Expected: want,
				Actual:   got,
			})
		}
	}
	return diffs
}
