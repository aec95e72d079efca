package pattern

// Checksum computes the 8-bit record checksum: the byte sum of data in
// 2's complement. A record including its checksum sums to zero.
func Checksum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum += b
	}
	return ^sum + 1
}
