package bmstime

// GCD calculates the greatest common divisor of a and b using Euclid's
// algorithm. Grounded on original_source/src/bms/math.rs and
// original_source/src/util.rs, which both carry the identical helper.
func GCD(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// LCM calculates the least common multiple of a and b.
func LCM(a, b uint64) uint64 {
	if a == 0 || b == 0 {
		return 0
	}
	return a / GCD(a, b) * b
}
