// Package math holds the integer helpers the block arithmetic needs.
package math

// Integer is any integer type, including named ones like `Byte` and `Block`.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

func Min[T Integer](a, b T) T {
	if b < a {
		return b
	}
	return a
}

func Max[T Integer](a, b T) T {
	if b > a {
		return b
	}
	return a
}

// DivRoundUp divides non-negative `n` by `d`, rounding any remainder up.
// It's used to count the blocks `n` bytes span.
func DivRoundUp[T Integer](n, d T) T {
	return (n + d - 1) / d
}
