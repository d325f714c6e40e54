package utils

// Clamp は、value を [low, high] の範囲に収めます。
func Clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
