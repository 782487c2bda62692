package utils

func ContainsString(targetString string, sliceOfStrings []string) bool {
	for i := range sliceOfStrings {
		if sliceOfStrings[i] == targetString {
			return true
		}
	}
	return false
}

func ContainsInt(targetInt int, sliceOfInts []int) bool {
	for i := range sliceOfInts {
		if sliceOfInts[i] == targetInt {
			return true
		}
	}
	return false
}

// ContainsFloat compares with exact equality, values are expected to be exact decimal amounts such as 0.5 or 1.25
func ContainsFloat(targetFloat float64, sliceOfFloats []float64) bool {
	for i := range sliceOfFloats {
		if sliceOfFloats[i] == targetFloat {
			return true
		}
	}
	return false
}
