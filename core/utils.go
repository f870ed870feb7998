package core

import "math"

// AddCost adds two costs, saturating at math.MaxUint32 instead of wrapping
func AddCost(a, b uint32) uint32 {
	if a > math.MaxUint32-b {
		return math.MaxUint32
	}
	return a + b
}
