package util

import (
	"path/filepath"
	"strings"

	"github.com/jsphweid/flattenmidi/constants"
	"golang.org/x/exp/constraints"
)

// OutputPath derives "<input without extension>_Flattened.mid".
func OutputPath(input string) string {
	stem := strings.TrimSuffix(input, filepath.Ext(input))
	return stem + constants.GetOutputSuffix() + ".mid"
}

func Min[A constraints.Integer](num1 A, num2 A) A {
	if num1 > num2 {
		return num2
	}
	return num1
}

func Sum[A constraints.Integer](nums []A) uint64 {
	var total uint64
	for _, v := range nums {
		total += uint64(v)
	}
	return total
}

func Lens[A any](lists [][]A) []int {
	res := make([]int, 0, len(lists))
	for _, l := range lists {
		res = append(res, len(l))
	}
	return res
}
