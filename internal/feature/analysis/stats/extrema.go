package stats

import "sort"

// LocalExtrema returns the indices of strict local maxima and minima of ys, in ascending
// order. Index i qualifies when ys[i] is strictly greater (less) than every other value in
// [i-halfWidth, i+halfWidth]. Indices closer than halfWidth to either end are never reported.
func LocalExtrema(ys []float64, halfWidth int) (peaks, troughs []int) {
	if halfWidth < 1 {
		halfWidth = 1
	}
	peaks, troughs = []int{}, []int{}
	for i := halfWidth; i < len(ys)-halfWidth; i++ {
		isMax, isMin := true, true
		for j := i - halfWidth; j <= i+halfWidth && (isMax || isMin); j++ {
			if j == i {
				continue
			}
			if ys[j] >= ys[i] {
				isMax = false
			}
			if ys[j] <= ys[i] {
				isMin = false
			}
		}
		if isMax {
			peaks = append(peaks, i)
		}
		if isMin {
			troughs = append(troughs, i)
		}
	}
	return peaks, troughs
}

// strongest keeps the n indices with the highest (or lowest) ys and returns them in index order.
func strongest(idx []int, ys []float64, n int, highest bool) []int {
	if len(idx) <= n {
		return idx
	}
	ranked := append([]int(nil), idx...)
	sort.SliceStable(ranked, func(a, b int) bool {
		if highest {
			return ys[ranked[a]] > ys[ranked[b]]
		}
		return ys[ranked[a]] < ys[ranked[b]]
	})
	ranked = ranked[:n]
	sort.Ints(ranked)
	return ranked
}
