package detect

import (
	"math"
	"sort"
)

// candidate is a raw detection before non-maximum suppression, in source
// image pixel space
type candidate struct {
	class int
	score float32
	left  float32
	top   float32
	right float32
	bottm float32
}

// nms performs per class Non-Maximum Suppression over the candidates,
// dropping any box overlapping a higher scoring box of the same class by
// more than the IoU threshold
func nms(cands []candidate, iouThreshold float32) []candidate {

	sort.Slice(cands, func(i, j int) bool {
		return cands[i].score > cands[j].score
	})

	dropped := make([]bool, len(cands))
	kept := make([]candidate, 0, len(cands))

	for i := 0; i < len(cands); i++ {

		if dropped[i] {
			continue
		}

		kept = append(kept, cands[i])

		for j := i + 1; j < len(cands); j++ {

			if dropped[j] || cands[j].class != cands[i].class {
				continue
			}

			if calculateOverlap(cands[i], cands[j]) > iouThreshold {
				dropped[j] = true
			}
		}
	}

	return kept
}

// calculateOverlap returns the Intersection over Union (IoU) of two
// candidate boxes
func calculateOverlap(a, b candidate) float32 {

	w := math.Max(0.0, math.Min(float64(a.right), float64(b.right))-
		math.Max(float64(a.left), float64(b.left))+1.0)
	h := math.Max(0.0, math.Min(float64(a.bottm), float64(b.bottm))-
		math.Max(float64(a.top), float64(b.top))+1.0)
	intersection := w * h

	// areas include the 1.0 for inclusive pixel calculation
	areaA := (a.right - a.left + 1) * (a.bottm - a.top + 1)
	areaB := (b.right - b.left + 1) * (b.bottm - b.top + 1)

	union := areaA + areaB - float32(intersection)

	if union <= 0 {
		return 0.0
	}

	return float32(intersection) / union
}
