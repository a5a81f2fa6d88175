package helper

import "math"

// Halton returns the index-th element of the Halton sequence for base.
// Bases below 2 have no sequence and yield NaN.
func Halton(index, base int) float64 {
	if base < 2 {
		return math.NaN()
	}

	result := 0.0
	f := 1 / float64(base)
	for i := index; i > 0; i /= base {
		result += f * float64(i%base)
		f /= float64(base)
	}
	return result
}

func HaltonSequence(n, base int) []float64 {
	if n <= 0 {
		return nil
	}
	seq := make([]float64, n)
	for i := range seq {
		seq[i] = Halton(i, base)
	}
	return seq
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// HaltonPoints pairs two coprime bases into n points of the unit square.
func HaltonPoints(n, baseX, baseY int) []Point {
	if n <= 0 {
		return nil
	}
	points := make([]Point, n)
	for i := range points {
		points[i] = Point{X: Halton(i, baseX), Y: Halton(i, baseY)}
	}
	return points
}
