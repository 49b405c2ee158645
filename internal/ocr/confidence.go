package ocr

// meanConfidence averages the fragments that report a confidence; 0 if none do.
func meanConfidence(frags []Fragment) float64 {
	var sum float64
	var n int
	for _, f := range frags {
		if f.Confidence <= 0 {
			continue
		}
		sum += f.Confidence
		n++
	}
	if n == 0 {
		return 0
	}
	mean := sum / float64(n)
	if mean > 1.0 {
		mean = 1.0
	}
	return mean
}
