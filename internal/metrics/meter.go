package metrics

// AverageMeter tracks a running average of a scalar, weighted by the number
// of samples each update covers.
type AverageMeter struct {
	Val   float64
	Avg   float64
	Sum   float64
	Count int
}

// Update records val measured over n samples.
func (m *AverageMeter) Update(val float64, n int) {
	if n <= 0 {
		return
	}
	m.Val = val
	m.Sum += val * float64(n)
	m.Count += n
	m.Avg = m.Sum / float64(m.Count)
}

// Reset clears the meter.
func (m *AverageMeter) Reset() {
	*m = AverageMeter{}
}
