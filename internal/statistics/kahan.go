package statistics

// Kahan is a compensated running sum. The zero value is a valid sum of zero.
//
// err carries the low-order bits lost by the most recent additions, so sum
// plus err tracks the exact total to within a few ulps regardless of how many
// terms are added.
type Kahan struct {
	sum float64
	err float64
}

// Add adds x to the running sum.
func (k *Kahan) Add(x float64) {
	y := x - k.err
	t := k.sum + y
	k.err = (t - k.sum) - y
	k.sum = t
}

// Assign discards the current total and restarts the sum at x.
func (k *Kahan) Assign(x float64) {
	k.sum = x
	k.err = 0
}

// Value returns the compensated total.
func (k Kahan) Value() float64 {
	return k.sum
}

// Error returns the pending compensation term.
func (k Kahan) Error() float64 {
	return k.err
}
