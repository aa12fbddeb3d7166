package grading

// bandStep maps a minimum percentage (inclusive) to a band label. The table
// is a strict step function over the objective-section percentage; writing
// and speaking are excluded from the base by design.
type bandStep struct {
	min   float64
	label string
}

var bandTable = []bandStep{
	{min: 86.7, label: "7.0+"},
	{min: 66.7, label: "6.0-6.5"},
	{min: 46.7, label: "5.0-5.5"},
	{min: 26.7, label: "4.0-4.5"},
}

// BandFloor is returned below the lowest threshold.
const BandFloor = "Below 4.0"

// BandLabel derives the proficiency band from a 0-100 percentage.
func BandLabel(percentage float64) string {
	for _, step := range bandTable {
		if percentage >= step.min {
			return step.label
		}
	}
	return BandFloor
}
