package placement

import (
	"github.com/montanaflynn/stats"
)

// LoadStats returns the mean and standard deviation of bucket occupancy
// across the table — a sanity-check surface a caller may use to assert the
// table is within the expected load bounds for its chosen epsilonHash, not
// a benchmark or sweep driver.
func (t Table) LoadStats() (mean, stddev float64, err error) {
	occupancy := make(stats.Float64Data, len(t))
	for i, bucket := range t {
		occupancy[i] = float64(len(bucket))
	}
	mean, err = occupancy.Mean()
	if err != nil {
		return 0, 0, err
	}
	stddev, err = occupancy.StandardDeviation()
	if err != nil {
		return 0, 0, err
	}
	return mean, stddev, nil
}
