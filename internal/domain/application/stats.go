package application

import "math"

// Statistics is derived from a candidate's applications on every read;
// nothing here is persisted.
type Statistics struct {
	Total           int
	ByStatus        map[Status]int
	ConversionRatio float64
}

// ComputeStatistics returns the total count, a per-status histogram and the
// percentage of applications that reached Selected, rounded to two decimals.
// An empty list yields a zero ratio.
func ComputeStatistics(apps []Application) Statistics {
	stats := Statistics{
		Total:    len(apps),
		ByStatus: make(map[Status]int, 5),
	}

	for _, a := range apps {
		stats.ByStatus[a.Status]++
	}

	if stats.Total > 0 {
		ratio := float64(stats.ByStatus[StatusSelected]) / float64(stats.Total) * 100
		stats.ConversionRatio = math.Round(ratio*100) / 100
	}

	return stats
}
