package report

// Summary aggregates total commute minutes over all rows.
type Summary struct {
	Count int
	Avg   float64
	Min   float64
	Max   float64
}

// Summarize returns zero values when totals is empty.
func Summarize(totals []float64) Summary {
	s := Summary{Count: len(totals)}
	if len(totals) == 0 {
		return s
	}

	s.Min, s.Max = totals[0], totals[0]
	sum := 0.0
	for _, v := range totals {
		sum += v
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	s.Avg = sum / float64(len(totals))
	return s
}

// SummarizeTable counts every row and aggregates the parseable total_time_mins values.
func SummarizeTable(t *Table) Summary {
	var totals []float64
	for _, r := range t.Rows {
		if v, ok := r.Float("total_time_mins"); ok {
			totals = append(totals, v)
		}
	}
	s := Summarize(totals)
	s.Count = len(t.Rows)
	return s
}
