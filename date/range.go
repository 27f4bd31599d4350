package date

// Range represents a range of dates, boundaries included.
type Range struct{ From, To Date }

// Years returns the whole number of calendar years between From and To.
//
// It compares calendar years only: 2000-12-31 to 2001-01-01 is one year.
func (r Range) Years() int { return r.To.Year() - r.From.Year() }

func (r Range) String() string { return r.From.String() + ".." + r.To.String() }
