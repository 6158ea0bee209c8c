package date

// Range represents a range of dates.
type Range struct{ From, To Date }

// Window returns the range starting at d and spanning n more days.
func Window(d Date, n int) Range { return Range{From: d, To: d.Add(n)} }

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }
