package date

import (
	"fmt"
	"time"
)

// Period is the publication frequency of an index.
type Period int

const (
	Monthly Period = iota
	Quarterly
	Yearly
)

func (p Period) String() string {
	switch p {
	case Monthly:
		return "monthly"
	case Quarterly:
		return "quarterly"
	case Yearly:
		return "yearly"
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

// Months returns the number of months in the period.
func (p Period) Months() int {
	switch p {
	case Quarterly:
		return 3
	case Yearly:
		return 12
	default:
		return 1
	}
}

// StartOf returns the first day of the period containing d.
func (d Date) StartOf(p Period) Date {
	switch p {
	case Quarterly:
		return New(d.y, (d.m-1)/3*3+1, 1)
	case Yearly:
		return New(d.y, time.January, 1)
	default:
		return New(d.y, d.m, 1)
	}
}

// EndOf returns the last day of the period containing d.
func (d Date) EndOf(p Period) Date {
	return d.StartOf(p).AddMonths(p.Months()).Add(-1)
}
