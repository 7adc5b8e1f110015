package kassabok

import (
	"sort"
	"time"
)

// DateGroup is one presentation bucket: all aggregations of a single date,
// split by reconciliation state. Unconnected includes auto-matched slots,
// since both still need the user's attention.
type DateGroup struct {
	Date        Date
	Connected   []Aggregation
	Unconnected []Aggregation
	Inferred    []Aggregation
}

// GroupByDate buckets aggregations by date, in ascending date order. Within a
// date, slots keep their incoming order.
func GroupByDate(aggs []Aggregation) []DateGroup {
	byDate := make(map[Date]*DateGroup)
	var order []Date
	for _, a := range aggs {
		g, ok := byDate[a.Date]
		if !ok {
			g = &DateGroup{Date: a.Date}
			byDate[a.Date] = g
			order = append(order, a.Date)
		}
		switch a.Status {
		case Connected:
			g.Connected = append(g.Connected, a)
		case Unconnected, AutoMatched:
			g.Unconnected = append(g.Unconnected, a)
		case Inferred:
			g.Inferred = append(g.Inferred, a)
		}
	}
	sort.Slice(order, func(i, j int) bool { return order[i].Before(order[j]) })

	groups := make([]DateGroup, 0, len(order))
	for _, d := range order {
		groups = append(groups, *byDate[d])
	}
	return groups
}

// SortByObjectAccountThenDate applies the register ordering: stable by object
// account, then stable by date, so date is the primary key and the object
// account breaks ties within a day.
func SortByObjectAccountThenDate(aggs []Aggregation) {
	sort.SliceStable(aggs, func(i, j int) bool {
		return aggs[i].ObjectAccount() < aggs[j].ObjectAccount()
	})
	sort.SliceStable(aggs, func(i, j int) bool {
		return aggs[i].Date.Before(aggs[j].Date)
	})
}

// FilterYearMonth keeps the aggregations of one calendar month.
func FilterYearMonth(aggs []Aggregation, year int, month time.Month) []Aggregation {
	var out []Aggregation
	for _, a := range aggs {
		if a.Date.Year() == year && a.Date.Month() == month {
			out = append(out, a)
		}
	}
	return out
}

// YearMonth identifies one calendar month with activity.
type YearMonth struct {
	Year  int
	Month time.Month
}

// YearMonths lists every calendar month that has at least one aggregation,
// in ascending order.
func YearMonths(aggs []Aggregation) []YearMonth {
	seen := make(map[YearMonth]struct{})
	var months []YearMonth
	for _, a := range aggs {
		ym := YearMonth{Year: a.Date.Year(), Month: a.Date.Month()}
		if _, ok := seen[ym]; ok {
			continue
		}
		seen[ym] = struct{}{}
		months = append(months, ym)
	}
	sort.Slice(months, func(i, j int) bool {
		if months[i].Year != months[j].Year {
			return months[i].Year < months[j].Year
		}
		return months[i].Month < months[j].Month
	})
	return months
}
