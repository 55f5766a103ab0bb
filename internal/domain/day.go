package domain

import "strings"

// Thai week as the scheduler backend spells it, Sunday first.
var thaiWeek = []string{
	"อาทิตย์",
	"จันทร์",
	"อังคาร",
	"พุธ",
	"พฤหัสบดี",
	"ศุกร์",
	"เสาร์",
}

var dayRank = func() map[string]int {
	ranks := make(map[string]int, len(thaiWeek))
	for i, name := range thaiWeek {
		ranks[name] = i
	}
	return ranks
}()

// DayUnknown is the rank of any day label the backend sends that is not part
// of the canonical week. Unknown days sort after Saturday.
const DayUnknown = 7

// DayOrder maps a day label to its canonical rank, Sunday(0) .. Saturday(6).
func DayOrder(day string) int {
	if rank, ok := dayRank[strings.TrimSpace(day)]; ok {
		return rank
	}
	return DayUnknown
}
