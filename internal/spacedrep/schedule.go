package spacedrep

// BaseIntervals defines the expanding interval schedule in days, indexed by
// the item's success streak. Streak 0 = item never recalled perfectly.
var BaseIntervals = []int{1, 3, 7, 14, 30, 60, 120}

// TableStreakLimit is the first success streak past the end of BaseIntervals.
// From here on the interval grows linearly in weeks.
const TableStreakLimit = 7

// LinearFloorDays is the smallest interval once the table is exhausted.
const LinearFloorDays = 30

// DaysPerStreakStep is the linear growth per success past the table.
const DaysPerStreakStep = 7

// PerfectRecallScore is the self-rated score that counts as a fully
// confident review and extends the success streak.
const PerfectRecallScore = 100

// MaxRecallScore and MinRecallScore bound the self-rated recall score.
const (
	MinRecallScore = 0
	MaxRecallScore = 100
)
