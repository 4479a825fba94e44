package usage

import "time"

const (
	defaultPlan  = "free"
	defaultLimit = 20
	periodLength = 7 * 24 * time.Hour
)

func defaultUsage(now time.Time) Usage {
	return Usage{
		Plan:     defaultPlan,
		Limit:    defaultLimit,
		Used:     0,
		ResetsAt: now.Add(periodLength),
	}
}
