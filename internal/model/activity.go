package model

// Activity is a duty of the background worker.
type Activity string

const (
	ActivityFetchStatements     Activity = "fetch_statements"
	ActivityProcessBurnRequests Activity = "process_burn_requests"
	ActivityNone                Activity = "none"
)

// Next returns the activity that follows a in the worker cycle.
func (a Activity) Next() Activity {
	switch a {
	case ActivityFetchStatements:
		return ActivityProcessBurnRequests
	case ActivityProcessBurnRequests:
		return ActivityNone
	default:
		return ActivityFetchStatements
	}
}

// ParseActivity decodes a persisted activity; unknown values read as idle.
func ParseActivity(s string) Activity {
	switch Activity(s) {
	case ActivityFetchStatements, ActivityProcessBurnRequests:
		return Activity(s)
	default:
		return ActivityNone
	}
}
