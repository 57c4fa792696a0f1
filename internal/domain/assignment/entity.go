package assignment

import "time"

type Action string

const (
	ActionAssigned   Action = "assigned"
	ActionUnassigned Action = "unassigned"
)

// Event is one assignment action on a pull request. A pull request with
// several actions appears once per action.
type Event struct {
	PullRequestID string
	RepoID        int64
	Assignee      string
	Created       time.Time
	Closed        *time.Time
	AssignDate    time.Time
	Action        Action
}

// Bucket holds the counts for the window [Start, End).
type Bucket struct {
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Assigned   int       `json:"assigned"`
	Unassigned int       `json:"unassigned"`
}
