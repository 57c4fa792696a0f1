package pr

import (
	"time"

	"prdashboard/internal/domain/assignment"
)

type Status string

const (
	StatusOpen   Status = "OPEN"
	StatusClosed Status = "CLOSED"
)

type PullRequest struct {
	ID        string
	RepoID    int64
	Name      string
	Status    Status
	CreatedAt time.Time
	ClosedAt  *time.Time
}

type AssignmentEvent struct {
	ID            string
	PullRequestID string
	Assignee      string
	Action        assignment.Action
	At            time.Time
}
