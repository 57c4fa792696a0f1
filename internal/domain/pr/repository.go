package pr

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, pr PullRequest) (PullRequest, error)
	LockByID(ctx context.Context, id string) (PullRequest, error)
	UpdateClosed(ctx context.Context, id string, at time.Time) (PullRequest, error)
	AddAssignmentEvent(ctx context.Context, e AssignmentEvent) error
	// IsAssigned reports whether the latest assignment action of the user on
	// the PR is an assignment.
	IsAssigned(ctx context.Context, prID, assignee string) (bool, error)
}
