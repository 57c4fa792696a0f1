package dto

import "time"

type PullRequest struct {
	PullRequestID   string     `json:"pull_request_id"`
	RepoID          int64      `json:"repo_id"`
	PullRequestName string     `json:"pull_request_name"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	ClosedAt        *time.Time `json:"closed_at,omitempty"`
}

type AssignmentEvent struct {
	EventID       string    `json:"event_id"`
	PullRequestID string    `json:"pull_request_id"`
	Assignee      string    `json:"assignee"`
	Action        string    `json:"action"`
	At            time.Time `json:"at"`
}
