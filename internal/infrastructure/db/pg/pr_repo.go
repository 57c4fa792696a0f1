package pg

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"prdashboard/internal/domain"
	"prdashboard/internal/domain/assignment"
	"prdashboard/internal/domain/pr"
)

type PRRepository struct {
	db *sql.DB
}

func NewPRRepository(db *sql.DB) *PRRepository {
	return &PRRepository{db: db}
}

func (r *PRRepository) Create(ctx context.Context, p pr.PullRequest) (pr.PullRequest, error) {
	var exists bool
	if err := conn(ctx, r.db).QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM pull_requests WHERE pull_request_id = $1)`,
		p.ID,
	).Scan(&exists); err != nil {
		return pr.PullRequest{}, err
	}
	if exists {
		return pr.PullRequest{}, &domain.DomainError{
			Code:       domain.ErrorCodePRExists,
			Message:    "PR id already exists",
			HTTPStatus: 409,
		}
	}

	if _, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO pull_requests (pull_request_id, repo_id, pull_request_name, status, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.RepoID, p.Name, string(p.Status), p.CreatedAt,
	); err != nil {
		return pr.PullRequest{}, err
	}
	return p, nil
}

func (r *PRRepository) LockByID(ctx context.Context, id string) (pr.PullRequest, error) {
	p, err := scanPR(conn(ctx, r.db).QueryRowContext(ctx,
		`SELECT pull_request_id, repo_id, pull_request_name, status, created_at, closed_at
		   FROM pull_requests
		  WHERE pull_request_id = $1
		  FOR UPDATE`,
		id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return pr.PullRequest{}, &domain.DomainError{
			Code:       domain.ErrorCodeNotFound,
			Message:    "pull request not found",
			HTTPStatus: 404,
		}
	}
	return p, err
}

func (r *PRRepository) UpdateClosed(ctx context.Context, id string, at time.Time) (pr.PullRequest, error) {
	return scanPR(conn(ctx, r.db).QueryRowContext(ctx,
		`UPDATE pull_requests
		   SET status = 'CLOSED',
		       closed_at = $2
		 WHERE pull_request_id = $1
		 RETURNING pull_request_id, repo_id, pull_request_name, status, created_at, closed_at`,
		id, at,
	))
}

func (r *PRRepository) AddAssignmentEvent(ctx context.Context, e pr.AssignmentEvent) error {
	_, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO pull_request_assignment_events (event_id, pull_request_id, assignee, action, occurred_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		e.ID, e.PullRequestID, e.Assignee, string(e.Action), e.At,
	)
	return err
}

// IsAssigned reports the state left by the most recently recorded action.
// Recording order decides, not the client supplied time.
func (r *PRRepository) IsAssigned(ctx context.Context, prID, assignee string) (bool, error) {
	var action string
	err := conn(ctx, r.db).QueryRowContext(ctx,
		`SELECT action
		   FROM pull_request_assignment_events
		  WHERE pull_request_id = $1
		    AND assignee = $2
		  ORDER BY seq DESC
		  LIMIT 1`,
		prID, assignee,
	).Scan(&action)

	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return assignment.Action(action) == assignment.ActionAssigned, nil
}

func scanPR(row *sql.Row) (pr.PullRequest, error) {
	var p pr.PullRequest
	var status string
	var closedAt sql.NullTime

	if err := row.Scan(&p.ID, &p.RepoID, &p.Name, &status, &p.CreatedAt, &closedAt); err != nil {
		return pr.PullRequest{}, err
	}
	p.Status = pr.Status(status)
	p.CreatedAt = p.CreatedAt.UTC()
	if closedAt.Valid {
		t := closedAt.Time.UTC()
		p.ClosedAt = &t
	}
	return p, nil
}
