package pg

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"prdashboard/internal/domain/assignment"
)

// AssigneeQuery produces the raw assignment event table for one repository,
// one row per assignment action joined with its pull request lifecycle.
type AssigneeQuery struct {
	db *sql.DB
}

func NewAssigneeQuery(db *sql.DB) *AssigneeQuery {
	return &AssigneeQuery{db: db}
}

func (q *AssigneeQuery) Table(ctx context.Context, repoID int64) (assignment.Table, error) {
	const stmt = `
	SELECT pr.pull_request_id, pr.repo_id, pr.created_at, pr.closed_at,
	       e.assignee, e.action, e.occurred_at
	FROM pull_requests pr
	JOIN pull_request_assignment_events e ON e.pull_request_id = pr.pull_request_id
	WHERE pr.repo_id = $1
	ORDER BY pr.created_at, e.occurred_at, e.seq;`

	rows, err := conn(ctx, q.db).QueryContext(ctx, stmt, repoID)
	if err != nil {
		return assignment.Table{}, err
	}
	defer rows.Close()

	res := assignment.NewTable(
		assignment.ColumnPullRequestID,
		assignment.ColumnRepoID,
		assignment.ColumnCreated,
		assignment.ColumnClosed,
		assignment.ColumnAssignee,
		assignment.ColumnAction,
		assignment.ColumnAssignDate,
	)
	for rows.Next() {
		var (
			id, assignee, action string
			repo                 int64
			created, occurred    time.Time
			closed               sql.NullTime
		)
		if err := rows.Scan(&id, &repo, &created, &closed, &assignee, &action, &occurred); err != nil {
			return assignment.Table{}, err
		}

		closedRaw := ""
		if closed.Valid {
			closedRaw = formatTime(closed.Time)
		}
		res.Append(
			id,
			strconv.FormatInt(repo, 10),
			formatTime(created),
			closedRaw,
			assignee,
			action,
			formatTime(occurred),
		)
	}

	return res, rows.Err()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
