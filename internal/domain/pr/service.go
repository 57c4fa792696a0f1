package pr

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"prdashboard/internal/domain"
	"prdashboard/internal/domain/assignment"
)

type Service interface {
	Open(ctx context.Context, pr PullRequest) (PullRequest, error)
	Close(ctx context.Context, id string, at time.Time) (PullRequest, error)
	Assign(ctx context.Context, prID, assignee string, at time.Time) (AssignmentEvent, error)
	Unassign(ctx context.Context, prID, assignee string, at time.Time) (AssignmentEvent, error)
}

type service struct {
	uow    domain.UnitOfWork
	prs    Repository
	events domain.EventBus
	clock  domain.Clock
}

func NewService(
	uow domain.UnitOfWork,
	prs Repository,
	events domain.EventBus,
	clock domain.Clock,
) Service {
	return &service{
		uow:    uow,
		prs:    prs,
		events: events,
		clock:  clock,
	}
}

func (s *service) Open(ctx context.Context, p PullRequest) (PullRequest, error) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.clock.Now()
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.Status = StatusOpen
	p.ClosedAt = nil

	var res PullRequest
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		created, err := s.prs.Create(ctx, p)
		if err != nil {
			return err
		}
		res = created
		return nil
	})
	if err != nil {
		return PullRequest{}, err
	}

	s.publish(ctx, domain.EventPROpened, res.RepoID, map[string]any{"pr_id": res.ID})
	return res, nil
}

func (s *service) Close(ctx context.Context, id string, at time.Time) (PullRequest, error) {
	if at.IsZero() {
		at = s.clock.Now()
	}

	var (
		res     PullRequest
		changed bool
	)
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.prs.LockByID(ctx, id)
		if err != nil {
			return err
		}
		if current.Status == StatusClosed {
			res = current
			return nil
		}
		if at.Before(current.CreatedAt) {
			return beforeCreation(at, current.CreatedAt)
		}

		updated, err := s.prs.UpdateClosed(ctx, id, at.UTC())
		if err != nil {
			return err
		}
		res = updated
		changed = true
		return nil
	})
	if err != nil {
		return PullRequest{}, err
	}

	if changed {
		s.publish(ctx, domain.EventPRClosed, res.RepoID, map[string]any{"pr_id": res.ID})
	}
	return res, nil
}

func (s *service) Assign(ctx context.Context, prID, assignee string, at time.Time) (AssignmentEvent, error) {
	return s.record(ctx, prID, assignee, assignment.ActionAssigned, at)
}

func (s *service) Unassign(ctx context.Context, prID, assignee string, at time.Time) (AssignmentEvent, error) {
	return s.record(ctx, prID, assignee, assignment.ActionUnassigned, at)
}

func (s *service) record(ctx context.Context, prID, assignee string, action assignment.Action, at time.Time) (AssignmentEvent, error) {
	if at.IsZero() {
		at = s.clock.Now()
	}
	ev := AssignmentEvent{
		ID:            uuid.NewString(),
		PullRequestID: prID,
		Assignee:      assignee,
		Action:        action,
		At:            at.UTC(),
	}

	var repoID int64
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.prs.LockByID(ctx, prID)
		if err != nil {
			return err
		}
		if current.Status == StatusClosed {
			return &domain.DomainError{
				Code:       domain.ErrorCodePRClosed,
				Message:    "cannot change assignees of a closed PR",
				HTTPStatus: http.StatusConflict,
			}
		}
		if ev.At.Before(current.CreatedAt) {
			return beforeCreation(ev.At, current.CreatedAt)
		}
		repoID = current.RepoID

		assigned, err := s.prs.IsAssigned(ctx, prID, assignee)
		if err != nil {
			return err
		}
		if action == assignment.ActionAssigned && assigned {
			return &domain.DomainError{
				Code:       domain.ErrorCodeAlreadyAssigned,
				Message:    "user is already assigned to this PR",
				HTTPStatus: http.StatusConflict,
			}
		}
		if action == assignment.ActionUnassigned && !assigned {
			return &domain.DomainError{
				Code:       domain.ErrorCodeNotAssigned,
				Message:    "user is not assigned to this PR",
				HTTPStatus: http.StatusConflict,
			}
		}

		return s.prs.AddAssignmentEvent(ctx, ev)
	})
	if err != nil {
		return AssignmentEvent{}, err
	}

	typ := domain.EventPRAssigned
	if action == assignment.ActionUnassigned {
		typ = domain.EventPRUnassigned
	}
	s.publish(ctx, typ, repoID, map[string]any{
		"pr_id":    prID,
		"assignee": assignee,
		"event_id": ev.ID,
	})
	return ev, nil
}

func beforeCreation(at, created time.Time) error {
	return &domain.DomainError{
		Code:       domain.ErrorCodeInvalidArgument,
		Message:    fmt.Sprintf("time %s is before the PR was created (%s)", at.Format(time.RFC3339), created.Format(time.RFC3339)),
		HTTPStatus: http.StatusBadRequest,
	}
}

func (s *service) publish(ctx context.Context, typ string, repoID int64, payload map[string]any) {
	if s.events == nil {
		return
	}
	payload["repo_id"] = repoID
	s.events.Publish(ctx, domain.Event{Type: typ, Payload: payload})
}
