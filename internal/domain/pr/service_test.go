package pr_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"prdashboard/internal/domain"
	"prdashboard/internal/domain/assignment"
	"prdashboard/internal/domain/pr"
)

type uowStub struct{}

func (uowStub) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type eventBusFake struct {
	events []domain.Event
}

func (e *eventBusFake) Publish(ctx context.Context, ev domain.Event) {
	e.events = append(e.events, ev)
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var now = time.Date(2024, 4, 2, 9, 0, 0, 0, time.UTC)

type prRepoFake struct {
	prs    map[string]pr.PullRequest
	events []pr.AssignmentEvent
}

func newPRRepoFake() *prRepoFake {
	return &prRepoFake{prs: map[string]pr.PullRequest{}}
}

func (r *prRepoFake) Create(ctx context.Context, p pr.PullRequest) (pr.PullRequest, error) {
	if _, ok := r.prs[p.ID]; ok {
		return pr.PullRequest{}, &domain.DomainError{Code: domain.ErrorCodePRExists, Message: "PR id already exists", HTTPStatus: 409}
	}
	r.prs[p.ID] = p
	return p, nil
}
func (r *prRepoFake) LockByID(ctx context.Context, id string) (pr.PullRequest, error) {
	p, ok := r.prs[id]
	if !ok {
		return pr.PullRequest{}, &domain.DomainError{Code: domain.ErrorCodeNotFound, Message: "pull request not found", HTTPStatus: 404}
	}
	return p, nil
}
func (r *prRepoFake) UpdateClosed(ctx context.Context, id string, at time.Time) (pr.PullRequest, error) {
	p, ok := r.prs[id]
	if !ok {
		return pr.PullRequest{}, &domain.DomainError{Code: domain.ErrorCodeNotFound, Message: "pull request not found", HTTPStatus: 404}
	}
	p.Status = pr.StatusClosed
	p.ClosedAt = &at
	r.prs[id] = p
	return p, nil
}
func (r *prRepoFake) AddAssignmentEvent(ctx context.Context, e pr.AssignmentEvent) error {
	r.events = append(r.events, e)
	return nil
}
func (r *prRepoFake) IsAssigned(ctx context.Context, prID, assignee string) (bool, error) {
	assigned := false
	for _, e := range r.events {
		if e.PullRequestID == prID && e.Assignee == assignee {
			assigned = e.Action == assignment.ActionAssigned
		}
	}
	return assigned, nil
}

func newService() (pr.Service, *prRepoFake, *eventBusFake) {
	prs := newPRRepoFake()
	events := &eventBusFake{}
	return pr.NewService(uowStub{}, prs, events, fixedClock{now}), prs, events
}

func TestService_Open(t *testing.T) {
	svc, prs, events := newService()

	p, err := svc.Open(context.Background(), pr.PullRequest{ID: "pr-1", RepoID: 42, Name: "Add search"})
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if p.Status != pr.StatusOpen || !p.CreatedAt.Equal(now) {
		t.Fatalf("unexpected PR: %+v", p)
	}
	if _, ok := prs.prs["pr-1"]; !ok {
		t.Fatalf("PR not stored")
	}
	if len(events.events) != 1 || events.events[0].Type != domain.EventPROpened {
		t.Fatalf("expected pr.opened event, got %+v", events.events)
	}
	if events.events[0].Payload["repo_id"] != int64(42) {
		t.Fatalf("expected repo_id in payload, got %+v", events.events[0].Payload)
	}

	_, err = svc.Open(context.Background(), pr.PullRequest{ID: "pr-1", RepoID: 42})
	if !isDomainErr(err, domain.ErrorCodePRExists) {
		t.Fatalf("want PR_EXISTS, got %v", err)
	}
}

func TestService_Close_NormalAndIdempotent(t *testing.T) {
	svc, prs, events := newService()
	prs.prs["pr-2"] = pr.PullRequest{ID: "pr-2", RepoID: 1, Status: pr.StatusOpen, CreatedAt: now.Add(-time.Hour)}

	closedAt := now.Add(time.Hour)
	p, err := svc.Close(context.Background(), "pr-2", closedAt)
	if err != nil {
		t.Fatalf("close error: %v", err)
	}
	if p.Status != pr.StatusClosed || p.ClosedAt == nil || !p.ClosedAt.Equal(closedAt) {
		t.Fatalf("expected CLOSED with closedAt, got %+v", p)
	}
	if len(events.events) != 1 || events.events[0].Type != domain.EventPRClosed {
		t.Fatalf("expected one pr.closed event, got %+v", events.events)
	}

	events.events = nil
	p2, err := svc.Close(context.Background(), "pr-2", time.Time{})
	if err != nil {
		t.Fatalf("idempotent close error: %v", err)
	}
	if !p2.ClosedAt.Equal(closedAt) {
		t.Fatalf("close time must not move, got %v", p2.ClosedAt)
	}
	if len(events.events) != 0 {
		t.Fatalf("no event expected on idempotent close")
	}

	_, err = svc.Close(context.Background(), "missing", time.Time{})
	if !isDomainErr(err, domain.ErrorCodeNotFound) {
		t.Fatalf("want NOT_FOUND, got %v", err)
	}
}

func TestService_AssignUnassign(t *testing.T) {
	svc, prs, events := newService()
	prs.prs["pr-3"] = pr.PullRequest{ID: "pr-3", RepoID: 9, Status: pr.StatusOpen, CreatedAt: now}

	ev, err := svc.Assign(context.Background(), "pr-3", "u2", time.Time{})
	if err != nil {
		t.Fatalf("assign error: %v", err)
	}
	if ev.ID == "" || ev.Action != assignment.ActionAssigned || !ev.At.Equal(now) {
		t.Fatalf("unexpected event: %+v", ev)
	}

	_, err = svc.Assign(context.Background(), "pr-3", "u2", time.Time{})
	if !isDomainErr(err, domain.ErrorCodeAlreadyAssigned) {
		t.Fatalf("want ALREADY_ASSIGNED, got %v", err)
	}

	ev2, err := svc.Unassign(context.Background(), "pr-3", "u2", now.Add(time.Minute))
	if err != nil {
		t.Fatalf("unassign error: %v", err)
	}
	if ev2.ID == ev.ID || ev2.Action != assignment.ActionUnassigned {
		t.Fatalf("unexpected event: %+v", ev2)
	}

	_, err = svc.Unassign(context.Background(), "pr-3", "u2", time.Time{})
	if !isDomainErr(err, domain.ErrorCodeNotAssigned) {
		t.Fatalf("want NOT_ASSIGNED, got %v", err)
	}

	if len(prs.events) != 2 {
		t.Fatalf("want 2 stored events, got %d", len(prs.events))
	}
	if len(events.events) != 2 || events.events[1].Type != domain.EventPRUnassigned {
		t.Fatalf("expected assigned+unassigned events, got %+v", events.events)
	}
}

func TestService_Assign_ClosedPR(t *testing.T) {
	svc, prs, _ := newService()
	closed := now
	prs.prs["pr-c"] = pr.PullRequest{ID: "pr-c", Status: pr.StatusClosed, ClosedAt: &closed}

	_, err := svc.Assign(context.Background(), "pr-c", "u1", time.Time{})
	if !isDomainErr(err, domain.ErrorCodePRClosed) {
		t.Fatalf("want PR_CLOSED, got %v", err)
	}
	if len(prs.events) != 0 {
		t.Fatalf("no event must be stored")
	}
}

func TestService_RejectsTimesBeforeCreation(t *testing.T) {
	svc, prs, events := newService()
	prs.prs["pr-4"] = pr.PullRequest{ID: "pr-4", RepoID: 2, Status: pr.StatusOpen, CreatedAt: now}

	_, err := svc.Assign(context.Background(), "pr-4", "u1", now.Add(-time.Hour))
	if !isDomainErr(err, domain.ErrorCodeInvalidArgument) {
		t.Fatalf("want INVALID_ARGUMENT for assign, got %v", err)
	}
	_, err = svc.Close(context.Background(), "pr-4", now.Add(-time.Minute))
	if !isDomainErr(err, domain.ErrorCodeInvalidArgument) {
		t.Fatalf("want INVALID_ARGUMENT for close, got %v", err)
	}

	if len(prs.events) != 0 || len(events.events) != 0 {
		t.Fatalf("nothing must be recorded, got %+v / %+v", prs.events, events.events)
	}
	if prs.prs["pr-4"].Status != pr.StatusOpen {
		t.Fatalf("PR must stay open")
	}
}

func TestService_BackdatedActionsFollowRecordingOrder(t *testing.T) {
	svc, prs, _ := newService()
	prs.prs["pr-5"] = pr.PullRequest{ID: "pr-5", RepoID: 2, Status: pr.StatusOpen, CreatedAt: now}

	if _, err := svc.Assign(context.Background(), "pr-5", "u1", now.Add(2*time.Hour)); err != nil {
		t.Fatalf("assign error: %v", err)
	}
	if _, err := svc.Unassign(context.Background(), "pr-5", "u1", now.Add(time.Hour)); err != nil {
		t.Fatalf("backdated unassign error: %v", err)
	}
	if _, err := svc.Assign(context.Background(), "pr-5", "u1", now.Add(90*time.Minute)); err != nil {
		t.Fatalf("reassign after backdated unassign: %v", err)
	}
	if len(prs.events) != 3 {
		t.Fatalf("want 3 stored events, got %d", len(prs.events))
	}
}

func isDomainErr(err error, code domain.ErrorCode) bool {
	var de *domain.DomainError
	return errors.As(err, &de) && de.Code == code
}
