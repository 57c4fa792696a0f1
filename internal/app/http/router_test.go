package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"prdashboard/internal/app/dto"
	httpapi "prdashboard/internal/app/http"
	"prdashboard/internal/app/http/handler"
	"prdashboard/internal/domain"
	"prdashboard/internal/domain/assignment"
	"prdashboard/internal/domain/chart"
	"prdashboard/internal/domain/overview"
	"prdashboard/internal/domain/pr"
)

type overviewFake struct {
	repos    []int64
	interval string
	spec     chart.Spec
	err      error
}

func (o *overviewFake) PRAssignment(ctx context.Context, repos []int64, interval string) (chart.Spec, error) {
	o.repos = repos
	o.interval = interval
	if o.err != nil {
		return chart.Spec{}, o.err
	}
	if _, err := assignment.ParseGranularity(interval); err != nil {
		return chart.Spec{}, err
	}
	return o.spec, nil
}

type prSvcFake struct {
	err error
}

func (p *prSvcFake) Open(ctx context.Context, in pr.PullRequest) (pr.PullRequest, error) {
	if p.err != nil {
		return pr.PullRequest{}, p.err
	}
	in.Status = pr.StatusOpen
	return in, nil
}
func (p *prSvcFake) Close(ctx context.Context, id string, at time.Time) (pr.PullRequest, error) {
	if p.err != nil {
		return pr.PullRequest{}, p.err
	}
	return pr.PullRequest{ID: id, Status: pr.StatusClosed, ClosedAt: &at}, nil
}
func (p *prSvcFake) Assign(ctx context.Context, prID, assignee string, at time.Time) (pr.AssignmentEvent, error) {
	if p.err != nil {
		return pr.AssignmentEvent{}, p.err
	}
	return pr.AssignmentEvent{ID: "ev-1", PullRequestID: prID, Assignee: assignee, Action: assignment.ActionAssigned, At: at}, nil
}
func (p *prSvcFake) Unassign(ctx context.Context, prID, assignee string, at time.Time) (pr.AssignmentEvent, error) {
	if p.err != nil {
		return pr.AssignmentEvent{}, p.err
	}
	return pr.AssignmentEvent{ID: "ev-2", PullRequestID: prID, Assignee: assignee, Action: assignment.ActionUnassigned, At: at}, nil
}

func newRouter(ov *overviewFake, prs *prSvcFake) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return httpapi.NewRouter(handler.New(prs, ov, zap.NewNop()), zap.NewNop())
}

func do(t *testing.T, r http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error.Code
}

func TestOverviewPRAssignment(t *testing.T) {
	spec := chart.Build([]assignment.Bucket{{
		Start:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:      time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		Assigned: 1,
	}}, assignment.Month, time.Now())
	ov := &overviewFake{spec: spec}
	r := newRouter(ov, &prSvcFake{})

	w := do(t, r, http.MethodGet, "/overview/pr-assignment?repo=3&repo=1,2&interval=M", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []int64{3, 1, 2}, ov.repos)
	require.Equal(t, "M", ov.interval)

	var got chart.Spec
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got.Data, 2)
	require.Equal(t, "bar", got.Data[0].Type)
	require.Equal(t, []string{"2024-01"}, got.Data[0].X)
}

func TestOverviewPRAssignment_DefaultsToWeek(t *testing.T) {
	ov := &overviewFake{spec: chart.NoData()}
	r := newRouter(ov, &prSvcFake{})

	w := do(t, r, http.MethodGet, "/overview/pr-assignment?repo=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "W", ov.interval)
	require.Contains(t, w.Body.String(), `"no_data":true`)
}

func TestOverviewPRAssignment_Errors(t *testing.T) {
	cases := []struct {
		name   string
		target string
		err    error
		status int
		code   string
	}{
		{"bad interval", "/overview/pr-assignment?repo=1&interval=X", nil, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"bad repo", "/overview/pr-assignment?repo=abc", nil, http.StatusBadRequest, "BAD_REQUEST"},
		{"schema", "/overview/pr-assignment?repo=1", &assignment.SchemaError{Column: "closed"}, http.StatusUnprocessableEntity, "SCHEMA_ERROR"},
		{"format", "/overview/pr-assignment?repo=1", &assignment.DataFormatError{Column: "created", Value: "x"}, http.StatusUnprocessableEntity, "DATA_FORMAT_ERROR"},
		{"timeout", "/overview/pr-assignment?repo=1", overview.ErrCacheTimeout, http.StatusGatewayTimeout, "CACHE_TIMEOUT"},
		{"internal", "/overview/pr-assignment?repo=1", context.DeadlineExceeded, http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newRouter(&overviewFake{err: tc.err}, &prSvcFake{})
			w := do(t, r, http.MethodGet, tc.target, nil)
			require.Equal(t, tc.status, w.Code)
			require.Equal(t, tc.code, errorCode(t, w))
		})
	}
}

func TestPopover(t *testing.T) {
	r := newRouter(&overviewFake{}, &prSvcFake{})

	one := 1
	cases := []struct {
		req  dto.PopoverRequest
		want bool
	}{
		{dto.PopoverRequest{NClicks: nil, IsOpen: false}, false},
		{dto.PopoverRequest{NClicks: &one, IsOpen: false}, true},
		{dto.PopoverRequest{NClicks: &one, IsOpen: true}, false},
		{dto.PopoverRequest{NClicks: nil, IsOpen: true}, true},
	}
	for _, tc := range cases {
		w := do(t, r, http.MethodPost, "/overview/pr-assignment/popover", tc.req)
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.PopoverResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Equal(t, tc.want, resp.IsOpen)
	}
}

func TestPullRequestEndpoints(t *testing.T) {
	r := newRouter(&overviewFake{}, &prSvcFake{})

	w := do(t, r, http.MethodPost, "/pullRequest/open", map[string]any{"pull_request_id": "pr-1", "repo_id": 7})
	require.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, w.Body.String(), `"status":"OPEN"`)

	w = do(t, r, http.MethodPost, "/pullRequest/open", map[string]any{"pull_request_id": "pr-1"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/pullRequest/assign", map[string]any{"pull_request_id": "pr-1", "assignee": "alice"})
	require.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, w.Body.String(), `"action":"assigned"`)

	w = do(t, r, http.MethodPost, "/pullRequest/unassign", map[string]any{"pull_request_id": "pr-1", "assignee": "alice"})
	require.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, w.Body.String(), `"action":"unassigned"`)

	w = do(t, r, http.MethodPost, "/pullRequest/close", map[string]any{"pull_request_id": "pr-1"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"status":"CLOSED"`)
}

func TestPullRequestEndpoints_DomainError(t *testing.T) {
	r := newRouter(&overviewFake{}, &prSvcFake{err: &domain.DomainError{
		Code:       domain.ErrorCodePRClosed,
		Message:    "cannot change assignees of a closed PR",
		HTTPStatus: http.StatusConflict,
	}})

	w := do(t, r, http.MethodPost, "/pullRequest/assign", map[string]any{"pull_request_id": "pr-1", "assignee": "alice"})
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, "PR_CLOSED", errorCode(t, w))
}

func TestHealth(t *testing.T) {
	w := do(t, newRouter(&overviewFake{}, &prSvcFake{}), http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
