package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"prdashboard/internal/app/dto"
	"prdashboard/internal/domain/pr"
)

func (h *Handler) PROpen(c *gin.Context) {
	var body struct {
		PullRequestID   string    `json:"pull_request_id"`
		RepoID          int64     `json:"repo_id"`
		PullRequestName string    `json:"pull_request_name"`
		CreatedAt       time.Time `json:"created_at"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "invalid JSON")
		return
	}

	if body.PullRequestID == "" || body.RepoID == 0 {
		h.badRequest(c, "pull_request_id and repo_id are required")
		return
	}

	p, err := h.PRSvc.Open(c.Request.Context(), pr.PullRequest{
		ID:        body.PullRequestID,
		RepoID:    body.RepoID,
		Name:      body.PullRequestName,
		CreatedAt: body.CreatedAt,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, struct {
		PR dto.PullRequest `json:"pr"`
	}{PR: toPRDTO(p)})
}

func (h *Handler) PRClose(c *gin.Context) {
	var body struct {
		PullRequestID string    `json:"pull_request_id"`
		ClosedAt      time.Time `json:"closed_at"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "invalid JSON")
		return
	}

	if body.PullRequestID == "" {
		h.badRequest(c, "pull_request_id is required")
		return
	}

	p, err := h.PRSvc.Close(c.Request.Context(), body.PullRequestID, body.ClosedAt)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, struct {
		PR dto.PullRequest `json:"pr"`
	}{PR: toPRDTO(p)})
}

type assignmentBody struct {
	PullRequestID string    `json:"pull_request_id"`
	Assignee      string    `json:"assignee"`
	At            time.Time `json:"at"`
}

func (h *Handler) PRAssign(c *gin.Context) {
	h.recordAssignment(c, h.PRSvc.Assign)
}

func (h *Handler) PRUnassign(c *gin.Context) {
	h.recordAssignment(c, h.PRSvc.Unassign)
}

func (h *Handler) recordAssignment(c *gin.Context, record func(ctx context.Context, prID, assignee string, at time.Time) (pr.AssignmentEvent, error)) {
	var body assignmentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "invalid JSON")
		return
	}

	if body.PullRequestID == "" || body.Assignee == "" {
		h.badRequest(c, "pull_request_id and assignee are required")
		return
	}

	ev, err := record(c.Request.Context(), body.PullRequestID, body.Assignee, body.At)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, struct {
		Event dto.AssignmentEvent `json:"event"`
	}{
		Event: dto.AssignmentEvent{
			EventID:       ev.ID,
			PullRequestID: ev.PullRequestID,
			Assignee:      ev.Assignee,
			Action:        string(ev.Action),
			At:            ev.At,
		},
	})
}

func toPRDTO(p pr.PullRequest) dto.PullRequest {
	return dto.PullRequest{
		PullRequestID:   p.ID,
		RepoID:          p.RepoID,
		PullRequestName: p.Name,
		Status:          string(p.Status),
		CreatedAt:       p.CreatedAt,
		ClosedAt:        p.ClosedAt,
	}
}
