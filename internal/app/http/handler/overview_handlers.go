package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"prdashboard/internal/app/dto"
	"prdashboard/internal/domain/popover"
)

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) OverviewPRAssignment(c *gin.Context) {
	repos, err := parseRepos(c.QueryArray("repo"))
	if err != nil {
		h.badRequest(c, "repo must be a list of integer repository ids")
		return
	}
	interval := c.DefaultQuery("interval", "W")

	spec, err := h.OverviewSvc.PRAssignment(c.Request.Context(), repos, interval)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, spec)
}

func (h *Handler) OverviewPRAssignmentPopover(c *gin.Context) {
	var body dto.PopoverRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "invalid JSON")
		return
	}

	c.JSON(http.StatusOK, dto.PopoverResponse{
		IsOpen: popover.Toggle(body.NClicks, body.IsOpen),
	})
}

// parseRepos accepts repeated parameters and comma separated lists, keeping
// the caller's order.
func parseRepos(values []string) ([]int64, error) {
	var repos []int64
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return nil, err
			}
			repos = append(repos, id)
		}
	}
	return repos, nil
}
