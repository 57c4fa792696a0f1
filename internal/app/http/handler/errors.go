package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"prdashboard/internal/app/dto"
	"prdashboard/internal/domain"
	"prdashboard/internal/domain/assignment"
	"prdashboard/internal/domain/overview"
)

func (h *Handler) writeError(c *gin.Context, err error) {
	if de := toDomainError(err); de != nil {
		c.JSON(de.HTTPStatus, dto.ErrorResponse{
			Error: dto.Error{
				Code:    string(de.Code),
				Message: de.Message,
			},
		})
		return
	}

	if errors.Is(err, context.Canceled) {
		h.Log.Debug("request cancelled", zap.String("path", c.FullPath()))
		c.AbortWithStatus(http.StatusRequestTimeout)
		return
	}

	h.Log.Error("internal error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: dto.Error{
			Code:    "INTERNAL_ERROR",
			Message: "internal server error",
		},
	})
}

func (h *Handler) badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: dto.Error{
			Code:    "BAD_REQUEST",
			Message: msg,
		},
	})
}

func toDomainError(err error) *domain.DomainError {
	var (
		de        *domain.DomainError
		argErr    *assignment.InvalidArgumentError
		schemaErr *assignment.SchemaError
		formatErr *assignment.DataFormatError
	)

	switch {
	case errors.As(err, &de):
		return de
	case errors.As(err, &argErr):
		return &domain.DomainError{Code: domain.ErrorCodeInvalidArgument, Message: argErr.Error(), HTTPStatus: http.StatusBadRequest}
	case errors.As(err, &schemaErr):
		return &domain.DomainError{Code: domain.ErrorCodeSchema, Message: schemaErr.Error(), HTTPStatus: http.StatusUnprocessableEntity}
	case errors.As(err, &formatErr):
		return &domain.DomainError{Code: domain.ErrorCodeDataFormat, Message: formatErr.Error(), HTTPStatus: http.StatusUnprocessableEntity}
	case errors.Is(err, overview.ErrCacheTimeout):
		return &domain.DomainError{Code: domain.ErrorCodeCacheTimeout, Message: "data is still loading, try again later", HTTPStatus: http.StatusGatewayTimeout}
	}
	return nil
}
