package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	bookmodel "bookreview-backend/internal/domains/book/model"
	"bookreview-backend/internal/domains/review/model"
	"bookreview-backend/internal/domains/review/service"
	"bookreview-backend/internal/shared/middleware"
	"bookreview-backend/internal/shared/response"
	"bookreview-backend/pkg/logger"
)

type ReviewHandler struct {
	service service.ServiceInterface
}

func NewReviewHandler(service service.ServiceInterface) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// AddReview - POST /api/v1/books/:id/reviews
func (h *ReviewHandler) AddReview(c *gin.Context) {
	principalID, ok := middleware.PrincipalID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid book id")
		return
	}

	var req model.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	review, err := h.service.CreateReview(c.Request.Context(), principalID, bookID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, model.MutationResponse{
		Message: "Review added successfully",
		Review:  *review,
	})
}

// UpdateReview - PUT /api/v1/reviews/:id
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	principalID, ok := middleware.PrincipalID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid review id")
		return
	}

	var req model.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	review, err := h.service.UpdateReview(c.Request.Context(), principalID, reviewID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.MutationResponse{
		Message: "Review updated successfully",
		Review:  *review,
	})
}

// DeleteReview - DELETE /api/v1/reviews/:id
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	principalID, ok := middleware.PrincipalID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid review id")
		return
	}

	if err := h.service.DeleteReview(c.Request.Context(), principalID, reviewID); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.DeleteResponse{
		Message: "Review deleted successfully",
	})
}

func (h *ReviewHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrReviewNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, bookmodel.ErrBookNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, model.ErrAlreadyReviewed):
		response.Conflict(c, err.Error())
	case errors.Is(err, model.ErrNotOwner):
		response.Forbidden(c, err.Error())
	default:
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request", verrs)
			return
		}
		logger.Error("review operation failed", err)
		response.InternalServerError(c, "Internal server error")
	}
}
