package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"bookreview-backend/internal/domains/book/model"
	"bookreview-backend/internal/domains/book/service"
	"bookreview-backend/internal/shared/middleware"
	"bookreview-backend/internal/shared/response"
	"bookreview-backend/pkg/logger"
)

type BookHandler struct {
	service service.ServiceInterface
}

func NewBookHandler(service service.ServiceInterface) *BookHandler {
	return &BookHandler{service: service}
}

// ListBooks - GET /api/v1/books
// Query params: author, genre, page, limit
func (h *BookHandler) ListBooks(c *gin.Context) {
	req := model.ListBooksRequest{
		Author: c.Query("author"),
		Genre:  c.Query("genre"),
		Page:   intQuery(c, "page", 1),
		Limit:  intQuery(c, "limit", service.DefaultBookLimit),
	}

	result, err := h.service.ListBooks(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// GetBookDetail - GET /api/v1/books/:id
// Query params: reviewPage, reviewLimit
func (h *BookHandler) GetBookDetail(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid book id")
		return
	}

	reviewPage := intQuery(c, "reviewPage", 1)
	reviewLimit := intQuery(c, "reviewLimit", service.DefaultReviewLimit)

	result, err := h.service.GetBookDetail(c.Request.Context(), bookID, reviewPage, reviewLimit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// SearchBooks - GET /api/v1/search
// Query params: q, page, limit
func (h *BookHandler) SearchBooks(c *gin.Context) {
	req := model.SearchBooksRequest{
		Query: c.Query("q"),
		Page:  intQuery(c, "page", 1),
		Limit: intQuery(c, "limit", service.DefaultSearchLimit),
	}

	result, err := h.service.SearchBooks(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// CreateBook - POST /api/v1/books
func (h *BookHandler) CreateBook(c *gin.Context) {
	principalID, ok := middleware.PrincipalID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	book, err := h.service.CreateBook(c.Request.Context(), principalID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, model.CreateBookResponse{
		Message: "Book added successfully",
		Book:    *book,
	})
}

func (h *BookHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrBookNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, model.ErrISBNExists):
		response.Conflict(c, err.Error())
	default:
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request", verrs)
			return
		}
		logger.Error("book operation failed", err)
		response.InternalServerError(c, "Internal server error")
	}
}

// intQuery parses a numeric query parameter, falling back to def when
// absent or non-numeric.
func intQuery(c *gin.Context, name string, def int) int {
	s := c.Query(name)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
