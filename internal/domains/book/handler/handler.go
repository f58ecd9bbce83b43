package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookreview-backend/internal/domains/book/model"
	"bookreview-backend/internal/domains/book/service"
	"bookreview-backend/internal/shared/middleware"
	"bookreview-backend/internal/shared/response"
)

type BookHandler struct {
	service service.ServiceInterface
}

func NewBookHandler(service service.ServiceInterface) *BookHandler {
	return &BookHandler{service: service}
}

// List handles GET /api/books with filter/sort/fields/page/limit params.
func (h *BookHandler) List(c *gin.Context) {
	books, total, err := h.service.List(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessList(c, len(books), total, gin.H{"books": books})
}

// Featured handles GET /api/books/featured
func (h *BookHandler) Featured(c *gin.Context) {
	books, err := h.service.Featured(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessList(c, len(books), int64(len(books)), gin.H{"books": books})
}

// GetByID handles GET /api/books/:id
func (h *BookHandler) GetByID(c *gin.Context) {
	book, reviews, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"book": book, "reviews": reviews})
}

// Create handles POST /api/books (admin)
func (h *BookHandler) Create(c *gin.Context) {
	identity, _ := middleware.Identity(c)

	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	book, err := h.service.Create(c.Request.Context(), identity, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"book": book})
}

// Update handles PUT /api/books/:id (admin)
func (h *BookHandler) Update(c *gin.Context) {
	identity, _ := middleware.Identity(c)

	var req model.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	book, err := h.service.Update(c.Request.Context(), identity, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"book": book})
}

// Delete handles DELETE /api/books/:id (admin)
func (h *BookHandler) Delete(c *gin.Context) {
	identity, _ := middleware.Identity(c)

	if err := h.service.Delete(c.Request.Context(), identity, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
