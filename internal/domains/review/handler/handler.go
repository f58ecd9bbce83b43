package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookreview-backend/internal/domains/review/model"
	"bookreview-backend/internal/domains/review/service"
	"bookreview-backend/internal/shared/middleware"
	"bookreview-backend/internal/shared/response"
)

type ReviewHandler struct {
	service service.ServiceInterface
}

func NewReviewHandler(service service.ServiceInterface) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// List handles GET /api/reviews?bookId=
func (h *ReviewHandler) List(c *gin.Context) {
	reviews, err := h.service.List(c.Request.Context(), c.Query("bookId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessList(c, len(reviews), int64(len(reviews)), gin.H{"reviews": reviews})
}

// GetByID handles GET /api/reviews/:id
func (h *ReviewHandler) GetByID(c *gin.Context) {
	review, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"review": review})
}

// Create handles POST /api/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	identity, _ := middleware.Identity(c)

	var req model.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	review, err := h.service.Create(c.Request.Context(), identity, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"review": review})
}

// Update handles PUT /api/reviews/:id
func (h *ReviewHandler) Update(c *gin.Context) {
	identity, _ := middleware.Identity(c)

	var req model.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	review, err := h.service.Update(c.Request.Context(), identity, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"review": review})
}

// Delete handles DELETE /api/reviews/:id
func (h *ReviewHandler) Delete(c *gin.Context) {
	identity, _ := middleware.Identity(c)

	if err := h.service.Delete(c.Request.Context(), identity, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Refine handles POST /api/reviews/:id/refine - queues AI refinement.
func (h *ReviewHandler) Refine(c *gin.Context) {
	identity, _ := middleware.Identity(c)

	review, err := h.service.Refine(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusAccepted, gin.H{"review": review})
}
