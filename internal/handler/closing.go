package handler

import (
	"net/http"

	"github.com/fdestra28/kasirtta-sub000/internal/dto"
	"github.com/fdestra28/kasirtta-sub000/internal/middleware"
	"github.com/fdestra28/kasirtta-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ClosingHandler struct{ svc service.ClosingService }

func NewClosingHandler(svc service.ClosingService) *ClosingHandler {
	return &ClosingHandler{svc: svc}
}

// Close snapshots the period's financials and resets the transactional
// tables. Owner-only; irreversible.
func (h *ClosingHandler) Close(c *gin.Context) {
	var req dto.CloseBooksRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	userID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Close(c.Request.Context(), userID, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ClosingHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
