package handler

import (
	"net/http"
	"strconv"

	"github.com/fdestra28/kasirtta-sub000/internal/dto"
	"github.com/fdestra28/kasirtta-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

// SalesSummary returns gross sales, cost, expenses and net profit for the
// period (defaults to the current month).
func (h *ReportsHandler) SalesSummary(c *gin.Context) {
	var period dto.ReportPeriod
	if !bindQuery(c, &period) {
		return
	}
	resp, err := h.svc.SalesSummary(c.Request.Context(), period)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportsHandler) DailySales(c *gin.Context) {
	var period dto.ReportPeriod
	if !bindQuery(c, &period) {
		return
	}
	resp, err := h.svc.DailySales(c.Request.Context(), period)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportsHandler) BestSellers(c *gin.Context) {
	var period dto.ReportPeriod
	if !bindQuery(c, &period) {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	resp, err := h.svc.BestSellers(c.Request.Context(), period, limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
