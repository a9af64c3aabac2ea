package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hanseo-dev/siteoffice/internal/service"
)

type progressRequest struct {
	ContractID     string `json:"contract_id"`
	ProgressMonth  string `json:"progress_month"`
	ProgressAmount string `json:"progress_amount"`
	Note           string `json:"note"`
}

func (h *Handler) listProgress(c *gin.Context) {
	result, err := h.progress.List(c.Request.Context(), c.Query("search"), c.Query("page"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"rows":         result.Rows,
		"pagination":   pageMeta(result.Page),
		"search_query": result.SearchQuery,
	})
}

func (h *Handler) createProgress(c *gin.Context) {
	var req progressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.progress.Create(c.Request.Context(), service.ProgressInput(req))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) getProgress(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	detail, err := h.progress.Detail(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"progress": detail.Progress,
		"summary":  progressSummary(detail.Summary),
		"at_this":  progressSummary(detail.AtThis),
	})
}

func (h *Handler) updateProgress(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req progressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.progress.Update(c.Request.Context(), id, service.ProgressInput(req)); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h *Handler) deleteProgress(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.progress.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h *Handler) progressContractBase(c *gin.Context) {
	contractID, err := strconv.ParseInt(c.Query("contract_id"), 10, 64)
	if err != nil || contractID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contract_id"})
		return
	}

	summary, err := h.progress.ContractBase(c.Request.Context(), contractID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": progressSummary(*summary)})
}
