package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hanseo-dev/siteoffice/internal/service"
)

type estimateItemRequest struct {
	ItemName       string `json:"item_name"`
	Spec           string `json:"spec"`
	Unit           string `json:"unit"`
	Qty            string `json:"qty"`
	MaterialUnit   string `json:"material_unit"`
	MaterialAmount string `json:"material_amount"`
	LaborUnit      string `json:"labor_unit"`
	LaborAmount    string `json:"labor_amount"`
	ExpenseUnit    string `json:"expense_unit"`
	ExpenseAmount  string `json:"expense_amount"`
	TotalUnit      string `json:"total_unit"`
	TotalAmount    string `json:"total_amount"`
	Note           string `json:"note"`
}

type estimateRequest struct {
	Title      string                `json:"title"`
	ClientName string                `json:"client_name"`
	Items      []estimateItemRequest `json:"items"`
}

func (r estimateRequest) toInput() service.EstimateInput {
	input := service.EstimateInput{Title: r.Title, ClientName: r.ClientName}
	for _, item := range r.Items {
		input.Items = append(input.Items, service.EstimateItemInput(item))
	}
	return input
}

func (h *Handler) listEstimates(c *gin.Context) {
	result, err := h.estimates.List(c.Request.Context(), c.Query("search"), c.Query("page"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"rows":         result.Rows,
		"row_numbers":  result.RowNumbers,
		"pagination":   pageMeta(result.Page),
		"search_query": result.SearchQuery,
	})
}

func (h *Handler) createEstimate(c *gin.Context) {
	var req estimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.estimates.Create(c.Request.Context(), req.toInput())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) getEstimate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	fillRows := 0
	if raw := c.Query("fill_rows"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			fillRows = n
		}
	}

	detail, err := h.estimates.Detail(c.Request.Context(), id, fillRows)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"estimate": detail.Estimate, "items": detail.Items})
}

func (h *Handler) updateEstimate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req estimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.estimates.Update(c.Request.Context(), id, req.toInput()); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h *Handler) copyEstimate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	newID, err := h.estimates.Copy(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": newID})
}

func (h *Handler) deleteEstimate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.estimates.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h *Handler) nextEstimateNo(c *gin.Context) {
	no, err := h.estimates.NextNo(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"next_no": no})
}

func (h *Handler) exportEstimate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	result, err := h.estimates.ExportWorkbook(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.sendAttachment(c, mimeXLSX, result.FileName, result.Content)
}
