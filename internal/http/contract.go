package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hanseo-dev/siteoffice/internal/model"
	"github.com/hanseo-dev/siteoffice/internal/service"
)

// Upload subdirectories under the configured upload root.
const (
	subdirContracts   = "contracts"
	subdirClientCerts = "client_certs"
	subdirStaffPhotos = "staff_photos"
)

func (h *Handler) listContracts(c *gin.Context) {
	result, err := h.contracts.List(c.Request.Context(), c.Query("search"), c.Query("page"))
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

func (h *Handler) listContractsForSelect(c *gin.Context) {
	contracts, err := h.contracts.ListForSelect(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": contracts})
}

func (h *Handler) contractInput(c *gin.Context) (service.ContractInput, bool) {
	input := service.ContractInput{
		ContractNo:  c.PostForm("contract_no"),
		Title:       c.PostForm("title"),
		ClientName:  c.PostForm("client_name"),
		TotalAmount: c.PostForm("total_amount"),
		StartDate:   c.PostForm("start_date"),
		EndDate:     c.PostForm("end_date"),
		BodyText:    c.PostForm("body_text"),
	}

	fileHeader, err := c.FormFile("pdf_file")
	if err == nil {
		stored, saveErr := h.store.Save(c, subdirContracts, fileHeader)
		if saveErr != nil {
			h.handleError(c, saveErr)
			return input, false
		}
		input.File = stored
	}
	return input, true
}

func (h *Handler) createContract(c *gin.Context) {
	input, ok := h.contractInput(c)
	if !ok {
		return
	}

	id, err := h.contracts.Create(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) getContract(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	detail, err := h.contracts.Detail(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"contract":         detail.Contract,
		"progress_history": detail.ProgressHistory,
		"summary":          progressSummary(detail.Summary),
	})
}

func (h *Handler) updateContract(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	input, ok := h.contractInput(c)
	if !ok {
		return
	}

	if err := h.contracts.Update(c.Request.Context(), id, input); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h *Handler) deleteContract(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.contracts.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h *Handler) nextContractNo(c *gin.Context) {
	no, err := h.contracts.NextNo(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"next_no": no})
}

func (h *Handler) exportContractPDF(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	result, err := h.contracts.ExportPDF(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.sendAttachment(c, mimePDF, result.FileName, result.Content)
}

func (h *Handler) downloadContractFile(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	detail, err := h.contracts.Detail(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if detail.PdfFilename == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "contract has no attached file"})
		return
	}
	name := detail.ContractNo + ".pdf"
	c.FileAttachment(h.store.Path(subdirContracts, detail.PdfFilename), name)
}

func progressSummary(s model.ProgressSummary) gin.H {
	return gin.H{
		"sum_paid":        s.SumPaid,
		"contract_total":  s.ContractTotal,
		"balance":         s.Balance,
		"cumulative_rate": s.CumulativeRate,
	}
}
