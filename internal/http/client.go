package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hanseo-dev/siteoffice/internal/service"
)

func (h *Handler) clientInput(c *gin.Context) (service.ClientInput, bool) {
	input := service.ClientInput{
		Name:    c.PostForm("name"),
		BizNo:   c.PostForm("biz_no"),
		CeoName: c.PostForm("ceo_name"),
		Phone:   c.PostForm("phone"),
		Email:   c.PostForm("email"),
		Address: c.PostForm("address"),
		Memo:    c.PostForm("memo"),
	}

	fileHeader, err := c.FormFile("cert_file")
	if err == nil {
		stored, saveErr := h.store.Save(c, subdirClientCerts, fileHeader)
		if saveErr != nil {
			h.handleError(c, saveErr)
			return input, false
		}
		input.Cert = stored
	}
	return input, true
}

func (h *Handler) listClients(c *gin.Context) {
	result, err := h.clients.List(c.Request.Context(), c.Query("search"), c.Query("page"))
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

func (h *Handler) createClient(c *gin.Context) {
	input, ok := h.clientInput(c)
	if !ok {
		return
	}

	id, err := h.clients.Create(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) getClient(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	client, err := h.clients.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"client": client})
}

func (h *Handler) updateClient(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	input, ok := h.clientInput(c)
	if !ok {
		return
	}

	if err := h.clients.Update(c.Request.Context(), id, input); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h *Handler) deleteClient(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.clients.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h *Handler) exportClients(c *gin.Context) {
	result, err := h.clients.ExportWorkbook(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.sendAttachment(c, mimeXLSX, result.FileName, result.Content)
}

func (h *Handler) importClients(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.handleError(c, err)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		h.handleError(c, err)
		return
	}

	inserted, err := h.clients.ImportWorkbook(c.Request.Context(), content)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"inserted": inserted})
}

func (h *Handler) downloadClientCert(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	client, err := h.clients.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if client.CertFilename == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "client has no certificate file"})
		return
	}

	name := client.CertOriginalName
	if name == "" {
		name = client.CertFilename
	}
	c.FileAttachment(h.store.Path(subdirClientCerts, client.CertFilename), name)
}
