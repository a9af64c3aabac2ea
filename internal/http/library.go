package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hanseo-dev/siteoffice/internal/service"
)

func (h *Handler) libraryInput(c *gin.Context) (service.LibraryInput, bool) {
	input := service.LibraryInput{
		Title:    c.PostForm("title"),
		Category: c.PostForm("category"),
		DocType:  c.PostForm("doc_type"),
		Memo:     c.PostForm("memo"),
	}

	fileHeader, err := c.FormFile("file")
	if err == nil {
		stored, saveErr := h.store.Save(c, service.SubdirLibrary, fileHeader)
		if saveErr != nil {
			h.handleError(c, saveErr)
			return input, false
		}
		input.File = stored
	}
	return input, true
}

func (h *Handler) listLibrary(c *gin.Context) {
	result, err := h.library.List(c.Request.Context(), c.Query("search"), c.Query("doc_type"), c.Query("page"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"rows":         result.Rows,
		"pagination":   pageMeta(result.Page),
		"search_query": result.SearchQuery,
		"doc_type":     result.DocType,
	})
}

func (h *Handler) createLibraryDoc(c *gin.Context) {
	input, ok := h.libraryInput(c)
	if !ok {
		return
	}

	id, err := h.library.Create(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) getLibraryDoc(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	doc, err := h.library.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"doc": doc})
}

func (h *Handler) updateLibraryDoc(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	input, ok := h.libraryInput(c)
	if !ok {
		return
	}

	if err := h.library.Update(c.Request.Context(), id, input); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h *Handler) deleteLibraryDoc(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.library.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h *Handler) downloadLibraryFile(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	doc, err := h.library.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if doc.Filename == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "document has no attached file"})
		return
	}

	name := doc.OriginalName
	if name == "" {
		name = doc.Filename
	}
	c.FileAttachment(h.store.Path(service.SubdirLibrary, doc.Filename), name)
}
