package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hanseo-dev/siteoffice/internal/model"
	"github.com/hanseo-dev/siteoffice/internal/service"
)

func (h *Handler) staffInput(c *gin.Context) (service.StaffInput, bool) {
	input := service.StaffInput{
		Name:      c.PostForm("name"),
		Role:      c.PostForm("role"),
		DailyWage: c.PostForm("daily_wage"),
		Salary:    c.PostForm("salary"),
		BirthDate: c.PostForm("birth_date"),
		StartDate: c.PostForm("start_date"),
		EndDate:   c.PostForm("end_date"),
		IsActive:  c.DefaultPostForm("is_active", "1"),
		CertText:  c.PostForm("cert_text"),
	}

	fileHeader, err := c.FormFile("photo")
	if err == nil {
		stored, saveErr := h.store.Save(c, subdirStaffPhotos, fileHeader)
		if saveErr != nil {
			h.handleError(c, saveErr)
			return input, false
		}
		input.Photo = stored
	}
	return input, true
}

func (h *Handler) listStaff(c *gin.Context) {
	rows, err := h.staff.List(c.Request.Context(), c.Query("search"), c.Query("active"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows})
}

func (h *Handler) createStaff(c *gin.Context) {
	input, ok := h.staffInput(c)
	if !ok {
		return
	}

	id, err := h.staff.Create(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) getStaff(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	detail, err := h.staff.Detail(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"staff": detail})
}

func (h *Handler) updateStaff(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	input, ok := h.staffInput(c)
	if !ok {
		return
	}

	if err := h.staff.Update(c.Request.Context(), id, input); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h *Handler) toggleStaffActive(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.staff.ToggleActive(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h *Handler) deleteStaff(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.staff.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h *Handler) addStaffCerts(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	headers := form.File["cert_files"]
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cert_files is required"})
		return
	}

	var files []model.StoredFile
	for _, fh := range headers {
		stored, err := h.store.Save(c, service.SubdirStaffCerts, fh)
		if err != nil {
			h.handleError(c, err)
			return
		}
		files = append(files, *stored)
	}

	if err := h.staff.AddCertFiles(c.Request.Context(), id, files); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "added": len(files)})
}

func (h *Handler) downloadStaffCert(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	fileID, err := strconv.ParseInt(c.Param("fileId"), 10, 64)
	if err != nil || fileID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file id"})
		return
	}

	cert, err := h.staff.CertFile(c.Request.Context(), id, fileID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	name := cert.OriginalName
	if name == "" {
		name = cert.Filename
	}
	c.FileAttachment(h.store.Path(service.SubdirStaffCerts, cert.Filename), name)
}

func (h *Handler) deleteStaffCert(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	fileID, err := strconv.ParseInt(c.Param("fileId"), 10, 64)
	if err != nil || fileID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file id"})
		return
	}

	if err := h.staff.DeleteCertFile(c.Request.Context(), id, fileID); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": fileID})
}
