package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/hanseo-dev/siteoffice/internal/service"
	"github.com/hanseo-dev/siteoffice/internal/storage"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePDF  = "application/pdf"
)

type Handler struct {
	auth      *service.AuthService
	estimates *service.EstimateService
	contracts *service.ContractService
	progress  *service.ProgressService
	clients   *service.ClientService
	staff     *service.StaffService
	library   *service.LibraryService
	store     *storage.Store
	log       zerolog.Logger
}

func NewHandler(
	auth *service.AuthService,
	estimates *service.EstimateService,
	contracts *service.ContractService,
	progress *service.ProgressService,
	clients *service.ClientService,
	staff *service.StaffService,
	library *service.LibraryService,
	store *storage.Store,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		auth:      auth,
		estimates: estimates,
		contracts: contracts,
		progress:  progress,
		clients:   clients,
		staff:     staff,
		library:   library,
		store:     store,
		log:       log,
	}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	router.POST("/auth/login", h.login)

	protected := router.Group("/")
	protected.Use(authMiddleware)

	protected.GET("/estimates", h.listEstimates)
	protected.POST("/estimates", h.createEstimate)
	protected.GET("/estimates/next-no", h.nextEstimateNo)
	protected.GET("/estimates/:id", h.getEstimate)
	protected.PUT("/estimates/:id", h.updateEstimate)
	protected.DELETE("/estimates/:id", h.deleteEstimate)
	protected.POST("/estimates/:id/copy", h.copyEstimate)
	protected.GET("/estimates/:id/export", h.exportEstimate)

	protected.GET("/contracts", h.listContracts)
	protected.POST("/contracts", h.createContract)
	protected.GET("/contracts/select", h.listContractsForSelect)
	protected.GET("/contracts/next-no", h.nextContractNo)
	protected.GET("/contracts/:id", h.getContract)
	protected.PUT("/contracts/:id", h.updateContract)
	protected.DELETE("/contracts/:id", h.deleteContract)
	protected.GET("/contracts/:id/export/pdf", h.exportContractPDF)
	protected.GET("/contracts/:id/file", h.downloadContractFile)

	protected.GET("/progress", h.listProgress)
	protected.POST("/progress", h.createProgress)
	protected.GET("/progress/contract-base", h.progressContractBase)
	protected.GET("/progress/:id", h.getProgress)
	protected.PUT("/progress/:id", h.updateProgress)
	protected.DELETE("/progress/:id", h.deleteProgress)

	protected.GET("/clients", h.listClients)
	protected.POST("/clients", h.createClient)
	protected.GET("/clients/export", h.exportClients)
	protected.POST("/clients/import", h.importClients)
	protected.GET("/clients/:id", h.getClient)
	protected.PUT("/clients/:id", h.updateClient)
	protected.DELETE("/clients/:id", h.deleteClient)
	protected.GET("/clients/:id/cert", h.downloadClientCert)

	protected.GET("/staff", h.listStaff)
	protected.POST("/staff", h.createStaff)
	protected.GET("/staff/:id", h.getStaff)
	protected.PUT("/staff/:id", h.updateStaff)
	protected.DELETE("/staff/:id", h.deleteStaff)
	protected.POST("/staff/:id/toggle-active", h.toggleStaffActive)
	protected.POST("/staff/:id/certs", h.addStaffCerts)
	protected.GET("/staff/:id/certs/:fileId", h.downloadStaffCert)
	protected.DELETE("/staff/:id/certs/:fileId", h.deleteStaffCert)

	protected.GET("/library", h.listLibrary)
	protected.POST("/library", h.createLibraryDoc)
	protected.GET("/library/:id", h.getLibraryDoc)
	protected.PUT("/library/:id", h.updateLibraryDoc)
	protected.DELETE("/library/:id", h.deleteLibraryDoc)
	protected.GET("/library/:id/file", h.downloadLibraryFile)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func pageMeta(p service.Page) gin.H {
	return gin.H{
		"total_count":  p.TotalCount,
		"total_pages":  p.TotalPages,
		"current_page": p.CurrentPage,
		"per_page":     p.PerPage,
		"start_number": p.StartNumber,
	}
}

func (h *Handler) sendAttachment(c *gin.Context, contentType, fileName string, content []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+storage.SanitizeFileName(fileName)+`"`)
	c.Data(http.StatusOK, contentType, content)
}
