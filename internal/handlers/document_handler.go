package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"

	"collabra_backend/internal/config"
	"collabra_backend/internal/middleware"
	"collabra_backend/internal/models"
	"collabra_backend/internal/services"
	"collabra_backend/internal/services/dto"
	"collabra_backend/internal/storage"
	"collabra_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DocumentHandler struct {
	*BaseHandler
	documentService services.DocumentService
	storage         storage.Storage
}

func NewDocumentHandler(base *BaseHandler, documentService services.DocumentService, store storage.Storage) *DocumentHandler {
	return &DocumentHandler{
		BaseHandler:     base,
		documentService: documentService,
		storage:         store,
	}
}

func (h *DocumentHandler) RegisterRoutes(r *gin.RouterGroup) {
	docs := r.Group("/documents")
	docs.Use(middleware.AuthMiddleware())
	{
		docs.POST("", h.Upload)
		docs.GET("", h.List)
	}

	admin := r.Group("/admin/documents")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		admin.GET("/pending", h.ListPending)
		admin.PUT("/:documentId/decision", h.Decide)
	}
}

func (h *DocumentHandler) Upload(c *gin.Context) {
	ownerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	docType := models.DocumentType(c.PostForm("document_type"))
	if !models.IsAllowedDocumentType(docType) {
		apperrors.HandleError(c, apperrors.ErrInvalidDocumentType)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing required form field: file"))
		return
	}

	cfg := config.GetConfig()
	if fileHeader.Size > cfg.Upload.MaxSize {
		apperrors.HandleError(c, apperrors.ErrFileTooLarge)
		return
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !isAllowedContentType(contentType, cfg.Upload.AllowedTypes) {
		apperrors.HandleError(c, apperrors.ErrInvalidFileType)
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}
	defer src.Close()

	fileRef := fmt.Sprintf("documents/%s/%s%s", ownerID, uuid.NewString(), filepath.Ext(fileHeader.Filename))
	if err := h.storage.Save(c.Request.Context(), fileRef, src, contentType); err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}

	doc, err := h.documentService.Upload(h.GetDB(c), ownerID, docType, fileRef)
	if err != nil {
		// The document row is the durable fact, so an insert failure makes
		// the stored blob an orphan; clean it up.
		_ = h.storage.Delete(c.Request.Context(), fileRef)
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.UploadDocumentResponse{
		DocumentID: doc.ID,
		Status:     doc.Status,
	})
}

func (h *DocumentHandler) List(c *gin.Context) {
	ownerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var docType *models.DocumentType
	if typeStr := c.Query("type"); typeStr != "" {
		t := models.DocumentType(typeStr)
		docType = &t
	}

	docs, err := h.documentService.ListForOwner(h.GetDB(c), ownerID, docType)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"documents": dto.NewDocumentDTOs(docs)})
}

func (h *DocumentHandler) ListPending(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	docs, err := h.documentService.ListPending(h.GetDB(c), pageSize, (page-1)*pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"documents": dto.NewDocumentDTOs(docs)})
}

func (h *DocumentHandler) Decide(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	documentID := c.Param("documentId")

	var req dto.DecideDocumentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	doc, err := h.documentService.Decide(h.GetDB(c), documentID, adminID, req.Decision, req.Reason)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDocumentDTO(doc))
}

func isAllowedContentType(contentType string, allowed []string) bool {
	for _, t := range allowed {
		if t == contentType {
			return true
		}
	}
	return false
}
