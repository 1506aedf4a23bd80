package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prnvtripathi/tract-us/model"
	"github.com/prnvtripathi/tract-us/pkg/logger"
	"github.com/prnvtripathi/tract-us/service"
)

// maxUploadSize caps contract uploads at 5MB
const maxUploadSize = 5 << 20

// objectUploader stores a contract document and returns its retrieval URL
type objectUploader interface {
	UploadContract(ctx context.Context, ownerID, filename string, reader io.Reader, size int64, contentType string) (string, error)
}

// analysisStarter schedules the asynchronous analysis pipeline
type analysisStarter interface {
	StartAnalysis(fileURL, ownerID, contractID string)
}

type AnalyzeHandler struct {
	uploader objectUploader
	analyzer analysisStarter
	store    service.ContractStore
}

func NewAnalyzeHandler(uploader objectUploader, analyzer analysisStarter, store service.ContractStore) *AnalyzeHandler {
	return &AnalyzeHandler{
		uploader: uploader,
		analyzer: analyzer,
		store:    store,
	}
}

// Analyze handles contract upload and schedules the analysis pipeline.
// The response is sent as soon as the DRAFT record exists; pipeline progress
// is communicated over the relay.
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	ownerID := c.PostForm("ownerId")
	if ownerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing ownerId in request body"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size exceeds 5MB"})
		return
	}

	status := c.PostForm("status")
	if status == "" {
		status = model.StatusDraft
	}
	if !model.ValidStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/pdf"
	}

	fileURL, err := h.uploader.UploadContract(c.Request.Context(), ownerID, header.Filename, file, header.Size, contentType)
	if err != nil {
		logger.Error(c.Request.Context(), "contract upload failed",
			"owner_id", ownerID,
			"filename", header.Filename,
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload file"})
		return
	}

	contract := &model.Contract{
		ID:         uuid.New().String(),
		ClientName: c.PostForm("clientName"),
		Data:       c.PostForm("data"),
		Status:     status,
		FileURL:    fileURL,
		OwnerID:    ownerID,
	}
	if err := h.store.Create(c.Request.Context(), contract); err != nil {
		logger.Error(c.Request.Context(), "failed to create contract record",
			"owner_id", ownerID,
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	h.analyzer.StartAnalysis(fileURL, ownerID, contract.ID)

	logger.Info(c.Request.Context(), "analysis scheduled",
		"contract_id", contract.ID,
		"owner_id", ownerID,
		"file_url", fileURL,
	)

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"fileUrl":    fileURL,
		"contractId": contract.ID,
		"message":    "File uploaded successfully",
	})
}
