package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prnvtripathi/tract-us/model"
	"github.com/prnvtripathi/tract-us/pkg/logger"
	"github.com/prnvtripathi/tract-us/relay"
	"github.com/prnvtripathi/tract-us/service"
)

type ContractHandler struct {
	store service.ContractStore
	hub   *relay.Hub
}

func NewContractHandler(store service.ContractStore, hub *relay.Hub) *ContractHandler {
	return &ContractHandler{
		store: store,
		hub:   hub,
	}
}

type createContractRequest struct {
	ClientName string `json:"clientName"`
	Data       string `json:"data"`
	Status     string `json:"status"`
	OwnerID    string `json:"ownerId"`
}

// Create handles contract creation without a file upload
func (h *ContractHandler) Create(c *gin.Context) {
	var req createContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if req.OwnerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing ownerId in request body"})
		return
	}

	status := req.Status
	if status == "" {
		status = model.StatusDraft
	}
	if !model.ValidStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	contract := &model.Contract{
		ID:         uuid.New().String(),
		ClientName: req.ClientName,
		Data:       req.Data,
		Status:     status,
		OwnerID:    req.OwnerID,
	}
	if err := h.store.Create(c.Request.Context(), contract); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, contract)
}

// List returns the owner's contracts with filters and pagination
func (h *ContractHandler) List(c *gin.Context) {
	ownerID := c.Query("ownerId")
	if ownerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing ownerId in request"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))

	filter := service.ListFilter{
		OwnerID:    ownerID,
		Status:     c.Query("status"),
		ClientName: c.Query("clientName"),
		ID:         c.Query("id"),
		Page:       page,
		PageSize:   pageSize,
	}
	service.NormalizePage(&filter)

	contracts, total, err := h.store.List(c.Request.Context(), filter)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to list contracts",
			"owner_id", ownerID,
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": contracts,
		"pagination": gin.H{
			"total":    total,
			"page":     filter.Page,
			"pageSize": filter.PageSize,
		},
	})
}

// Get returns a single contract by id
func (h *ContractHandler) Get(c *gin.Context) {
	contract, err := h.store.GetByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, contract)
}

type updateContractRequest struct {
	ClientName *string `json:"clientName"`
	Data       *string `json:"data"`
	Status     *string `json:"status"`
	OwnerID    string  `json:"ownerId"`
}

// Update applies a partial update scoped to the owning user
func (h *ContractHandler) Update(c *gin.Context) {
	var req updateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if req.OwnerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing ownerId in request body"})
		return
	}
	if req.Status != nil && !model.ValidStatus(*req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	id := c.Param("id")
	contract, err := h.store.Update(c.Request.Context(), id, req.OwnerID, service.ContractUpdate{
		ClientName: req.ClientName,
		Data:       req.Data,
		Status:     req.Status,
	})
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Status != nil && *req.Status == model.StatusFinalized {
		h.hub.Broadcast("contract:finalized", gin.H{"id": id})
	}

	c.JSON(http.StatusOK, contract)
}

type finalizeRequest struct {
	ID string `json:"id"`
}

// Finalize marks a contract FINALIZED and notifies connected clients
func (h *ContractHandler) Finalize(c *gin.Context) {
	var req finalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing id in request body"})
		return
	}

	status := model.StatusFinalized
	contract, err := h.store.Update(c.Request.Context(), req.ID, "", service.ContractUpdate{Status: &status})
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.hub.Broadcast("contract:finalized", gin.H{"id": req.ID})

	logger.Info(c.Request.Context(), "contract finalized", "contract_id", req.ID)
	c.JSON(http.StatusOK, contract)
}

// Delete removes a contract, scoped to the owning user
func (h *ContractHandler) Delete(c *gin.Context) {
	ownerID := c.Query("ownerId")
	if ownerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid ownerId"})
		return
	}

	err := h.store.Delete(c.Request.Context(), c.Param("id"), ownerID)
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
