package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/complexparts-backend/internal/http/response"
	"github.com/yungbote/complexparts-backend/internal/platform/dbctx"
	"github.com/yungbote/complexparts-backend/internal/platform/logger"
	"github.com/yungbote/complexparts-backend/internal/services"
)

type ComplexHandler struct {
	log     *logger.Logger
	catalog services.CatalogService
}

func NewComplexHandler(log *logger.Logger, catalog services.CatalogService) *ComplexHandler {
	return &ComplexHandler{
		log:     log.With("handler", "ComplexHandler"),
		catalog: catalog,
	}
}

type createComplexRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type setComplexPartRequest struct {
	PartID   uuid.UUID `json:"part_id" binding:"required"`
	Quantity *int      `json:"quantity" binding:"required"`
}

// GET /api/complexes
func (h *ComplexHandler) ListComplexes(c *gin.Context) {
	rows, err := h.catalog.ListComplexes(dbctx.Context{Ctx: c.Request.Context()})
	if err != nil {
		response.RespondCatalogError(c, err)
		return
	}
	response.RespondOK(c, rows)
}

// POST /api/complexes
func (h *ComplexHandler) CreateComplex(c *gin.Context) {
	var req createComplexRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusUnprocessableEntity, "invalid_request", err)
		return
	}
	out, err := h.catalog.CreateComplex(dbctx.Context{Ctx: c.Request.Context()}, req.Name, req.Description)
	if err != nil {
		response.RespondCatalogError(c, err)
		return
	}
	response.RespondCreated(c, out)
}

// GET /api/complexes/:id
func (h *ComplexHandler) GetComplex(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	out, err := h.catalog.GetComplex(dbctx.Context{Ctx: c.Request.Context()}, id)
	if err != nil {
		response.RespondCatalogError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// POST /api/complexes/:id/parts
func (h *ComplexHandler) SetComplexPart(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req setComplexPartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusUnprocessableEntity, "invalid_request", err)
		return
	}
	out, err := h.catalog.SetComplexPart(dbctx.Context{Ctx: c.Request.Context()}, id, req.PartID, *req.Quantity)
	if err != nil {
		response.RespondCatalogError(c, err)
		return
	}
	response.RespondCreated(c, out)
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.RespondError(c, http.StatusUnprocessableEntity, "invalid_id", err)
		return uuid.Nil, false
	}
	return id, true
}
