package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/complexparts-backend/internal/http/response"
	"github.com/yungbote/complexparts-backend/internal/platform/dbctx"
	"github.com/yungbote/complexparts-backend/internal/platform/logger"
	"github.com/yungbote/complexparts-backend/internal/services"
)

type PartHandler struct {
	log     *logger.Logger
	catalog services.CatalogService
}

func NewPartHandler(log *logger.Logger, catalog services.CatalogService) *PartHandler {
	return &PartHandler{
		log:     log.With("handler", "PartHandler"),
		catalog: catalog,
	}
}

type createPartRequest struct {
	Name string  `json:"name"`
	Unit *string `json:"unit"`
}

// GET /api/parts
func (h *PartHandler) ListParts(c *gin.Context) {
	parts, err := h.catalog.ListParts(dbctx.Context{Ctx: c.Request.Context()})
	if err != nil {
		response.RespondCatalogError(c, err)
		return
	}
	response.RespondOK(c, parts)
}

// POST /api/parts
func (h *PartHandler) CreatePart(c *gin.Context) {
	var req createPartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusUnprocessableEntity, "invalid_request", err)
		return
	}
	part, err := h.catalog.CreatePart(dbctx.Context{Ctx: c.Request.Context()}, req.Name, req.Unit)
	if err != nil {
		response.RespondCatalogError(c, err)
		return
	}
	response.RespondCreated(c, part)
}
