package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/complexparts-backend/internal/domain/catalog"
	"github.com/yungbote/complexparts-backend/internal/http/response"
	"github.com/yungbote/complexparts-backend/internal/platform/dbctx"
	"github.com/yungbote/complexparts-backend/internal/platform/logger"
	"github.com/yungbote/complexparts-backend/internal/services"
)

type CountHandler struct {
	log   *logger.Logger
	count services.CountService
}

func NewCountHandler(log *logger.Logger, count services.CountService) *CountHandler {
	return &CountHandler{
		log:   log.With("handler", "CountHandler"),
		count: count,
	}
}

type countRequest struct {
	Selections []catalog.Selection `json:"selections"`
}

// POST /api/count
func (h *CountHandler) CountParts(c *gin.Context) {
	var req countRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusUnprocessableEntity, "invalid_request", err)
		return
	}
	items, err := h.count.CountParts(dbctx.Context{Ctx: c.Request.Context()}, req.Selections)
	if err != nil {
		response.RespondCatalogError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"items": items})
}
