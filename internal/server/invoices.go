package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/portal/internal/clientcontext"
	"github.com/smallbiznis/portal/internal/i18n"
	portaldomain "github.com/smallbiznis/portal/internal/portal/domain"
	"github.com/smallbiznis/portal/internal/portal/export"
	"go.uber.org/zap"
)

func (s *Server) ListInvoices(c *gin.Context) {
	query, err := parseListingQuery(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	view, err := s.portalSvc.View(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": view})
}

type selectionRequest struct {
	IDs []string `json:"ids"`
}

func (s *Server) SetSelection(c *gin.Context) {
	var req selectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	view, err := s.portalSvc.SetSelection(c.Request.Context(), req.IDs)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": view})
}

type selectAllRequest struct {
	Selected bool `json:"selected"`
}

func (s *Server) ToggleSelectAll(c *gin.Context) {
	var req selectAllRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	view, err := s.portalSvc.ToggleSelectAll(c.Request.Context(), req.Selected)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": view})
}

func (s *Server) StartDownload(c *gin.Context) {
	state, err := s.portalSvc.StartDownload(c.Request.Context())
	if err != nil {
		s.abortAction(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"mode": state.Mode}})
}

// Download streams the export artifact. The temp archive, if any, is removed
// after the response is sent on every path, including client disconnects.
func (s *Server) Download(c *gin.Context) {
	result, err := s.portalSvc.Download(c.Request.Context())
	if err != nil {
		s.abortAction(c, err)
		return
	}
	defer result.Cleanup()

	if result.IsArchive() {
		c.FileAttachment(result.Path, result.FileName)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	c.Data(http.StatusOK, result.ContentType, result.Content)
}

func (s *Server) StartPayment(c *gin.Context) {
	state, err := s.portalSvc.StartPayment(c.Request.Context())
	if err != nil {
		s.abortAction(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"mode": state.Mode}})
}

// abortAction localizes the user-visible action errors; everything else goes
// through the shared error mapping.
func (s *Server) abortAction(c *gin.Context, err error) {
	switch {
	case errors.Is(err, portaldomain.ErrNoItemsSelected), errors.Is(err, export.ErrEmptySelection):
		s.respondUserError(c, http.StatusUnprocessableEntity, "no_items_selected", i18n.KeyNoItemsSelected)
	case errors.Is(err, export.ErrExportFailed):
		s.log.Warn("export failed", zap.Error(err))
		s.respondUserError(c, http.StatusInternalServerError, "export_failed", i18n.KeyExportFailed)
	default:
		AbortWithError(c, err)
	}
}

func (s *Server) respondUserError(c *gin.Context, status int, errType, key string) {
	locale := ""
	if identity, ok := clientcontext.FromContext(c.Request.Context()); ok {
		locale = identity.Locale
	}
	c.AbortWithStatusJSON(status, errorResponse{Error: errorPayload{
		Type:    errType,
		Message: s.translator.T(locale, key),
	}})
}
