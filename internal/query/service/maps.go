package service

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/geomashup/geofeed-backend/internal/pkg/errors"
	"github.com/geomashup/geofeed-backend/internal/pkg/response"
	"github.com/geomashup/geofeed-backend/internal/query/biz"
	"go.uber.org/zap"
)

// RegisterMapRoutes registers the cached map image route at the root so
// the map_url values in search responses resolve directly.
func (s *QueryService) RegisterMapRoutes(r *gin.Engine) {
	r.GET("/maps/:key", s.ServeMap)
}

// ServeMap streams the cached map image for a location key. A missing
// slot is a plain 404; substituting a placeholder is the renderer's job.
func (s *QueryService) ServeMap(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		response.ErrorWithCode(c, apperrors.ErrImageNotFound)
		return
	}

	reader, contentType, size, err := s.images.Get(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, biz.ErrImageNotFound) {
			response.ErrorWithCode(c, apperrors.ErrImageNotFound, key)
			return
		}
		s.logger.Error("failed to read cached map image",
			zap.String("location", key), zap.Error(err))
		response.ErrorWithCode(c, apperrors.ErrImageStore)
		return
	}
	defer reader.Close()

	c.DataFromReader(http.StatusOK, size, contentType, reader, nil)
}
