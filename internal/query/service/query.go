package service

import (
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/geomashup/geofeed-backend/internal/pkg/logger"
	"github.com/geomashup/geofeed-backend/internal/pkg/response"
	"github.com/geomashup/geofeed-backend/internal/query/biz"
	"github.com/geomashup/geofeed-backend/internal/query/types"
	"go.uber.org/zap"
)

// QueryService exposes the search pipeline over HTTP.
type QueryService struct {
	uc     *biz.QueryUseCase
	images biz.ImageStore
	logger *logger.Logger
}

// NewQueryService creates the query HTTP service
func NewQueryService(uc *biz.QueryUseCase, images biz.ImageStore, log *logger.Logger) *QueryService {
	if log == nil {
		log = logger.L()
	}
	return &QueryService{uc: uc, images: images, logger: log}
}

// RegisterRoutes registers the API routes
func (s *QueryService) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/search", s.Search)
}

type postItem struct {
	ID       string `json:"id"`
	Author   string `json:"author"`
	Text     string `json:"text"`
	Location string `json:"location"`
	MapURL   string `json:"map_url"`
}

type searchResponse struct {
	Query    string     `json:"query"`
	CacheHit bool       `json:"cache_hit"`
	Count    int        `json:"count"`
	TookMs   int64      `json:"took_ms"`
	Items    []postItem `json:"items"`
}

// Search handles GET /api/v1/search?text=...&type=...&lang=...
// Validation is total: anything missing, blank, or outside the enumerated
// sets is rejected before any external call is made.
func (s *QueryService) Search(c *gin.Context) {
	var in types.QueryInput
	// Binding cannot fail for plain string query params; validation is
	// done by the use case so rejection is uniform.
	_ = c.ShouldBindQuery(&in)

	start := time.Now()

	result, err := s.uc.Query(c.Request.Context(), &in)
	if err != nil {
		s.logger.Warn("search request failed",
			zap.String("text", in.Text),
			zap.String("type", in.Category),
			zap.String("lang", in.Lang),
			zap.Error(err))
		response.HandleError(c, err)
		return
	}

	items := make([]postItem, 0, len(result.Items))
	for i := range result.Items {
		p := &result.Items[i]
		items = append(items, postItem{
			ID:       p.ID,
			Author:   p.Author,
			Text:     p.Text,
			Location: p.Location,
			MapURL:   "/maps/" + url.PathEscape(p.LocationKey()),
		})
	}

	response.Success(c, searchResponse{
		Query:    in.Text,
		CacheHit: result.CacheHit,
		Count:    len(items),
		TookMs:   time.Since(start).Milliseconds(),
		Items:    items,
	})
}
