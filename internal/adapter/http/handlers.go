package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/couchcryptid/disaster-atlas/internal/atlas"
	"github.com/couchcryptid/disaster-atlas/internal/domain"
	"github.com/couchcryptid/disaster-atlas/internal/render"
)

const (
	contentTypeGeoJSON = "application/geo+json"
	contentTypeXLSX    = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

func (s *Server) registerAPI(api *gin.RouterGroup) {
	api.GET("/meta", s.handleMeta)
	api.GET("/preview", s.handlePreview)
	api.GET("/locations", s.handleLocations)
	api.GET("/cumulative-deaths", s.handleCumulativeDeaths)
	api.GET("/damage-over-time", s.handleDamageOverTime)
	api.GET("/deaths-by-type-country", s.handleDeathsByTypeCountry)
	api.GET("/damage-vs-deaths", s.handleDamageVsDeaths)
	api.GET("/magnitude-deaths", s.handleMagnitudeDeaths)
	api.GET("/heatmap", s.handleHeatmap)
	api.GET("/heatmap.xlsx", s.handleHeatmapXLSX)
}

func (s *Server) handleMeta(c *gin.Context) {
	c.JSON(http.StatusOK, s.views.Meta())
}

func (s *Server) handlePreview(c *gin.Context) {
	n, err := intParam(c, "n", domain.DefaultPreviewRows, maxPreviewRows)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": nonNil(s.views.Preview(n))})
}

func (s *Server) handleLocations(c *gin.Context) {
	cr, err := criteria(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.Header("Content-Type", contentTypeGeoJSON)
	c.JSON(http.StatusOK, toGeoJSON(s.views.Locations(cr)))
}

func (s *Server) handleCumulativeDeaths(c *gin.Context) {
	cr, err := criteria(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"series": nonNil(s.views.CumulativeDeaths(cr))})
}

func (s *Server) handleDamageOverTime(c *gin.Context) {
	cr, err := criteria(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"series": nonNil(s.views.DamageOverTime(cr))})
}

func (s *Server) handleDeathsByTypeCountry(c *gin.Context) {
	cr, err := criteria(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": nonNil(s.views.DeathsByTypeAndCountry(cr))})
}

func (s *Server) handleDamageVsDeaths(c *gin.Context) {
	cr, err := criteria(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"points": nonNil(s.views.DamageVsDeaths(cr))})
}

func (s *Server) handleMagnitudeDeaths(c *gin.Context) {
	cmp, ok := s.magnitudeComparison(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, cmp)
}

func (s *Server) handleHeatmap(c *gin.Context) {
	t, err := threshold(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	p := s.views.Heatmap(t)
	c.JSON(http.StatusOK, gin.H{
		"threshold":     s.effectiveThreshold(t),
		"rows":          nonNil(p.Rows),
		"columns":       nonNil(p.Columns),
		"counts":        nonNil(p.Counts),
		"row_totals":    nonNil(p.RowTotals()),
		"column_totals": nonNil(p.ColumnTotals()),
	})
}

func (s *Server) handleHeatmapXLSX(c *gin.Context) {
	t, err := threshold(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	b, err := render.HeatmapXLSX(s.views.Heatmap(t), s.effectiveThreshold(t))
	if err != nil {
		s.renderError(c, "heatmap.xlsx", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="heatmap.xlsx"`)
	c.Data(http.StatusOK, contentTypeXLSX, b)
}

// magnitudeComparison writes the error response itself and reports false on failure.
func (s *Server) magnitudeComparison(c *gin.Context) (domain.Comparison, bool) {
	typ := c.Query("type")
	if typ == "" {
		badRequest(c, errors.New("type is required"))
		return domain.Comparison{}, false
	}
	cmp, err := s.views.MagnitudeDeaths(typ)
	switch {
	case errors.Is(err, atlas.ErrUnsupportedType):
		badRequest(c, err)
		return domain.Comparison{}, false
	case errors.Is(err, domain.ErrNoData):
		noDataResponse(c)
		return domain.Comparison{}, false
	case err != nil:
		s.logger.Error("magnitude comparison failed", "disaster_type", typ, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return domain.Comparison{}, false
	}
	return cmp, true
}

func (s *Server) effectiveThreshold(t int) int {
	if t < 0 {
		return s.views.PivotThreshold()
	}
	return t
}

func (s *Server) renderError(c *gin.Context, name string, err error) {
	if errors.Is(err, domain.ErrNoData) {
		noDataResponse(c)
		return
	}
	s.logger.Error("render failed", "chart", name, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("render %s failed", name)})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func noDataResponse(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"status": "no_data"})
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
