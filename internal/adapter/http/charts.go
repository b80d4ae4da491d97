package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/couchcryptid/disaster-atlas/internal/render"
)

const maxChartSide = 4000

var errUnknownChart = errors.New("unknown chart")

// chartFunc renders one named chart from the request query.
// It writes its own response and returns ok=false on a client error.
type chartFunc func(s *Server, c *gin.Context, size render.Size) (b []byte, ok bool, err error)

var chartRenderers = map[string]chartFunc{
	"locations":         chartLocations,
	"cumulative-deaths": chartCumulativeDeaths,
	"damage-over-time":  chartDamageOverTime,
	"deaths-by-type":    chartDeathsByType,
	"damage-vs-deaths":  chartDamageVsDeaths,
	"magnitude-deaths":  chartMagnitudeDeaths,
	"heatmap":           chartHeatmap,
}

// handleChart serves /charts/<name>.png. Rendered images are cached by
// name and normalized query.
func (s *Server) handleChart(c *gin.Context) {
	name := strings.TrimSuffix(c.Param("name"), ".png")
	draw, found := chartRenderers[name]
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("%s: %q", errUnknownChart, name)})
		return
	}

	key := name + "?" + c.Request.URL.Query().Encode()
	if b, hit := s.charts.Get(key); hit {
		s.metrics.ChartCache.WithLabelValues("hit").Inc()
		c.Data(http.StatusOK, "image/png", b)
		return
	}
	s.metrics.ChartCache.WithLabelValues("miss").Inc()

	size, err := chartSize(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	b, ok, err := draw(s, c, size)
	if !ok {
		return
	}
	if err != nil {
		s.renderError(c, name, err)
		return
	}
	s.charts.Put(key, b)
	c.Data(http.StatusOK, "image/png", b)
}

func chartSize(c *gin.Context) (render.Size, error) {
	w, err := intParam(c, "width", 0, maxChartSide)
	if err != nil {
		return render.Size{}, err
	}
	h, err := intParam(c, "height", 0, maxChartSide)
	if err != nil {
		return render.Size{}, err
	}
	return render.Size{Width: w, Height: h}, nil
}

func chartLocations(s *Server, c *gin.Context, size render.Size) ([]byte, bool, error) {
	cr, err := criteria(c)
	if err != nil {
		badRequest(c, err)
		return nil, false, nil
	}
	if cr.Type == "" {
		cr.Type = s.views.DefaultLocationType()
	}
	b, err := render.Locations(s.views.Locations(cr), locationsTitle(cr.Type), size)
	return b, true, err
}

func chartCumulativeDeaths(s *Server, c *gin.Context, size render.Size) ([]byte, bool, error) {
	cr, err := criteria(c)
	if err != nil {
		badRequest(c, err)
		return nil, false, nil
	}
	b, err := render.CumulativeDeaths(s.views.CumulativeDeaths(cr), size)
	return b, true, err
}

func chartDamageOverTime(s *Server, c *gin.Context, size render.Size) ([]byte, bool, error) {
	cr, err := criteria(c)
	if err != nil {
		badRequest(c, err)
		return nil, false, nil
	}
	b, err := render.DamageOverTime(s.views.DamageOverTime(cr), size)
	return b, true, err
}

func chartDeathsByType(s *Server, c *gin.Context, size render.Size) ([]byte, bool, error) {
	cr, err := criteria(c)
	if err != nil {
		badRequest(c, err)
		return nil, false, nil
	}
	b, err := render.DeathsByType(s.views.DeathsByTypeAndCountry(cr), size)
	return b, true, err
}

func chartDamageVsDeaths(s *Server, c *gin.Context, size render.Size) ([]byte, bool, error) {
	cr, err := criteria(c)
	if err != nil {
		badRequest(c, err)
		return nil, false, nil
	}
	b, err := render.DamageVsDeaths(s.views.DamageVsDeaths(cr), size)
	return b, true, err
}

func chartMagnitudeDeaths(s *Server, c *gin.Context, size render.Size) ([]byte, bool, error) {
	cmp, ok := s.magnitudeComparison(c)
	if !ok {
		return nil, false, nil
	}
	b, err := render.MagnitudeDeaths(cmp, size)
	return b, true, err
}

func chartHeatmap(s *Server, c *gin.Context, size render.Size) ([]byte, bool, error) {
	t, err := threshold(c)
	if err != nil {
		badRequest(c, err)
		return nil, false, nil
	}
	b, err := render.Heatmap(s.views.Heatmap(t), size)
	return b, true, err
}

func locationsTitle(disasterType string) string {
	return "Total Deaths by Disaster Location for " + disasterType
}
