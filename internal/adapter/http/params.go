package http

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/couchcryptid/disaster-atlas/internal/domain"
)

const maxPreviewRows = 1000

// criteria reads type, country, from and to. Dates are YYYY-MM-DD.
func criteria(c *gin.Context) (domain.Criteria, error) {
	cr := domain.Criteria{
		Type:    c.Query("type"),
		Country: c.Query("country"),
	}
	var err error
	if cr.From, err = dateParam(c, "from"); err != nil {
		return cr, err
	}
	if cr.To, err = dateParam(c, "to"); err != nil {
		return cr, err
	}
	if !cr.From.IsZero() && !cr.To.IsZero() && cr.From.After(cr.To) {
		return cr, fmt.Errorf("from %s is after to %s", cr.From.Format(time.DateOnly), cr.To.Format(time.DateOnly))
	}
	return cr, nil
}

func dateParam(c *gin.Context, name string) (time.Time, error) {
	v := c.Query(name)
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be YYYY-MM-DD, got %q", name, v)
	}
	return t, nil
}

// intParam reads a non-negative integer; fallback is returned when absent.
func intParam(c *gin.Context, name string, fallback, maxValue int) (int, error) {
	v := c.Query(name)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 || n > maxValue {
		return 0, fmt.Errorf("%s must be an integer between 0 and %d, got %q", name, maxValue, v)
	}
	return n, nil
}

// threshold reads the pivot threshold; -1 selects the service default.
func threshold(c *gin.Context) (int, error) {
	return intParam(c, "threshold", -1, 1_000_000)
}
