package results_module

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/api/results/view", h.view)
	r.POST("/api/results/export", h.export)
}

// ViewRequest carries the ephemeral result envelope back from the caller;
// results are never persisted server-side.
type ViewRequest struct {
	Viewer  string   `json:"viewer" binding:"required,oneof=portal vendor"`
	Section string   `json:"section"`
	Page    int      `json:"page"`
	Result  Envelope `json:"result" binding:"required"`
}

type ExportRequest struct {
	Viewer  string   `json:"viewer" binding:"required,oneof=portal vendor"`
	Mode    string   `json:"mode" binding:"required,oneof=section all matched combined combined_csv"`
	Section string   `json:"section"`
	Result  Envelope `json:"result" binding:"required"`
}

func catalogFor(viewer string) Catalog {
	if viewer == "vendor" {
		return VendorLedger
	}
	return Portal
}

func (h *Handler) view(c *gin.Context) {
	var req ViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	catalog := catalogFor(req.Viewer)
	env := &req.Result
	active := catalog.ActiveSections(env)
	if len(active) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"sections": []Section{},
			"message":  env.FallbackMessage(),
		})
		return
	}

	section := active[0]
	if req.Section != "" {
		found := false
		for _, s := range active {
			if s.Key == req.Section {
				section, found = s, true
				break
			}
		}
		if !found {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "section not active"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"serviceName": env.ServiceName,
		"columns":     catalog.OrderedColumns(env.ServiceName),
		"counts":      catalog.Counts(env),
		"sections":    active,
		"matched":     activeOf(MatchedSections(env.ServiceName), env),
		"section":     catalog.Page(env, section, req.Page),
	})
}

func (h *Handler) export(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	catalog := catalogFor(req.Viewer)
	env := &req.Result

	var (
		name string
		data []byte
		err  error
	)
	switch req.Mode {
	case "section":
		name, data, err = catalog.ExportSection(env, req.Section)
	case "all":
		name, data, err = catalog.ExportAll(env)
	case "matched":
		if req.Viewer != "vendor" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "matched export is vendor-ledger only"})
			return
		}
		name, data, err = ExportMatched(env)
	case "combined":
		name, data, err = ExportCombined(env)
	case "combined_csv":
		name, data, err = ExportCombinedCSV(env)
	}
	if err != nil {
		if errors.Is(err, ErrNoRows) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "error": "no exportable rows"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	contentType := "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	if req.Mode == "combined_csv" {
		contentType = "text/csv"
	}
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, contentType, data)
}
