package ebo_module

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	recon_module "github.com/inethub/rrtool/modules/recon-module"
	results_module "github.com/inethub/rrtool/modules/results-module"
)

func serverError(status int, env *results_module.Envelope) string {
	message := "No error message"
	if env != nil && env.Message != "" {
		message = env.Message
	}
	return fmt.Sprintf("Server error (%d): %s", status, message)
}

type Handler struct {
	client *Client
}

func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/api/ebo/summary", h.summary)
	r.POST("/api/ebo/details", h.details)
	r.POST("/api/ebo/export", h.export)
}

// summary returns the tenant cards plus a per-list row counter taken from
// the aggregate-data service.
func (h *Handler) summary(c *gin.Context) {
	env, status, err := h.client.Summary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"isSuccess": false, "message": err.Error(), "tenants": TenantCards})
		return
	}
	if status != http.StatusOK {
		c.JSON(http.StatusOK, gin.H{"isSuccess": false, "message": serverError(status, env), "tenants": TenantCards})
		return
	}
	counts := map[string]int{}
	if env != nil {
		for key, value := range env.Data {
			if rows, ok := value.([]any); ok {
				counts[key] = len(rows)
			}
		}
	}
	message := ""
	if env != nil {
		message = env.Message
	}
	c.JSON(http.StatusOK, gin.H{
		"isSuccess": env != nil && env.IsSuccess,
		"message":   message,
		"counts":    counts,
		"tenants":   TenantCards,
	})
}

type detailsRequest struct {
	FromDate string `json:"fromDate" binding:"required,isodate"`
	ToDate   string `json:"toDate" binding:"required,isodate"`
	Status   string `json:"status" binding:"required"`
	Tenant   string `json:"tenant" binding:"required"`
}

// details forwards a tenant user query and returns the first row list of the
// response together with the tenant's column layout.
func (h *Handler) details(c *gin.Context) {
	var req detailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"isSuccess": false, "message": err.Error()})
		return
	}
	from, err := time.Parse("2006-01-02", req.FromDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"isSuccess": false, "message": "invalid fromDate: use YYYY-MM-DD"})
		return
	}
	to, err := time.Parse("2006-01-02", req.ToDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"isSuccess": false, "message": "invalid toDate: use YYYY-MM-DD"})
		return
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"isSuccess": false, "message": "From date cannot be after To date"})
		return
	}
	card, ok := TenantBySlug(req.Tenant)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"isSuccess": false, "message": "unknown tenant"})
		return
	}
	if !validStatus(card.Key, req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"isSuccess": false, "message": "invalid status for this tenant"})
		return
	}

	env, status, err := h.client.Details(c.Request.Context(), DetailQuery{
		FromDate:   req.FromDate,
		ToDate:     req.ToDate,
		Status:     req.Status,
		TenantName: card.Key,
	})
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"isSuccess": false, "message": err.Error()})
		return
	}
	if status != http.StatusOK {
		c.JSON(http.StatusOK, gin.H{"isSuccess": false, "message": serverError(status, env)})
		return
	}
	if env == nil || !env.IsSuccess {
		message := recon_module.MsgBusiness
		if env != nil && env.Message != "" {
			message = env.Message
		}
		c.JSON(http.StatusOK, gin.H{"isSuccess": false, "message": message})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"isSuccess":  true,
		"message":    env.Message,
		"tenantName": card.Key,
		"columns":    ColumnOrder(card.Key),
		"rows":       mainRows(env.Data),
	})
}

type exportRequest struct {
	Tenant string           `json:"tenant" binding:"required"`
	Rows   []map[string]any `json:"rows" binding:"required"`
}

// export writes one tenant's rows as a single-sheet workbook attachment.
func (h *Handler) export(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"isSuccess": false, "message": err.Error()})
		return
	}
	card, ok := TenantBySlug(req.Tenant)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"isSuccess": false, "message": "unknown tenant"})
		return
	}
	if len(req.Rows) == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"isSuccess": false, "message": "No data to export"})
		return
	}

	columns := ColumnOrder(card.Key)
	f := excelize.NewFile()
	sheet := "Sheet1"
	header := make([]any, len(columns))
	for i, col := range columns {
		header[i] = col
	}
	_ = f.SetSheetRow(sheet, "A1", &header)
	for i, row := range req.Rows {
		cells := make([]any, len(columns))
		for j, col := range columns {
			if value, ok := row[col]; ok && value != nil {
				cells[j] = fmt.Sprintf("%v", value)
			} else {
				cells[j] = ""
			}
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		_ = f.SetSheetRow(sheet, cell, &cells)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"isSuccess": false, "message": "Failed to build workbook"})
		return
	}
	filename := fmt.Sprintf("%s_Report_%s.xlsx", card.Key, time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// mainRows returns the first list value found in the payload, matching how
// the detail endpoints wrap their row set under a single key.
func mainRows(data map[string]any) []map[string]any {
	for _, value := range data {
		rows, ok := value.([]any)
		if !ok {
			continue
		}
		out := make([]map[string]any, 0, len(rows))
		for _, item := range rows {
			if row, ok := item.(map[string]any); ok {
				out = append(out, row)
			}
		}
		return out
	}
	return nil
}
