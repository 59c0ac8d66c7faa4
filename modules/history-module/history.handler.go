package history_module

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/inethub/rrtool/database/entities"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/api/fetch_user_history", h.fetchHistory)
	r.POST("/api/user-task-history", h.createHistory)
	r.GET("/api/user_history/search", h.searchHistory)
}

// historyView renders an audit row with normalized timestamp strings.
type historyView struct {
	ID               uint   `json:"id"`
	UID              uint   `json:"uid"`
	UserName         string `json:"userName"`
	ServiceName      string `json:"serviceName"`
	FromDate         string `json:"fromDate"`
	ToDate           string `json:"toDate"`
	UploadedFileName string `json:"uploadedFileName"`
	ResponseMessage  string `json:"responseMessage"`
	TransactionType  *int   `json:"transactionType"`
	ResponseStatus   string `json:"responseStatus"`
	CreatedAt        string `json:"createdAt"`
}

func toView(rec entities.UserTaskHistory) historyView {
	v := historyView{
		ID:               rec.ID,
		UID:              rec.UID,
		UserName:         rec.UserName,
		ServiceName:      rec.ServiceName,
		UploadedFileName: rec.UploadedFileName,
		ResponseMessage:  rec.ResponseMessage,
		TransactionType:  rec.TransactionType,
		ResponseStatus:   rec.ResponseStatus,
		CreatedAt:        rec.CreatedAt.In(LocalZone).Format(TimestampLayout),
	}
	if rec.FromDate != nil {
		v.FromDate = rec.FromDate.Format("2006-01-02")
	}
	if rec.ToDate != nil {
		v.ToDate = rec.ToDate.Format("2006-01-02")
	}
	return v
}

func toViews(rows []entities.UserTaskHistory) []historyView {
	views := make([]historyView, 0, len(rows))
	for _, row := range rows {
		views = append(views, toView(row))
	}
	return views
}

func (h *Handler) fetchHistory(c *gin.Context) {
	rows, err := h.service.ListAll()
	if err != nil {
		log.Println("Fetch history failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "DB Fetch Failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": toViews(rows)})
}

func (h *Handler) createHistory(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	rec, err := h.service.CreateFromRequest(req)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		log.Println("Failed to save task history:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "DB Save Failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": toView(*rec)})
}

func (h *Handler) searchHistory(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	result, err := h.service.Search(SearchParams{
		FromDate: c.Query("fromDate"),
		ToDate:   c.Query("toDate"),
		Query:    c.Query("q"),
		Page:     page,
	})
	if err != nil {
		if errors.Is(err, ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		log.Println("Search history failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "DB Fetch Failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"data":      toViews(result.Rows),
		"total":     result.Total,
		"page":      result.Page,
		"pageCount": result.PageCount,
	})
}
