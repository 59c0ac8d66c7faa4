package recon_module

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/inethub/rrtool/commons/enums"
)

type Handler struct {
	service   *Service
	uploadDir string
}

func NewHandler(service *Service, uploadDir string) *Handler {
	return &Handler{service: service, uploadDir: uploadDir}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/api/process", h.process)
	r.POST("/api/vendorledger", h.vendorLedger)
}

type processForm struct {
	FromDate        string `form:"fromDate" binding:"required,isodate"`
	ToDate          string `form:"toDate" binding:"required,isodate"`
	ServiceName     string `form:"serviceName" binding:"required"`
	TransactionType string `form:"transactionType"`
}

type vendorLedgerForm struct {
	ServiceName     string `form:"serviceName" binding:"required"`
	TransactionType string `form:"transactionType"`
}

// process handles the single-file statement reconciliation form.
func (h *Handler) process(c *gin.Context) {
	var form processForm
	if err := c.ShouldBind(&form); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := validateDateRange(form.FromDate, form.ToDate); err != nil {
		badRequest(c, err.Error())
		return
	}
	if form.ServiceName == enums.ServiceDefault || !enums.IsStatementService(form.ServiceName) {
		badRequest(c, "Please select a service")
		return
	}
	txnType, err := normalizeTransactionType(form.ServiceName, form.TransactionType)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	file, err := h.stageUpload(c, "file", "file")
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	defer cleanupFiles(file.Path)

	uid, userName := currentUser(c)
	outcome := h.service.Process(c.Request.Context(), Submission{
		UID:             uid,
		UserName:        userName,
		FromDate:        form.FromDate,
		ToDate:          form.ToDate,
		ServiceName:     form.ServiceName,
		TransactionType: txnType,
		Files:           []SavedFile{file},
	})
	respond(c, outcome, "portal")
}

// vendorLedger handles the two-file statement/ledger comparison form.
func (h *Handler) vendorLedger(c *gin.Context) {
	var form vendorLedgerForm
	if err := c.ShouldBind(&form); err != nil {
		badRequest(c, err.Error())
		return
	}
	if form.ServiceName == enums.ServiceDefault || !enums.IsVendorLedgerService(form.ServiceName) {
		badRequest(c, "Please select a service")
		return
	}
	txnType, err := normalizeTransactionType(form.ServiceName, form.TransactionType)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	statement, err := h.stageUpload(c, "vendor_statement", "vendor_statement")
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	defer cleanupFiles(statement.Path)
	ledger, err := h.stageUpload(c, "vendor_ledger", "vendor_ledger")
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	defer cleanupFiles(ledger.Path)

	uid, userName := currentUser(c)
	outcome := h.service.Process(c.Request.Context(), Submission{
		UID:             uid,
		UserName:        userName,
		ServiceName:     form.ServiceName,
		TransactionType: txnType,
		Files:           []SavedFile{statement, ledger},
	})
	respond(c, outcome, "vendor")
}

func respond(c *gin.Context, outcome *Outcome, viewer string) {
	c.JSON(http.StatusOK, gin.H{
		"isSuccess":     outcome.Status == enums.STATUS_SUCCESS,
		"message":       outcome.Message,
		"viewer":        viewer,
		"result":        outcome.Result,
		"correlationId": outcome.CorrelationID,
		"auditLogged":   outcome.AuditLogged,
	})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"isSuccess": false, "message": msg})
}

func currentUser(c *gin.Context) (uint, string) {
	uid, _ := c.Get("uid")
	name, _ := c.Get("userName")
	id, _ := uid.(uint)
	userName, _ := name.(string)
	return id, userName
}

func validateDateRange(fromDate, toDate string) error {
	from, err := time.Parse("2006-01-02", fromDate)
	if err != nil {
		return fmt.Errorf("invalid fromDate: use YYYY-MM-DD")
	}
	to, err := time.Parse("2006-01-02", toDate)
	if err != nil {
		return fmt.Errorf("invalid toDate: use YYYY-MM-DD")
	}
	if to.Before(from) {
		return fmt.Errorf("To Date must be after From Date")
	}
	return nil
}

// normalizeTransactionType keeps the transaction type only for AEPS and
// resets it to unset for every other service.
func normalizeTransactionType(serviceName, txnType string) (string, error) {
	if serviceName != "AEPS" {
		return "", nil
	}
	if txnType == "" || txnType == enums.ServiceDefault {
		return "", nil
	}
	switch txnType {
	case "1", "2", "3":
		return txnType, nil
	}
	return "", fmt.Errorf("invalid transaction type %q", txnType)
}

// stageUpload validates an .xlsx attachment and stages it under the upload
// directory with a timestamped name.
func (h *Handler) stageUpload(c *gin.Context, field, prefix string) (SavedFile, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return SavedFile{}, fmt.Errorf("%s is required", field)
	}
	if header.Size == 0 {
		return SavedFile{}, fmt.Errorf("%s is empty", field)
	}
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".xlsx") {
		return SavedFile{}, fmt.Errorf("%s must be an .xlsx file", field)
	}
	path, err := saveFile(header, h.uploadDir, prefix)
	if err != nil {
		return SavedFile{}, fmt.Errorf("failed to process %s", field)
	}
	return SavedFile{Field: field, OriginalName: header.Filename, Path: path}, nil
}

func saveFile(header *multipart.FileHeader, uploadDir, prefix string) (string, error) {
	if err := os.MkdirAll(uploadDir, os.ModePerm); err != nil {
		return "", err
	}
	src, err := header.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	timestamp := time.Now().Format("20060102150405")
	path := filepath.Join(uploadDir, fmt.Sprintf("%s_%s_%s", prefix, timestamp, filepath.Base(header.Filename)))
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return path, nil
}

func cleanupFiles(files ...string) {
	for _, file := range files {
		if err := os.Remove(file); err != nil {
			log.Printf("Error removing file %s: %v\n", file, err)
		}
	}
}
