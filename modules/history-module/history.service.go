package history_module

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/inethub/rrtool/commons/enums"
	"github.com/inethub/rrtool/database/entities"
)

// Timestamps are rendered in a fixed IST offset, matching where the tool is
// operated.
var LocalZone = time.FixedZone("IST", 5*3600+1800)

const TimestampLayout = "2006-01-02 15:04:05"

// CreateRequest is the POST /api/user-task-history body.
type CreateRequest struct {
	UID              uint   `json:"uid"`
	UserName         string `json:"userName"`
	ServiceName      string `json:"serviceName"`
	FromDate         string `json:"fromDate"`
	ToDate           string `json:"toDate"`
	UploadedFileName string `json:"uploadedFileName"`
	ResponseMessage  string `json:"responseMessage"`
	TransactionType  string `json:"transactionType"`
	ResponseStatus   string `json:"responseStatus"`
}

type Service struct {
	store Store
	now   func() time.Time
}

func New(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// CreateFromRequest parses the request into an audit row and persists it.
// Date strings become UTC-midnight timestamps; an unparseable date is an
// ErrValidation, a persistence failure an ErrStoreUnavailable.
func (s *Service) CreateFromRequest(req CreateRequest) (*entities.UserTaskHistory, error) {
	rec := &entities.UserTaskHistory{
		UID:              req.UID,
		UserName:         req.UserName,
		ServiceName:      req.ServiceName,
		UploadedFileName: req.UploadedFileName,
		ResponseMessage:  req.ResponseMessage,
		ResponseStatus:   req.ResponseStatus,
		CreatedAt:        s.now().UTC(),
	}

	var err error
	if rec.FromDate, err = parseUTCDate(req.FromDate); err != nil {
		return nil, err
	}
	if rec.ToDate, err = parseUTCDate(req.ToDate); err != nil {
		return nil, err
	}

	if req.TransactionType != "" && req.TransactionType != enums.ServiceDefault {
		t, err := strconv.Atoi(req.TransactionType)
		if err != nil || !enums.IsTransactionType(t) {
			return nil, fmt.Errorf("%w: bad transaction type %q", ErrValidation, req.TransactionType)
		}
		rec.TransactionType = &t
	}

	if err := s.store.Create(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) ListAll() ([]entities.UserTaskHistory, error) {
	return s.store.ListAll()
}

// SearchParams filter the full history list. Zero dates mean "today" in the
// local zone, matching the default browser view.
type SearchParams struct {
	FromDate string
	ToDate   string
	Query    string
	Page     int
}

const SearchPageSize = 15

type SearchResult struct {
	Rows      []entities.UserTaskHistory `json:"rows"`
	Total     int                        `json:"total"`
	Page      int                        `json:"page"`
	PageCount int                        `json:"pageCount"`
}

// Search applies the date-range and free-text predicates and paginates the
// result. ErrValidation is returned for a bad or inverted date range so the
// caller never queries with one.
func (s *Service) Search(p SearchParams) (*SearchResult, error) {
	today := s.now().In(LocalZone).Format("2006-01-02")
	if p.FromDate == "" {
		p.FromDate = today
	}
	if p.ToDate == "" {
		p.ToDate = today
	}
	if _, err := parseUTCDate(p.FromDate); err != nil {
		return nil, err
	}
	if _, err := parseUTCDate(p.ToDate); err != nil {
		return nil, err
	}
	if p.ToDate < p.FromDate {
		return nil, fmt.Errorf("%w: To Date cannot be earlier than From Date", ErrValidation)
	}

	rows, err := s.store.ListAll()
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(p.Query)
	var filtered []entities.UserTaskHistory
	for _, row := range rows {
		day := row.CreatedAt.In(LocalZone).Format("2006-01-02")
		if day < p.FromDate || day > p.ToDate {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(row.UserName), q) &&
			!strings.Contains(strings.ToLower(row.ServiceName), q) &&
			!strings.Contains(strings.ToLower(row.ResponseStatus), q) {
			continue
		}
		filtered = append(filtered, row)
	}

	pageCount := (len(filtered) + SearchPageSize - 1) / SearchPageSize
	page := p.Page
	if page < 1 || page > pageCount {
		page = 1
	}
	start := (page - 1) * SearchPageSize
	end := start + SearchPageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return &SearchResult{
		Rows:      filtered[start:end],
		Total:     len(filtered),
		Page:      page,
		PageCount: pageCount,
	}, nil
}

// parseUTCDate turns an ISO calendar date into a UTC-midnight timestamp.
// Empty input is allowed: the vendor-ledger flow has no date range.
func parseUTCDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", ErrValidation, value)
	}
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &t, nil
}
