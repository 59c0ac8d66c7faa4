package recon_module

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"time"

	results_module "github.com/inethub/rrtool/modules/results-module"
)

// User-facing messages for the transport failure branches. Each branch is
// reported distinctly; none is retried.
const (
	MsgNetwork  = "Network Error: Server is not reachable. Check your Internet connection and try again..!"
	MsgTimeout  = "Request timed out. Server is taking too long to respond..!"
	MsgUnknown  = "An unknown error occurred"
	MsgBusiness = "Error processing file..! Check Inputs and try again..!"
)

type ErrorKind int

const (
	KindNetwork ErrorKind = iota
	KindTimeout
	KindServer
	KindUnknown
)

// CallError is a classified transport failure talking to the remote engine.
type CallError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

func (e *CallError) Error() string {
	return e.Message
}

func (e *CallError) Unwrap() error {
	return e.Err
}

// SavedFile is an uploaded spreadsheet staged on disk before forwarding.
type SavedFile struct {
	Field        string
	OriginalName string
	Path         string
}

// Client forwards reconciliation submissions to the remote engine.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Reconcile POSTs the form fields and staged files as multipart form data
// to /api/reconciliation. The response body is normalized (parse-if-string)
// into an envelope; a parse failure returns a nil envelope, not an error.
func (c *Client) Reconcile(ctx context.Context, fields map[string]string, files []SavedFile) (*results_module.Envelope, int, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, 0, &CallError{Kind: KindUnknown, Message: MsgUnknown, Err: err}
		}
	}
	for _, file := range files {
		src, err := os.Open(file.Path)
		if err != nil {
			return nil, 0, &CallError{Kind: KindUnknown, Message: MsgUnknown, Err: err}
		}
		part, err := writer.CreateFormFile(file.Field, file.OriginalName)
		if err == nil {
			_, err = io.Copy(part, src)
		}
		src.Close()
		if err != nil {
			return nil, 0, &CallError{Kind: KindUnknown, Message: MsgUnknown, Err: err}
		}
	}
	if err := writer.Close(); err != nil {
		return nil, 0, &CallError{Kind: KindUnknown, Message: MsgUnknown, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/reconciliation", body)
	if err != nil {
		return nil, 0, &CallError{Kind: KindUnknown, Message: MsgUnknown, Err: err}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, Classify(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, Classify(err)
	}
	return results_module.Normalize(raw), resp.StatusCode, nil
}

// Classify maps a transport error onto the failure taxonomy: client-side
// timeout, unreachable host, or unknown.
func Classify(err error) *CallError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &CallError{Kind: KindTimeout, Message: MsgTimeout, Err: err}
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return &CallError{Kind: KindTimeout, Message: MsgTimeout, Err: err}
		}
		return &CallError{Kind: KindNetwork, Message: MsgNetwork, Err: err}
	}
	return &CallError{Kind: KindUnknown, Message: MsgUnknown, Err: err}
}
