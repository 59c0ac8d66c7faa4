package recon_module

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/inethub/rrtool/commons/enums"
	history_module "github.com/inethub/rrtool/modules/history-module"
	results_module "github.com/inethub/rrtool/modules/results-module"
)

// Submission is a validated reconciliation request ready to forward.
// FromDate/ToDate are empty for the vendor-ledger comparison flow.
type Submission struct {
	UID             uint
	UserName        string
	FromDate        string
	ToDate          string
	ServiceName     string
	TransactionType string
	Files           []SavedFile
}

// Outcome is the terminal result of one submission attempt. Exactly one
// audit row is written per attempt whatever branch resolved it; a failed
// audit write is reported, never hidden, and never changes the outcome.
type Outcome struct {
	Status        string                   `json:"status"`
	Message       string                   `json:"message"`
	Result        *results_module.Envelope `json:"result"`
	CorrelationID string                   `json:"correlationId"`
	AuditLogged   bool                     `json:"auditLogged"`
}

type Service struct {
	client  *Client
	history *history_module.Service
}

func New(client *Client, history *history_module.Service) *Service {
	return &Service{client: client, history: history}
}

// Process forwards the submission and resolves it to an outcome. No branch
// retries; every branch ends settled with a message and an audit row.
func (s *Service) Process(ctx context.Context, sub Submission) *Outcome {
	out := &Outcome{CorrelationID: uuid.NewString()}

	env, status, err := s.client.Reconcile(ctx, sub.fields(), sub.Files)
	switch {
	case err != nil:
		out.Status = enums.STATUS_FAILED
		out.Message = err.Error()
	case status != 200:
		out.Status = enums.STATUS_FAILED
		msg := "No error message"
		if env != nil && env.Message != "" {
			msg = env.Message
		}
		out.Message = fmt.Sprintf("Server error (%d): %s", status, msg)
	case env != nil && env.IsSuccess:
		out.Status = enums.STATUS_SUCCESS
		out.Message = env.Message
		out.Result = env
	default:
		// Business rejection, or a body that did not parse to anything
		// usable. Either way the result is cleared.
		out.Status = enums.STATUS_FAILED
		out.Message = MsgBusiness
		if env != nil && env.Message != "" {
			out.Message = env.Message
		}
	}

	out.AuditLogged = s.writeAudit(sub, out)
	return out
}

func (s *Service) writeAudit(sub Submission, out *Outcome) bool {
	names := make([]string, 0, len(sub.Files))
	for _, file := range sub.Files {
		names = append(names, file.OriginalName)
	}
	_, err := s.history.CreateFromRequest(history_module.CreateRequest{
		UID:              sub.UID,
		UserName:         sub.UserName,
		ServiceName:      sub.ServiceName,
		FromDate:         sub.FromDate,
		ToDate:           sub.ToDate,
		UploadedFileName: strings.Join(names, ", "),
		ResponseMessage:  out.Message,
		TransactionType:  sub.TransactionType,
		ResponseStatus:   out.Status,
	})
	if err != nil {
		log.Printf("audit write failed [%s]: %v", out.CorrelationID, err)
		return false
	}
	return true
}

func (sub Submission) fields() map[string]string {
	fields := map[string]string{
		"service_name": sub.ServiceName,
	}
	if sub.FromDate != "" {
		fields["from_date"] = sub.FromDate
	}
	if sub.ToDate != "" {
		fields["to_date"] = sub.ToDate
	}
	if sub.TransactionType != "" && sub.TransactionType != enums.ServiceDefault {
		fields["transaction_type"] = sub.TransactionType
	}
	return fields
}
