// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/transfer-desk/backend/internal/application/usecase/transaction"
	"github.com/transfer-desk/backend/internal/domain/entity"
	"github.com/transfer-desk/backend/internal/domain/valueobject"
)

// RecordSendRequest represents the request body for recording a transfer.
// Amounts accept JSON numbers or decimal strings. AmountToPay has no default:
// a missing value is rejected rather than recorded as zero debt.
type RecordSendRequest struct {
	ClientID     string           `json:"client_id" binding:"required,uuid"`
	Date         string           `json:"date,omitempty"`
	AmountSent   decimal.Decimal  `json:"amount_sent"`
	AmountToPay  *decimal.Decimal `json:"amount_to_pay"`
	Description  string           `json:"description,omitempty"`
	ReceiverName string           `json:"receiver_name,omitempty"`
}

// RecordPaymentRequest represents the request body for recording a payment.
type RecordPaymentRequest struct {
	ClientID      string          `json:"client_id" binding:"required,uuid"`
	Date          string          `json:"date,omitempty"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	Description   string          `json:"description,omitempty"`
	ReceiverName  string          `json:"receiver_name,omitempty"`
}

// UpdateTransactionRequest represents the request body for transaction update.
// Omitted fields are left unchanged.
type UpdateTransactionRequest struct {
	Date          *string          `json:"date,omitempty"`
	AmountSent    *decimal.Decimal `json:"amount_sent,omitempty"`
	AmountToPay   *decimal.Decimal `json:"amount_to_pay,omitempty"`
	AmountPaid    *decimal.Decimal `json:"amount_paid,omitempty"`
	Description   *string          `json:"description,omitempty"`
	ReceiverName  *string          `json:"receiver_name,omitempty"`
	PaymentMethod *string          `json:"payment_method,omitempty"`
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID            string    `json:"id"`
	ClientID      string    `json:"client_id"`
	ClientName    string    `json:"client_name,omitempty"`
	Date          string    `json:"date"`
	AmountSent    string    `json:"amount_sent"`
	AmountToPay   string    `json:"amount_to_pay"`
	AmountPaid    string    `json:"amount_paid"`
	Description   string    `json:"description"`
	PaymentMethod *string   `json:"payment_method,omitempty"`
	ReceiverName  string    `json:"receiver_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// RecordPaymentResponse represents the response for recording a payment.
type RecordPaymentResponse struct {
	Transaction TransactionResponse   `json:"transaction"`
	Summary     ClientSummaryResponse `json:"summary"`
}

// TransactionGroupResponse represents the transactions of one date.
type TransactionGroupResponse struct {
	Date         string                `json:"date"`
	Transactions []TransactionResponse `json:"transactions"`
}

// ClientTransactionsResponse represents the response for a client's history.
type ClientTransactionsResponse struct {
	Client ClientResponse             `json:"client"`
	Groups []TransactionGroupResponse `json:"groups"`
}

// ToTransactionResponse converts a TransactionOutput to a TransactionResponse DTO.
func ToTransactionResponse(txn *transaction.TransactionOutput) TransactionResponse {
	response := TransactionResponse{
		ID:           txn.ID.String(),
		ClientID:     txn.ClientID.String(),
		Date:         txn.Date.String(),
		AmountSent:   txn.AmountSent.String(),
		AmountToPay:  txn.AmountToPay.String(),
		AmountPaid:   txn.AmountPaid.String(),
		Description:  txn.Description,
		ReceiverName: txn.ReceiverName,
		CreatedAt:    txn.CreatedAt,
		UpdatedAt:    txn.UpdatedAt,
	}

	if txn.PaymentMethod != nil {
		method := string(*txn.PaymentMethod)
		response.PaymentMethod = &method
	}

	return response
}

// ToTransactionWithClientResponse converts a joined record to a TransactionResponse DTO.
func ToTransactionWithClientResponse(record *entity.TransactionWithClient) TransactionResponse {
	txn := record.Transaction
	response := TransactionResponse{
		ID:           txn.ID.String(),
		ClientID:     txn.ClientID.String(),
		Date:         txn.Date.String(),
		AmountSent:   txn.AmountSent.String(),
		AmountToPay:  txn.AmountToPay.String(),
		AmountPaid:   txn.AmountPaid.String(),
		Description:  txn.Description,
		ReceiverName: txn.ReceiverName,
		CreatedAt:    txn.CreatedAt,
		UpdatedAt:    txn.UpdatedAt,
	}

	if record.Client != nil {
		response.ClientName = record.Client.Name
	}
	if txn.PaymentMethod != nil {
		method := string(*txn.PaymentMethod)
		response.PaymentMethod = &method
	}

	return response
}

// ToTransactionGroupResponses converts date groups to response DTOs.
func ToTransactionGroupResponses(groups []entity.TransactionsByDate) []TransactionGroupResponse {
	responses := make([]TransactionGroupResponse, 0, len(groups))
	for _, group := range groups {
		items := make([]TransactionResponse, 0, len(group.Transactions))
		for _, record := range group.Transactions {
			items = append(items, ToTransactionWithClientResponse(record))
		}
		responses = append(responses, TransactionGroupResponse{
			Date:         group.Date.String(),
			Transactions: items,
		})
	}
	return responses
}

// ToClientTransactionsResponse converts a client history to a response DTO.
func ToClientTransactionsResponse(output *transaction.ListClientTransactionsOutput) ClientTransactionsResponse {
	return ClientTransactionsResponse{
		Client: ToClientResponse(output.Client),
		Groups: ToTransactionGroupResponses(output.Groups),
	}
}

// ParseOptionalDate parses an ISO date; an empty string yields the zero date.
func ParseOptionalDate(s string) (valueobject.CalendarDate, error) {
	if s == "" {
		return valueobject.CalendarDate{}, nil
	}
	return valueobject.ParseCalendarDate(s)
}
