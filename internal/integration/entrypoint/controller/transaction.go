package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/transfer-desk/backend/internal/application/usecase/transaction"
	domainerror "github.com/transfer-desk/backend/internal/domain/error"
	"github.com/transfer-desk/backend/internal/domain/valueobject"
	"github.com/transfer-desk/backend/internal/integration/entrypoint/dto"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	recordSendUseCase    *transaction.RecordSendUseCase
	recordPaymentUseCase *transaction.RecordPaymentUseCase
	updateUseCase        *transaction.UpdateTransactionUseCase
	deleteUseCase        *transaction.DeleteTransactionUseCase
	listByClientUseCase  *transaction.ListClientTransactionsUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	recordSendUseCase *transaction.RecordSendUseCase,
	recordPaymentUseCase *transaction.RecordPaymentUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
	listByClientUseCase *transaction.ListClientTransactionsUseCase,
) *TransactionController {
	return &TransactionController{
		recordSendUseCase:    recordSendUseCase,
		recordPaymentUseCase: recordPaymentUseCase,
		updateUseCase:        updateUseCase,
		deleteUseCase:        deleteUseCase,
		listByClientUseCase:  listByClientUseCase,
	}
}

// RecordSend handles POST /transactions/send requests.
func (c *TransactionController) RecordSend(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.RecordSendRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, err, string(domainerror.ErrCodeMissingTransactionFields))
		return
	}
	if req.AmountToPay == nil {
		writeError(ctx, http.StatusBadRequest, "amount_to_pay is required",
			string(domainerror.ErrCodeMissingTransactionFields))
		return
	}

	date, ok := bodyDate(ctx, req.Date)
	if !ok {
		return
	}

	output, err := c.recordSendUseCase.Execute(ctx.Request.Context(), transaction.RecordSendInput{
		ClientID:     uuid.MustParse(req.ClientID),
		Date:         date,
		AmountSent:   req.AmountSent,
		AmountToPay:  *req.AmountToPay,
		Description:  req.Description,
		ReceiverName: req.ReceiverName,
		CreatedBy:    &userID,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction))
}

// RecordPayment handles POST /transactions/payment requests.
func (c *TransactionController) RecordPayment(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.RecordPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, err, string(domainerror.ErrCodeMissingTransactionFields))
		return
	}

	date, ok := bodyDate(ctx, req.Date)
	if !ok {
		return
	}

	output, err := c.recordPaymentUseCase.Execute(ctx.Request.Context(), transaction.RecordPaymentInput{
		ClientID:      uuid.MustParse(req.ClientID),
		Date:          date,
		AmountPaid:    req.AmountPaid,
		PaymentMethod: req.PaymentMethod,
		Description:   req.Description,
		ReceiverName:  req.ReceiverName,
		CreatedBy:     &userID,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.RecordPaymentResponse{
		Transaction: dto.ToTransactionResponse(output.Transaction),
		Summary:     dto.ToClientSummaryResponse(output.Summary),
	})
}

// Update handles PATCH /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	transactionID, ok := pathID(ctx, "transaction", string(domainerror.ErrCodeTransactionNotFound))
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, err, string(domainerror.ErrCodeMissingTransactionFields))
		return
	}

	input := transaction.UpdateTransactionInput{
		TransactionID: transactionID,
		AmountSent:    req.AmountSent,
		AmountToPay:   req.AmountToPay,
		AmountPaid:    req.AmountPaid,
		Description:   req.Description,
		ReceiverName:  req.ReceiverName,
		PaymentMethod: req.PaymentMethod,
	}

	if req.Date != nil {
		date, ok := bodyDate(ctx, *req.Date)
		if !ok {
			return
		}
		input.Date = &date
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	transactionID, ok := pathID(ctx, "transaction", string(domainerror.ErrCodeTransactionNotFound))
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{
		TransactionID: transactionID,
		DeletedBy:     userID,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ListByClient handles GET /clients/:id/transactions requests.
func (c *TransactionController) ListByClient(ctx *gin.Context) {
	clientID, ok := pathID(ctx, "client", string(domainerror.ErrCodeClientNotFound))
	if !ok {
		return
	}

	output, err := c.listByClientUseCase.Execute(ctx.Request.Context(), transaction.ListClientTransactionsInput{
		ClientID: clientID,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToClientTransactionsResponse(output))
}

func bodyDate(ctx *gin.Context, s string) (valueobject.CalendarDate, bool) {
	date, err := dto.ParseOptionalDate(s)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format. Use YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidTransactionDate),
		})
		return valueobject.CalendarDate{}, false
	}
	return date, true
}
