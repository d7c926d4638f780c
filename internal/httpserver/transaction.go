package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"pix-limit-service/internal/domain"
	transactionsvc "pix-limit-service/internal/service/transaction"
)

type executeTransactionRequest struct {
	MerchantDocument string           `json:"merchantDocument" binding:"required"`
	Value            *decimal.Decimal `json:"value"`
}

type decisionResponse struct {
	Authorized       bool             `json:"authorized"`
	Reason           string           `json:"reason"`
	RemainingLimit   *decimal.Decimal `json:"remainingLimit,omitempty"`
	TransactionValue decimal.Decimal  `json:"transactionValue"`
}

func toDecisionResponse(d *domain.AuthorizationDecision) decisionResponse {
	return decisionResponse{
		Authorized:       d.Authorized,
		Reason:           d.Reason,
		RemainingLimit:   d.RemainingLimit,
		TransactionValue: d.TransactionValue,
	}
}

func executeTransactionHandler(svc *transactionsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req executeTransactionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.Value == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "value is required"})
			return
		}
		decision, err := svc.Execute(c.Request.Context(), req.MerchantDocument, *req.Value)
		if err != nil {
			writeError(c, err)
			return
		}
		// Denials are processed requests, not failures.
		c.JSON(http.StatusOK, toDecisionResponse(decision))
	}
}
