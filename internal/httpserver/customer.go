package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"pix-limit-service/internal/domain"
	custrepo "pix-limit-service/internal/repository/customer"
	customersvc "pix-limit-service/internal/service/customer"
)

type createCustomerRequest struct {
	DocumentNumber          string           `json:"documentNumber" binding:"required"`
	Name                    string           `json:"name" binding:"required"`
	Email                   string           `json:"email" binding:"required"`
	AgencyCode              string           `json:"agencyCode" binding:"required"`
	AccountNumber           string           `json:"accountNumber" binding:"required"`
	InitialLimitAmount      *decimal.Decimal `json:"initialLimitAmount"`
	InitialLimitDescription string           `json:"initialLimitDescription"`
}

type adjustLimitRequest struct {
	// Amount is a pointer so an explicit zero adjustment stays distinguishable
	// from a missing field.
	Amount      *decimal.Decimal `json:"amount"`
	Description string           `json:"description" binding:"required"`
}

type replaceAccountRequest struct {
	AgencyCode    string `json:"agencyCode" binding:"required"`
	AccountNumber string `json:"accountNumber" binding:"required"`
}

type lifecycleRequest struct {
	Reason string `json:"reason" binding:"required"`
	Actor  string `json:"actor"`
}

type accountResponse struct {
	AgencyCode    string    `json:"agencyCode"`
	AccountNumber string    `json:"accountNumber"`
	CreatedAt     time.Time `json:"createdAt"`
}

type ledgerEntryResponse struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type customerResponse struct {
	ID             string                `json:"id"`
	DocumentNumber string                `json:"documentNumber"`
	Name           string                `json:"name"`
	Email          string                `json:"email"`
	Account        accountResponse       `json:"account"`
	CurrentLimit   decimal.Decimal       `json:"currentLimit"`
	LedgerEntries  []ledgerEntryResponse `json:"ledgerEntries"`
	Active         bool                  `json:"active"`
	CreatedAt      time.Time             `json:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
	Version        int64                 `json:"version"`
}

type customerPageResponse struct {
	Items      []customerResponse `json:"items"`
	NextCursor string             `json:"nextCursor,omitempty"`
}

func toCustomerResponse(c *domain.Customer) customerResponse {
	entries := make([]ledgerEntryResponse, 0, len(c.LedgerEntries))
	for _, e := range c.LedgerEntries {
		entries = append(entries, ledgerEntryResponse{
			Amount:      e.Amount,
			Description: e.Description,
			CreatedAt:   e.CreatedAt,
		})
	}
	return customerResponse{
		ID:             c.ID,
		DocumentNumber: c.DocumentNumber,
		Name:           c.Name,
		Email:          c.Email,
		Account: accountResponse{
			AgencyCode:    string(c.Account.AgencyCode),
			AccountNumber: c.Account.Number.String(),
			CreatedAt:     c.Account.CreatedAt,
		},
		CurrentLimit:  c.CurrentLimit(),
		LedgerEntries: entries,
		Active:        c.Active,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
		Version:       c.Version,
	}
}

func createCustomerHandler(svc *customersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createCustomerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		created, err := svc.Create(c.Request.Context(), customersvc.CreateInput{
			DocumentNumber:          req.DocumentNumber,
			Name:                    req.Name,
			Email:                   req.Email,
			AgencyCode:              req.AgencyCode,
			AccountNumber:           req.AccountNumber,
			InitialLimitAmount:      req.InitialLimitAmount,
			InitialLimitDescription: req.InitialLimitDescription,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, toCustomerResponse(created))
	}
}

func getCustomerHandler(svc *customersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		found, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, toCustomerResponse(found))
	}
}

func getCustomerByDocumentHandler(svc *customersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		found, err := svc.GetByDocument(c.Request.Context(), c.Param("document"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, toCustomerResponse(found))
	}
}

func listCustomersHandler(svc *customersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		pageSize := 20
		if raw := c.Query("pageSize"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "pageSize must be an integer"})
				return
			}
			pageSize = parsed
		}
		includeInactive := false
		if raw := c.Query("includeInactive"); raw != "" {
			parsed, err := strconv.ParseBool(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "includeInactive must be a boolean"})
				return
			}
			includeInactive = parsed
		}

		page, err := svc.List(c.Request.Context(), custrepo.ListOptions{
			PageSize:        pageSize,
			Cursor:          c.Query("cursor"),
			IncludeInactive: includeInactive,
		})
		if err != nil {
			writeError(c, err)
			return
		}

		items := make([]customerResponse, 0, len(page.Customers))
		for i := range page.Customers {
			items = append(items, toCustomerResponse(&page.Customers[i]))
		}
		c.JSON(http.StatusOK, customerPageResponse{Items: items, NextCursor: page.NextCursor})
	}
}

func adjustLimitHandler(svc *customersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req adjustLimitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.Amount == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount is required"})
			return
		}
		updated, err := svc.AdjustLimit(c.Request.Context(), c.Param("id"), *req.Amount, req.Description)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, toCustomerResponse(updated))
	}
}

func replaceAccountHandler(svc *customersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req replaceAccountRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		updated, err := svc.ReplaceAccount(c.Request.Context(), c.Param("id"), req.AgencyCode, req.AccountNumber)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, toCustomerResponse(updated))
	}
}

func deactivateHandler(svc *customersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req lifecycleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		updated, err := svc.Deactivate(c.Request.Context(), c.Param("id"), req.Reason, req.Actor)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, toCustomerResponse(updated))
	}
}

func reactivateHandler(svc *customersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req lifecycleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		updated, err := svc.Reactivate(c.Request.Context(), c.Param("id"), req.Reason, req.Actor)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, toCustomerResponse(updated))
	}
}
