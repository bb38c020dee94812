package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/oleratodev/banking-ledger-system/internal/account"
	"github.com/oleratodev/banking-ledger-system/internal/bank"
	"github.com/oleratodev/banking-ledger-system/internal/customer"
)

// server is the thin HTTP shell over the core: handlers validate the
// request shape and delegate; no business rules live here.
type server struct {
	service *bank.Service
	branch  string
}

func (s *server) registerRoutes(r *gin.Engine) {
	r.POST("/api/customers", s.createCustomer)
	r.POST("/api/login", s.login)
	r.PUT("/api/customers/:number/pin", s.setPIN)
	r.POST("/api/customers/:number/accounts/savings", s.openSavings)
	r.POST("/api/customers/:number/accounts/investment", s.openInvestment)
	r.POST("/api/customers/:number/accounts/cheque", s.openCheque)
	r.GET("/api/accounts/:number", s.getAccount)
	r.GET("/api/accounts/:number/transactions", s.getTransactions)
	r.POST("/api/accounts/:number/deposit", s.deposit)
	r.POST("/api/accounts/:number/withdraw", s.withdraw)
	r.POST("/api/interest/run", s.runInterest)
}

type accountResponse struct {
	AccountNumber   string          `json:"accountNumber"`
	Type            string          `json:"type"`
	Branch          string          `json:"branch"`
	Balance         decimal.Decimal `json:"balance"`
	CustomerNumber  string          `json:"customerNumber"`
	CompanyAccount  bool            `json:"companyAccount,omitempty"`
	EmployerName    string          `json:"employerName,omitempty"`
	EmployerAddress string          `json:"employerAddress,omitempty"`
}

func toAccountResponse(a account.Account) accountResponse {
	resp := accountResponse{
		AccountNumber:  a.Number(),
		Type:           string(a.Kind()),
		Branch:         a.Branch(),
		Balance:        a.Balance(),
		CustomerNumber: a.OwnerNumber(),
	}
	switch v := a.(type) {
	case *account.Savings:
		resp.CompanyAccount = v.CompanyAccount()
	case *account.Cheque:
		resp.EmployerName = v.EmployerName()
		resp.EmployerAddress = v.EmployerAddress()
	}
	return resp
}

func (s *server) createCustomer(c *gin.Context) {
	var req struct {
		FirstName string `json:"firstName"`
		Surname   string `json:"surname"`
		Address   string `json:"address"`
		PIN       string `json:"pin"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.FirstName == "" || req.Surname == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "firstName and surname are required"})
		return
	}
	cust, err := s.service.CreateCustomer(c.Request.Context(), req.FirstName, req.Surname, req.Address, req.PIN)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"accountNumber": cust.Number(),
		"firstName":     cust.FirstName(),
		"surname":       cust.Surname(),
		"address":       cust.Address(),
	})
}

func (s *server) login(c *gin.Context) {
	var req struct {
		AccountNumber string `json:"accountNumber"`
		PIN           string `json:"pin"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if !s.service.Authenticate(req.AccountNumber, req.PIN) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "authenticated"})
}

func (s *server) setPIN(c *gin.Context) {
	var req struct {
		PIN string `json:"pin"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := s.service.SetPIN(c.Request.Context(), c.Param("number"), req.PIN); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "pin updated"})
}

func (s *server) openSavings(c *gin.Context) {
	var req struct {
		Branch         string `json:"branch"`
		CompanyAccount bool   `json:"companyAccount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	a, err := s.service.OpenSavings(c.Request.Context(), c.Param("number"), s.branchOr(req.Branch), req.CompanyAccount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAccountResponse(a))
}

func (s *server) openInvestment(c *gin.Context) {
	var req struct {
		Branch         string          `json:"branch"`
		OpeningDeposit decimal.Decimal `json:"openingDeposit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	a, err := s.service.OpenInvestment(c.Request.Context(), c.Param("number"), s.branchOr(req.Branch), req.OpeningDeposit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAccountResponse(a))
}

func (s *server) openCheque(c *gin.Context) {
	var req struct {
		Branch          string `json:"branch"`
		EmployerName    string `json:"employerName"`
		EmployerAddress string `json:"employerAddress"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	a, err := s.service.OpenCheque(c.Request.Context(), c.Param("number"), s.branchOr(req.Branch), req.EmployerName, req.EmployerAddress)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAccountResponse(a))
}

func (s *server) getAccount(c *gin.Context) {
	a, ok := s.service.Account(c.Param("number"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
		return
	}
	c.JSON(http.StatusOK, toAccountResponse(a))
}

func (s *server) getTransactions(c *gin.Context) {
	a, ok := s.service.Account(c.Param("number"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
		return
	}
	type txResponse struct {
		Kind         string          `json:"kind"`
		Amount       decimal.Decimal `json:"amount"`
		BalanceAfter decimal.Decimal `json:"balanceAfter"`
		Timestamp    string          `json:"timestamp"`
	}
	log := a.Transactions()
	out := make([]txResponse, 0, len(log))
	for _, t := range log {
		out = append(out, txResponse{
			Kind:         string(t.Kind),
			Amount:       t.Amount,
			BalanceAfter: t.BalanceAfter,
			Timestamp:    t.Timestamp.Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, out)
}

func (s *server) deposit(c *gin.Context) {
	s.mutate(c, s.service.Deposit)
}

func (s *server) withdraw(c *gin.Context) {
	s.mutate(c, s.service.Withdraw)
}

func (s *server) mutate(c *gin.Context, op func(context.Context, string, decimal.Decimal) error) {
	var req struct {
		Amount decimal.Decimal `json:"amount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	number := c.Param("number")
	if err := op(c.Request.Context(), number, req.Amount); err != nil {
		respondError(c, err)
		return
	}
	a, _ := s.service.Account(number)
	c.JSON(http.StatusOK, toAccountResponse(a))
}

func (s *server) runInterest(c *gin.Context) {
	total, processed := s.service.RunMonthlyInterest(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"accountsProcessed": processed,
		"totalCredited":     total,
	})
}

func (s *server) branchOr(branch string) string {
	if branch == "" {
		return s.branch
	}
	return branch
}

// respondError maps domain failures onto HTTP statuses: validation errors
// are 400, business-rule rejections 422, lookup misses 404.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, account.ErrInvalidAmount),
		errors.Is(err, account.ErrMinimumDeposit),
		errors.Is(err, customer.ErrMalformedPIN):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, account.ErrWithdrawalNotAllowed),
		errors.Is(err, account.ErrInsufficientFunds):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, bank.ErrCustomerNotFound),
		errors.Is(err, bank.ErrAccountNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
