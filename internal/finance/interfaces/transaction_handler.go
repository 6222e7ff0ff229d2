package interfaces

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sebuszqo/FinanceTracker/internal/finance/application"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
	"github.com/shopspring/decimal"
)

const (
	maxRequestBodyBytes = 1 << 20
	maxDashboardLimit   = 100
)

type TransactionServiceInterface interface {
	CreateTransaction(ctx context.Context, input application.NewTransactionInput) (domain.Transaction, error)
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)
	GetDashboard(ctx context.Context, limit int) (application.Summary, error)
}

type TransactionRequest struct {
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Category    *string         `json:"category,omitempty"`
	Description string          `json:"description"`
	Date        string          `json:"date,omitempty"`
}

type TransactionResponse struct {
	ID          string      `json:"id"`
	Type        domain.Kind `json:"type"`
	Amount      json.Number `json:"amount"`
	Category    *string     `json:"category,omitempty"`
	Description string      `json:"description"`
	Date        time.Time   `json:"date"`
}

type ChartPoint struct {
	Name  string      `json:"name"`
	Value json.Number `json:"value"`
}

type DashboardResponse struct {
	TotalIncome       json.Number           `json:"total_income"`
	TotalExpense      json.Number           `json:"total_expense"`
	Balance           json.Number           `json:"balance"`
	IncomeVsExpense   []ChartPoint          `json:"income_vs_expense"`
	ExpenseByCategory []ChartPoint          `json:"expense_by_category"`
	Recent            []TransactionResponse `json:"recent"`
}

func NewTransactionResponse(transaction domain.Transaction) TransactionResponse {
	res := TransactionResponse{
		ID:          transaction.ID,
		Type:        transaction.Kind(),
		Amount:      number(transaction.Amount),
		Description: transaction.Description,
		Date:        transaction.Date,
	}
	if category, ok := transaction.Category(); ok {
		res.Category = &category
	}
	return res
}

func NewTransactionResponses(transactions []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(transactions))
	for i, transaction := range transactions {
		res[i] = NewTransactionResponse(transaction)
	}
	return res
}

func NewDashboardResponse(summary application.Summary) DashboardResponse {
	return DashboardResponse{
		TotalIncome:       number(summary.TotalIncome),
		TotalExpense:      number(summary.TotalExpense),
		Balance:           number(summary.Balance),
		IncomeVsExpense:   chartPoints(summary.IncomeVsExpense),
		ExpenseByCategory: chartPoints(summary.ExpenseByCategory),
		Recent:            NewTransactionResponses(summary.Recent),
	}
}

func chartPoints(totals []application.CategoryTotal) []ChartPoint {
	points := make([]ChartPoint, len(totals))
	for i, total := range totals {
		points[i] = ChartPoint{Name: total.Name, Value: number(total.Value)}
	}
	return points
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

type PersonalTransactionHandler struct {
	service      TransactionServiceInterface
	recentLimit  int
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewPersonalTransactionHandler(
	service TransactionServiceInterface,
	recentLimit int,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *PersonalTransactionHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	if recentLimit <= 0 {
		recentLimit = 10
	}
	return &PersonalTransactionHandler{
		service:      service,
		recentLimit:  recentLimit,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *PersonalTransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req TransactionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	input := application.NewTransactionInput{
		Type:        req.Type,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        req.Date,
	}
	if req.Category != nil {
		input.Category = *req.Category
	}

	transaction, err := h.service.CreateTransaction(r.Context(), input)
	if err != nil {
		var validationErrors *financeErrors.ValidationErrors
		if errors.As(err, &validationErrors) {
			h.respondError(w, http.StatusBadRequest, validationErrors.Error(), validationErrors.Messages())
			return
		}
		if financeErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Error().Err(err).Str("type", req.Type).Msg("Error during transaction creation")
		h.respondError(w, http.StatusInternalServerError, "Failed to create transaction")
		return
	}

	log.Info().Str("id", transaction.ID).Str("type", string(transaction.Kind())).Msg("Transaction saved")
	h.respondJSON(w, http.StatusCreated, NewTransactionResponse(transaction))
}

func (h *PersonalTransactionHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.service.ListTransactions(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Error fetching transactions")
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve transactions")
		return
	}

	log.Debug().Int("count", len(transactions)).Msg("Transactions fetched")
	h.respondJSON(w, http.StatusOK, NewTransactionResponses(transactions))
}

func (h *PersonalTransactionHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	limit := h.recentLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit <= 0 || limit > maxDashboardLimit {
			h.respondError(w, http.StatusBadRequest, "Invalid limit value")
			return
		}
	}

	summary, err := h.service.GetDashboard(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("Error building dashboard")
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve dashboard")
		return
	}

	h.respondJSON(w, http.StatusOK, NewDashboardResponse(summary))
}
