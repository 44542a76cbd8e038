package dto

import (
	"time"

	"github.com/google/uuid"

	"statement-converter-service/internal/core/domain"
)

type BankResponse struct {
	Key         string   `json:"key"`
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	FileTypes   []string `json:"file_types"`
}

type ListBanksResponse struct {
	Banks []BankResponse `json:"banks"`
}

type ValidationResponse struct {
	Valid    bool     `json:"valid"`
	Message  string   `json:"message,omitempty"`
	Error    string   `json:"error,omitempty"`
	Columns  []string `json:"columns,omitempty"`
	RowCount int      `json:"row_count,omitempty"`
}

type TransactionResponse struct {
	Date           string `json:"date"`
	Amount         string `json:"amount"`
	Description    string `json:"description"`
	CounterAccount string `json:"counter_account,omitempty"`
	Reference      string `json:"reference"`
	Type           string `json:"type"`
}

type SummaryResponse struct {
	AccountNumber string                `json:"account_number"`
	StartDate     string                `json:"start_date"`
	EndDate       string                `json:"end_date"`
	Count         int                   `json:"count"`
	TotalCredits  string                `json:"total_credits"`
	TotalDebits   string                `json:"total_debits"`
	NetTotal      string                `json:"net_total"`
	Transactions  []TransactionResponse `json:"transactions"`
}

type ConversionJobResponse struct {
	ID               uuid.UUID `json:"id"`
	CreatedAt        string    `json:"created_at"`
	Bank             string    `json:"bank"`
	Format           string    `json:"format"`
	SourceFilename   string    `json:"source_filename"`
	AccountNumber    string    `json:"account_number"`
	StatementNumber  string    `json:"statement_number"`
	TransactionCount int       `json:"transaction_count"`
	OpeningBalance   string    `json:"opening_balance"`
	ClosingBalance   string    `json:"closing_balance"`
	Status           string    `json:"status"`
}

type ListConversionJobsResponse struct {
	Items      []ConversionJobResponse `json:"items"`
	Total      int                     `json:"total"`
	PageSize   int                     `json:"page_size"`
	NextOffset int                     `json:"next_offset"`
}

func ToBankResponse(b domain.BankInfo) BankResponse {
	return BankResponse{
		Key:         b.Key,
		Name:        b.Name,
		DisplayName: b.DisplayName,
		FileTypes:   b.FileTypes,
	}
}

func ToValidationResponse(r domain.ValidationResult) ValidationResponse {
	return ValidationResponse{
		Valid:    r.Valid,
		Message:  r.Message,
		Error:    r.Error,
		Columns:  r.Columns,
		RowCount: r.RowCount,
	}
}

func ToTransactionResponse(t domain.Transaction) TransactionResponse {
	return TransactionResponse{
		Date:           t.Date.Format("2006-01-02"),
		Amount:         t.Amount.StringFixed(2),
		Description:    t.Description,
		CounterAccount: t.CounterAccount,
		Reference:      t.Reference,
		Type:           string(t.Type),
	}
}

func ToSummaryResponse(s *domain.Summary) SummaryResponse {
	transactions := make([]TransactionResponse, 0, len(s.Transactions))
	for _, t := range s.Transactions {
		transactions = append(transactions, ToTransactionResponse(t))
	}
	return SummaryResponse{
		AccountNumber: s.AccountNumber,
		StartDate:     s.StartDate.Format("2006-01-02"),
		EndDate:       s.EndDate.Format("2006-01-02"),
		Count:         s.Count,
		TotalCredits:  s.TotalCredits.StringFixed(2),
		TotalDebits:   s.TotalDebits.StringFixed(2),
		NetTotal:      s.NetTotal.StringFixed(2),
		Transactions:  transactions,
	}
}

func ToConversionJobResponse(j *domain.ConversionJob) ConversionJobResponse {
	return ConversionJobResponse{
		ID:               j.ID,
		CreatedAt:        j.CreatedAt.Format(time.RFC3339),
		Bank:             j.Bank,
		Format:           string(j.Format),
		SourceFilename:   j.SourceFilename,
		AccountNumber:    j.AccountNumber,
		StatementNumber:  j.StatementNumber,
		TransactionCount: j.TransactionCount,
		OpeningBalance:   j.OpeningBalance.StringFixed(2),
		ClosingBalance:   j.ClosingBalance.StringFixed(2),
		Status:           string(j.Status),
	}
}
