// Package camt053 renders account statements as ISO 20022 camt.053.001.02
// bank-to-customer statement documents.
package camt053

import (
	"encoding/xml"
	"fmt"
	"time"

	"statement-converter-service/internal/core/domain"
)

const (
	namespace        = "urn:iso:std:iso:20022:tech:xsd:camt.053.001.02"
	xsiNamespace     = "http://www.w3.org/2001/XMLSchema-instance"
	bankBIC          = "RABONL2U"
	bankName         = "Rabobank Nederland"
	remittanceLimit  = 140
	timestampLayout  = "2006-01-02T15:04:05"
	statementDateFmt = "2006-01-02"
)

type Formatter struct{}

func NewFormatter() *Formatter { return &Formatter{} }

func (f *Formatter) ContentType() string   { return "application/xml" }
func (f *Formatter) FileExtension() string { return "xml" }

func (f *Formatter) Format(stmt *domain.AccountStatement) (string, error) {
	now := time.Now()
	statementDate := stmt.Date
	if statementDate.IsZero() {
		statementDate = now
	}

	doc := document{
		Namespace:    namespace,
		XSINamespace: xsiNamespace,
		Statement: bankToCustomerStatement{
			GroupHeader: groupHeader{
				MessageID:        fmt.Sprintf("RABO%s%s", stmt.StatementNumber, now.Format("150405")),
				CreationDateTime: now.Format(timestampLayout),
				MessageRecipient: party{Name: "Customer"},
				InitiatingParty: initiatingParty{
					Name: bankName,
					ID:   &partyID{OrgID: orgID{BIC: bankBIC}},
				},
			},
			Statement: statement{
				ID:               stmt.StatementNumber,
				CreationDateTime: now.Format(timestampLayout),
				Account: account{
					ID:       accountID{IBAN: stmt.AccountNumber},
					Currency: stmt.Currency,
					Owner:    party{Name: "Rabobank"},
					Servicer: servicer{
						FinancialInstitution: financialInstitution{BIC: bankBIC, Name: bankName},
					},
				},
				Balance: balance{
					Type:        balanceType{CodeOrProprietary: codeOrProprietary{Code: "CLBD"}},
					Amount:      amount{Currency: stmt.Currency, Value: stmt.ClosingBalance.Abs().StringFixed(2)},
					CreditDebit: creditDebit(stmt.ClosingBalance.Sign() >= 0),
					Date:        balanceDate{Date: statementDate.Format(statementDateFmt)},
				},
			},
		},
	}

	for i, tx := range stmt.Transactions {
		doc.Statement.Statement.Entries = append(doc.Statement.Statement.Entries, newEntry(tx, i+1))
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal camt.053 document: %w", err)
	}
	return xml.Header + string(out), nil
}

func newEntry(tx domain.Transaction, seq int) entry {
	reference := tx.Reference
	if reference == "" {
		reference = fmt.Sprintf("RABO%010d", seq)
	}
	endToEnd := tx.Reference
	if endToEnd == "" {
		endToEnd = fmt.Sprintf("E2E%06d", seq)
	}

	e := entry{
		Amount:      amount{Currency: "EUR", Value: tx.Amount.Abs().StringFixed(2)},
		CreditDebit: creditDebit(tx.Amount.Sign() >= 0),
		Status:      "BOOK",
		BookingDate: entryDate{Date: tx.Date.Format(statementDateFmt)},
		ValueDate:   entryDate{Date: tx.Date.Format(statementDateFmt)},
		ServicerRef: reference,
		Details: entryDetails{
			Transaction: transactionDetails{
				References: references{
					EndToEndID:    endToEnd,
					TransactionID: fmt.Sprintf("RABO%010d", seq),
					InstructionID: fmt.Sprintf("INSTR%06d", seq),
				},
				Remittance: remittance{Unstructured: truncate(tx.Description, remittanceLimit)},
				BankTransactionCode: bankTransactionCode{
					Domain: codeDomain{
						Code:   "PMNT",
						Family: codeFamily{Code: familyCode(tx.Type)},
					},
				},
			},
		},
	}

	if tx.CounterAccount != "" {
		e.Details.Transaction.RelatedParties = &relatedParties{
			DebtorAccount: debtorAccount{ID: accountID{IBAN: tx.CounterAccount}},
		}
	}

	return e
}

func familyCode(t domain.TransactionType) string {
	switch t {
	case domain.TypeCard:
		return "CCRD"
	case domain.TypeTransfer:
		return "ICDT"
	case domain.TypeDirectDebit:
		return "DDBT"
	default:
		return "TRAF"
	}
}

func creditDebit(credit bool) string {
	if credit {
		return "CRDT"
	}
	return "DBIT"
}

// truncate caps s at limit characters, never splitting a multi-byte rune.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// XML document structure, element names follow the camt.053.001.02 schema.

type document struct {
	XMLName      xml.Name                `xml:"Document"`
	Namespace    string                  `xml:"xmlns,attr"`
	XSINamespace string                  `xml:"xmlns:xsi,attr"`
	Statement    bankToCustomerStatement `xml:"BkToCstmrStmt"`
}

type bankToCustomerStatement struct {
	GroupHeader groupHeader `xml:"GrpHdr"`
	Statement   statement   `xml:"Stmt"`
}

type groupHeader struct {
	MessageID        string          `xml:"MsgId"`
	CreationDateTime string          `xml:"CreDtTm"`
	MessageRecipient party           `xml:"MsgRcpt"`
	InitiatingParty  initiatingParty `xml:"InitgPty"`
}

type party struct {
	Name string `xml:"Nm"`
}

type initiatingParty struct {
	Name string   `xml:"Nm"`
	ID   *partyID `xml:"Id,omitempty"`
}

type partyID struct {
	OrgID orgID `xml:"OrgId"`
}

type orgID struct {
	BIC string `xml:"BIC"`
}

type statement struct {
	ID               string  `xml:"Id"`
	CreationDateTime string  `xml:"CreDtTm"`
	Account          account `xml:"Acct"`
	Balance          balance `xml:"Bal"`
	Entries          []entry `xml:"Ntry"`
}

type account struct {
	ID       accountID `xml:"Id"`
	Currency string    `xml:"Ccy"`
	Owner    party     `xml:"Ownr"`
	Servicer servicer  `xml:"Svcr"`
}

type accountID struct {
	IBAN string `xml:"IBAN"`
}

type servicer struct {
	FinancialInstitution financialInstitution `xml:"FinInstnId"`
}

type financialInstitution struct {
	BIC  string `xml:"BIC"`
	Name string `xml:"Nm"`
}

type balance struct {
	Type        balanceType `xml:"Tp"`
	Amount      amount      `xml:"Amt"`
	CreditDebit string      `xml:"CdtDbtInd"`
	Date        balanceDate `xml:"Dt"`
}

type balanceType struct {
	CodeOrProprietary codeOrProprietary `xml:"CdOrPrtry"`
}

type codeOrProprietary struct {
	Code string `xml:"Cd"`
}

type amount struct {
	Currency string `xml:"Ccy,attr"`
	Value    string `xml:",chardata"`
}

type balanceDate struct {
	Date string `xml:"Dt"`
}

type entry struct {
	Amount      amount       `xml:"Amt"`
	CreditDebit string       `xml:"CdtDbtInd"`
	Status      string       `xml:"Sts"`
	BookingDate entryDate    `xml:"BookgDt"`
	ValueDate   entryDate    `xml:"ValDt"`
	ServicerRef string       `xml:"AcctSvcrRef"`
	Details     entryDetails `xml:"NtryDtls"`
}

type entryDate struct {
	Date string `xml:"Dt"`
}

type entryDetails struct {
	Transaction transactionDetails `xml:"TxDtls"`
}

type transactionDetails struct {
	References          references          `xml:"Refs"`
	RelatedParties      *relatedParties     `xml:"RltdPties,omitempty"`
	Remittance          remittance          `xml:"RmtInf"`
	BankTransactionCode bankTransactionCode `xml:"BkTxCd"`
}

type references struct {
	EndToEndID    string `xml:"EndToEndId"`
	TransactionID string `xml:"TxId"`
	InstructionID string `xml:"InstrId"`
}

type relatedParties struct {
	DebtorAccount debtorAccount `xml:"DbtrAcct"`
}

type debtorAccount struct {
	ID accountID `xml:"Id"`
}

type remittance struct {
	Unstructured string `xml:"Ustrd"`
}

type bankTransactionCode struct {
	Domain codeDomain `xml:"Domn"`
}

type codeDomain struct {
	Code   string     `xml:"Cd"`
	Family codeFamily `xml:"Fmly"`
}

type codeFamily struct {
	Code string `xml:"Cd"`
}
