package dto

import (
	"github.com/hongminglow/budget-be/internal/ledger"
	"github.com/hongminglow/budget-be/internal/models"
)

type CreateEntryRequest struct {
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Amount      Numeric `json:"amount"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
}

// Input converts the request for the ledger.
func (r CreateEntryRequest) Input() ledger.CreateInput {
	return ledger.CreateInput{
		Type:        r.Type,
		Category:    r.Category,
		Amount:      r.Amount.String(),
		Date:        r.Date,
		Description: r.Description,
	}
}

type UpdateEntryRequest struct {
	Type        models.Optional[string]  `json:"type"`
	Category    models.Optional[string]  `json:"category"`
	Amount      models.Optional[Numeric] `json:"amount"`
	Date        models.Optional[string]  `json:"date"`
	Description models.Optional[string]  `json:"description"`
}

// Input converts the request for the ledger.
func (r UpdateEntryRequest) Input() ledger.UpdateInput {
	return ledger.UpdateInput{
		Type:        r.Type,
		Category:    r.Category,
		Amount:      numericText(r.Amount),
		Date:        r.Date,
		Description: r.Description,
	}
}

type EntryResponse struct {
	Entry models.Entry `json:"entry"`
}

func numericText(o models.Optional[Numeric]) models.Optional[string] {
	return models.Optional[string]{Set: o.Set, Null: o.Null, Value: o.Value.String()}
}
