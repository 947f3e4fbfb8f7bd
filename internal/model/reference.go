package model

import "time"

// Bank is one of the tenant's bank accounts.
type Bank struct {
	Code          string
	AccountName   string
	AccountNumber string
	ID            int64
}

// DescriptionLines renders the bank as the two display lines used in the
// mutation table.
func (b Bank) DescriptionLines() []string {
	top := b.Code
	if b.AccountName != "" {
		if top != "" {
			top += " " + b.AccountName
		} else {
			top = b.AccountName
		}
	}
	if top == "" {
		top = "-"
	}
	bottom := b.AccountNumber
	if bottom == "" {
		bottom = "-"
	}
	return []string{top, bottom}
}

// Operator is a back-office user who creates records. The ID comes from the
// external identity provider.
type Operator struct {
	ID          string
	DisplayName string
}

// Lead is a customer account serviced by the tenant.
type Lead struct {
	CreatedAt time.Time
	Code      string
	Name      string
	Phone     string
	ID        int64
}
