package models

import "time"

// ========================
// LEDGER MODELS
// ========================

// ContactRecord is one row of the contact ledger. Rows are append-only:
// a company's current status is the most recently appended row for its
// CompanyID with IsContacted set.
type ContactRecord struct {
	CompanyID     string    `json:"companyId"`
	CompanyName   string    `json:"companyName"`
	ContactorName string    `json:"contactorName"`
	Timestamp     time.Time `json:"timestamp"`
	IsContacted   bool      `json:"isContacted"`
}

// ContactStatus is the answer to "has this company been contacted?".
// ContactorName is set only when IsContacted is true, and always names the
// person who made the original contact.
type ContactStatus struct {
	IsContacted   bool   `json:"isContacted"`
	ContactorName string `json:"contactorName,omitempty"`
}

// ========================
// API REQUEST PAYLOADS
// ========================

type RegisterContactRequest struct {
	CompanyID     string `json:"companyId" binding:"required"`
	CompanyName   string `json:"companyName" binding:"required"`
	ContactorName string `json:"contactorName" binding:"required"`
}
