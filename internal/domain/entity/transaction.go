package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thelakshaywalia/advance-inventory-manager/internal/domain/enum"
)

// Transaction is a single immutable ledger entry. Sales and credits carry
// a positive total, payments against credit carry a negative total.
type Transaction struct {
	ID          uuid.UUID              `gorm:"type:uuid;primary_key" json:"id"`
	Timestamp   time.Time              `gorm:"not null;index" json:"timestamp"`
	TotalAmount int64                  `gorm:"not null" json:"-"` // Stored in minor units, signed
	TotalCost   int64                  `gorm:"not null" json:"-"` // Stored in minor units
	Status      enum.TransactionStatus `gorm:"size:20;not null;default:'Cash'" json:"status"`
	CustomerID  *uuid.UUID             `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Customer    *Customer              `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
}

// BeforeCreate generates a UUID and stamps the entry time
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Timestamp.IsZero() {
		t.Timestamp = time.Now()
	}
	return nil
}

// TableName returns the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}

// GetTotalDecimal returns the signed total as a decimal (for display)
func (t *Transaction) GetTotalDecimal() float64 {
	return float64(t.TotalAmount) / 100
}

// GetCostDecimal returns the cost basis as a decimal (for display)
func (t *Transaction) GetCostDecimal() float64 {
	return float64(t.TotalCost) / 100
}

// IsPayment reports whether this entry settles credit rather than records a sale.
func (t *Transaction) IsPayment() bool {
	return t.Status == enum.StatusPayment
}

// MarshalJSON converts Transaction to JSON with decimal amounts
func (t Transaction) MarshalJSON() ([]byte, error) {
	type Alias Transaction
	return json.Marshal(&struct {
		Alias
		TotalAmount float64 `json:"total_amount"`
		TotalCost   float64 `json:"total_cost"`
	}{
		Alias:       Alias(t),
		TotalAmount: t.GetTotalDecimal(),
		TotalCost:   t.GetCostDecimal(),
	})
}
