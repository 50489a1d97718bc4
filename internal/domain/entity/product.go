package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttributeKeys is the fixed set of free-form product attribute columns.
var AttributeKeys = []string{"supplier", "location", "color"}

// Attributes holds the custom key/value columns of a product, persisted
// as a JSON blob.
type Attributes map[string]string

// Value implements driver.Valuer for GORM persistence.
func (a Attributes) Value() (driver.Value, error) {
	if a == nil {
		return "{}", nil
	}
	data, err := json.Marshal(a)
	return string(data), err
}

// Scan implements sql.Scanner for GORM persistence.
func (a *Attributes) Scan(value interface{}) error {
	if value == nil {
		*a = Attributes{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	}
	return errors.New("unsupported attributes column type")
}

// Product represents a product in the inventory
type Product struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Name       string     `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Price      int64      `gorm:"not null" json:"-"` // Stored in minor units
	Stock      int        `gorm:"default:0" json:"stock"`
	UnitsSold  int        `gorm:"default:0" json:"units_sold"`
	ImagePath  *string    `gorm:"size:255" json:"image_path,omitempty"`
	Attributes Attributes `gorm:"type:jsonb" json:"attributes,omitempty"`
	QRCode     *string    `gorm:"type:text" json:"-"` // Base64-encoded PNG payload
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// GetPriceDecimal returns the unit price as a decimal (for display)
func (p *Product) GetPriceDecimal() float64 {
	return float64(p.Price) / 100
}

// SetPriceFromDecimal sets the unit price from a decimal value
func (p *Product) SetPriceFromDecimal(price float64) {
	p.Price = int64(price*100 + 0.5)
}

// HasSalesHistory reports whether any committed checkout has ever sold
// units of this product. Such products must not be deleted.
func (p *Product) HasSalesHistory() bool {
	return p.UnitsSold > 0
}

// MarshalJSON converts Product to JSON with a decimal price and a flag for
// QR availability instead of the raw payload.
func (p Product) MarshalJSON() ([]byte, error) {
	type Alias Product
	return json.Marshal(&struct {
		Alias
		Price    float64 `json:"price"`
		HasQR    bool    `json:"has_qr"`
		HasImage bool    `json:"has_image"`
	}{
		Alias:    Alias(p),
		Price:    p.GetPriceDecimal(),
		HasQR:    p.QRCode != nil && *p.QRCode != "",
		HasImage: p.ImagePath != nil && *p.ImagePath != "",
	})
}
