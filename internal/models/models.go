package models

import "time"

// Address type tags
const (
	AddressTypeBilling  = "BILLING"
	AddressTypeShipping = "SHIPPING"
)

// Customer is a registered customer. RFC is stored upper-cased, email
// lower-cased.
type Customer struct {
	ID        string    `json:"id"`
	LegalName string    `json:"legal_name"`
	TradeName string    `json:"trade_name"`
	RFC       string    `json:"rfc"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Address is a customer address, tagged BILLING or SHIPPING.
type Address struct {
	ID           string    `json:"id"`
	CustomerID   string    `json:"customer_id"`
	Street       string    `json:"street"`
	Neighborhood string    `json:"neighborhood"`
	Municipality string    `json:"municipality"`
	State        string    `json:"state"`
	Type         string    `json:"type"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Product is a sellable product with its current base unit price.
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
	BasePrice Money     `json:"base_price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Note is a recorded sales transaction. It is an audit record: once
// created it is never updated or deleted.
type Note struct {
	ID                string    `json:"id"`
	Folio             string    `json:"folio"`
	CustomerID        string    `json:"customer_id"`
	BillingAddressID  string    `json:"billing_address_id"`
	ShippingAddressID string    `json:"shipping_address_id"`
	Total             Money     `json:"total"`
	CreatedAt         time.Time `json:"created_at"`
}

// NoteLine is a frozen entry within a Note. Product name and unit price
// are snapshots taken at creation time; the product's live record may
// change afterwards.
type NoteLine struct {
	ID          string `json:"id"`
	NoteID      string `json:"note_id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   Money  `json:"unit_price"`
	Amount      Money  `json:"amount"`
	Position    int    `json:"-"`
}

// DocumentMetadata is the mutable side channel attached to a stored
// note document, keyed by the same {rfc}/{folio} address as the bytes.
type DocumentMetadata struct {
	ID         uint64    `json:"-"`
	RFC        string    `json:"rfc"`
	Folio      string    `json:"folio"`
	ObjectKey  string    `json:"object_key"`
	SentAt     time.Time `json:"sent_at"`
	SendCount  int       `json:"send_count"`
	Downloaded bool      `json:"downloaded"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}

// NoteLineDetail joins a line with the current product record.
type NoteLineDetail struct {
	NoteLine
	Product *Product `json:"product,omitempty"`
}

// NoteDetail is the full read model of a note.
type NoteDetail struct {
	Note            Note             `json:"note"`
	Customer        *Customer        `json:"customer"`
	BillingAddress  *Address         `json:"billing_address"`
	ShippingAddress *Address         `json:"shipping_address"`
	Lines           []NoteLineDetail `json:"lines"`
}
