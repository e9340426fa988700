package order

import "time"

type Order struct {
	ID              string         `json:"id"`
	LocationID      string         `json:"locationId"`
	CustomerID      string         `json:"customerId"`
	Status          string         `json:"status"`
	OrderDate       time.Time      `json:"orderDate"`
	CreatedDate     time.Time      `json:"createdDate"`
	CreatedByUserID string         `json:"createdByUserId"`
	Total           string         `json:"total"`
	SubTotal        string         `json:"subTotal"`
	TotalDiscount   string         `json:"totalDiscount"`
	Notes           *string        `json:"notes,omitempty"`
	PoNumber        *string        `json:"poNumber,omitempty"`
	OriginalOrderID *string        `json:"originalOrderId,omitempty"`
	Email           *string        `json:"email,omitempty"`
	RowVersion      int            `json:"-"`
	Details         []Detail       `json:"details,omitempty"`
	Payments        []OrderPayment `json:"payments,omitempty"`
}

type Detail struct {
	ID        string `json:"id"`
	OrderID   string `json:"orderId"`
	ProductID string `json:"productId"`
	Amount    string `json:"amount"`
	UnitPrice string `json:"unitPrice"`
	LineTotal string `json:"lineTotal"`
}

type OrderPayment struct {
	ID              string    `json:"id"`
	OrderID         string    `json:"orderId"`
	CreatedByUserID string    `json:"createdByUserId"`
	CreatedDate     time.Time `json:"createdDate"`
	PaymentDate     time.Time `json:"paymentDate"`
	PaymentAmount   string    `json:"paymentAmount"`
	PaymentTypeID   int       `json:"paymentTypeId"`
}

type CreateInput struct {
	AuthCode        string         `json:"authCode"`
	LocationID      string         `json:"locationId"`
	CustomerID      string         `json:"customerId"`
	Status          string         `json:"status"`
	Total           string         `json:"total"`
	SubTotal        string         `json:"subTotal"`
	TotalDiscount   string         `json:"totalDiscount"`
	Notes           *string        `json:"notes"`
	PoNumber        *string        `json:"poNumber"`
	OriginalOrderID *string        `json:"originalOrderId"`
	Email           *string        `json:"email"`
	PaymentTypeID   int            `json:"paymentTypeId"`
	Details         []CreateDetail `json:"details"`
}

type CreateDetail struct {
	ProductID string `json:"productId"`
	Amount    string `json:"amount"`
	UnitPrice string `json:"unitPrice"`
	LineTotal string `json:"lineTotal"`
}

type UpdateStatusInput struct {
	Status        string `json:"status"`
	PaymentTypeID int    `json:"paymentTypeId"`
}

type UpdateInfoInput struct {
	Notes    *string `json:"notes"`
	PoNumber *string `json:"poNumber"`
}

type ListInput struct {
	Limit      int
	Offset     int
	LocationID *string
	CustomerID *string
}
