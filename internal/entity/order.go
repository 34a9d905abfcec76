package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is an outbound request for items. Status is a free-text
// progression string ("Pending", "Packed", "Shipped", ...).
type Order struct {
	Metadata
	SourceID       int64           `json:"source_id"`
	OrderDate      time.Time       `json:"order_date"`
	RequestDate    time.Time       `json:"request_date"`
	Reference      string          `json:"reference"`
	ReferenceExtra string          `json:"reference_extra"`
	OrderStatus    string          `json:"order_status"`
	Notes          string          `json:"notes"`
	ShippingNotes  string          `json:"shipping_notes"`
	PickingNotes   string          `json:"picking_notes"`
	WarehouseID    int64           `json:"warehouse_id"`
	ShipTo         int64           `json:"ship_to"`
	BillTo         int64           `json:"bill_to"`
	ShipmentID     int64           `json:"shipment_id"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	TotalDiscount  decimal.Decimal `json:"total_discount"`
	TotalTax       decimal.Decimal `json:"total_tax"`
	TotalSurcharge decimal.Decimal `json:"total_surcharge"`
	Items          []LineItem      `json:"items"`
}

// Shipment moves the goods of an order with a carrier.
type Shipment struct {
	Metadata
	OrderID            int64      `json:"order_id"`
	SourceID           int64      `json:"source_id"`
	OrderDate          time.Time  `json:"order_date"`
	RequestDate        time.Time  `json:"request_date"`
	ShipmentDate       time.Time  `json:"shipment_date"`
	ShipmentType       string     `json:"shipment_type"`
	ShipmentStatus     string     `json:"shipment_status"`
	Notes              string     `json:"notes"`
	CarrierCode        string     `json:"carrier_code"`
	CarrierDescription string     `json:"carrier_description"`
	ServiceCode        string     `json:"service_code"`
	PaymentType        string     `json:"payment_type"`
	TransferMode       string     `json:"transfer_mode"`
	TotalPackageCount  int64      `json:"total_package_count"`
	TotalPackageWeight float64    `json:"total_package_weight"`
	Items              []LineItem `json:"items"`
}
