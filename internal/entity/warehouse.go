package entity

// Contact is the single embedded contact carried by a warehouse.
type Contact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// Warehouse is a physical site that owns locations.
type Warehouse struct {
	Metadata
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Address  string  `json:"address"`
	Zip      string  `json:"zip"`
	City     string  `json:"city"`
	Province string  `json:"province"`
	Country  string  `json:"country"`
	Contact  Contact `json:"contact"`
}

// Location is a named slot inside a warehouse.
type Location struct {
	Metadata
	WarehouseID int64  `json:"warehouse_id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
}
