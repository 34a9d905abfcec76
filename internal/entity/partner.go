package entity

// Supplier sells items into the warehouses.
type Supplier struct {
	Metadata
	Code         string `json:"code"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	AddressExtra string `json:"address_extra"`
	City         string `json:"city"`
	ZipCode      string `json:"zip_code"`
	Province     string `json:"province"`
	Country      string `json:"country"`
	ContactName  string `json:"contact_name"`
	Phonenumber  string `json:"phonenumber"`
	Reference    string `json:"reference"`
}

// Client receives orders; ship-to and bill-to on an order point here.
type Client struct {
	Metadata
	Name         string `json:"name"`
	Address      string `json:"address"`
	City         string `json:"city"`
	ZipCode      string `json:"zip_code"`
	Province     string `json:"province"`
	Country      string `json:"country"`
	ContactName  string `json:"contact_name"`
	ContactPhone string `json:"contact_phone"`
	ContactEmail string `json:"contact_email"`
}
