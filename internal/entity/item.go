package entity

// Item is a stock-keeping unit. UID is the string business key and stays
// distinct from the numeric primary key.
type Item struct {
	Metadata
	UID                  string `json:"uid"`
	Code                 string `json:"code"`
	Description          string `json:"description"`
	ShortDescription     string `json:"short_description"`
	UpcCode              string `json:"upc_code"`
	ModelNumber          string `json:"model_number"`
	CommodityCode        string `json:"commodity_code"`
	ItemLineID           int64  `json:"item_line"`
	ItemGroupID          int64  `json:"item_group"`
	ItemTypeID           int64  `json:"item_type"`
	UnitPurchaseQuantity int64  `json:"unit_purchase_quantity"`
	UnitOrderQuantity    int64  `json:"unit_order_quantity"`
	PackOrderQuantity    int64  `json:"pack_order_quantity"`
	SupplierID           int64  `json:"supplier_id"`
	SupplierCode         string `json:"supplier_code"`
	SupplierPartNumber   string `json:"supplier_part_number"`
	WeightInKg           int64  `json:"weight_in_kg"`
}

// ItemLine, ItemGroup and ItemType are flat classification entities.
// Their names are restricted to letters and spaces.

type ItemLine struct {
	Metadata
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ItemGroup struct {
	Metadata
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ItemType struct {
	Metadata
	Name        string `json:"name"`
	Description string `json:"description"`
}
