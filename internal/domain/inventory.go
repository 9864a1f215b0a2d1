package domain

type InventoryItem struct {
	ID       string
	Name     string
	Category InventoryCategory
	TotalQty float64
	UsedQty  float64
	Unit     string
	UnitCost float64
	Supplier string
	Status   InventoryStatus
}

// RemainingQty returns the unused quantity, never negative.
func (i InventoryItem) RemainingQty() float64 {
	r := i.TotalQty - i.UsedQty
	if r < 0 {
		return 0
	}
	return r
}

// TotalCost returns the cost of the full stocked quantity.
func (i InventoryItem) TotalCost() float64 {
	return i.TotalQty * i.UnitCost
}
