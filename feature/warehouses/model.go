package warehouses

import "time"

// StoreWarehouse is one row of the mapping table.
type StoreWarehouse struct {
	Store     string    `gorm:"column:store;primaryKey;type:varchar(64)" json:"store"`
	Warehouse string    `gorm:"column:warehouse;type:varchar(32);not null" json:"warehouse"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:datetime" json:"updated_at"`
}

// TableName overrides the table name.
func (StoreWarehouse) TableName() string {
	return "store_warehouses"
}
