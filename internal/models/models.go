package models

type User struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  string `gorm:"not null"                 json:"name"`
	Email string `gorm:"not null"                 json:"email"`
}

type Category struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"not null"                 json:"name"`
}

type Product struct {
	ID         uint    `gorm:"primaryKey;autoIncrement"    json:"id"`
	Name       string  `gorm:"not null"                    json:"name"`
	Price      float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	Stock      int     `gorm:"not null;default:0"          json:"stock"`
	CategoryID *uint   `gorm:"index"                       json:"category_id"`
}

// Order rows are immutable history: once placed they are never updated,
// and deleting one does not restore product stock.
type Order struct {
	ID        uint `gorm:"primaryKey;autoIncrement"  json:"id"`
	UserID    uint `gorm:"index;not null"            json:"user_id"`
	ProductID uint `gorm:"not null"                  json:"product_id"`
	Quantity  int  `gorm:"not null;check:quantity>0" json:"quantity"`
}
