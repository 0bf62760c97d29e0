package service

import "github.com/sarmatov/shopadmin/internal/repo"

type ProductRef struct {
	ID   uint
	Name string
}

type CategoryView struct {
	ID       uint
	Name     string
	Products []ProductRef
}

type OrderLine struct {
	ProductName  string
	ProductPrice float64
	Quantity     int
}

type UserOrdersView struct {
	ID         uint
	Name       string
	Orders     []OrderLine
	TotalPrice float64
}

// FoldCategories groups the flat category/product join rows by category,
// preserving first-seen order. Categories without products keep an empty
// (non-nil) products list.
func FoldCategories(rows []repo.CategoryProductRow) []CategoryView {
	byID := make(map[uint]int, len(rows))
	views := make([]CategoryView, 0, len(rows))

	for _, row := range rows {
		i, ok := byID[row.CategoryID]
		if !ok {
			i = len(views)
			byID[row.CategoryID] = i
			views = append(views, CategoryView{
				ID:       row.CategoryID,
				Name:     row.CategoryName,
				Products: []ProductRef{},
			})
		}
		if row.ProductID != nil {
			name := ""
			if row.ProductName != nil {
				name = *row.ProductName
			}
			views[i].Products = append(views[i].Products, ProductRef{ID: *row.ProductID, Name: name})
		}
	}

	return views
}

// FoldUserOrders groups the orders/users/products join rows by user,
// preserving first-seen order, accumulating the total price as
// price * quantity in float64 with no rounding.
func FoldUserOrders(rows []repo.UserOrderRow) []UserOrdersView {
	byID := make(map[uint]int, len(rows))
	views := make([]UserOrdersView, 0, len(rows))

	for _, row := range rows {
		i, ok := byID[row.UserID]
		if !ok {
			i = len(views)
			byID[row.UserID] = i
			views = append(views, UserOrdersView{
				ID:     row.UserID,
				Name:   row.UserName,
				Orders: []OrderLine{},
			})
		}
		views[i].Orders = append(views[i].Orders, OrderLine{
			ProductName:  row.ProductName,
			ProductPrice: row.ProductPrice,
			Quantity:     row.Quantity,
		})
		views[i].TotalPrice += row.ProductPrice * float64(row.Quantity)
	}

	return views
}
