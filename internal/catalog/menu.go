package catalog

import "github.com/shopspring/decimal"

// DefaultMenu returns the built-in restaurant menu.
func DefaultMenu() *Catalog {
	c, err := New(
		Item{ID: "m1", Name: "Margherita Pizza", Description: "Classic cheese & tomato", UnitPrice: decimal.NewFromInt(299), ImageRef: "1.png"},
		Item{ID: "m2", Name: "Veg Burger", Description: "Veg patty, lettuce & tomato", UnitPrice: decimal.NewFromInt(149), ImageRef: "4.jpg"},
		Item{ID: "m3", Name: "Paneer Butter Masala", Description: "Creamy tomato gravy", UnitPrice: decimal.NewFromInt(229), ImageRef: "5.jpg"},
		Item{ID: "m4", Name: "Garlic Naan", Description: "Tandoor-roasted naan", UnitPrice: decimal.NewFromInt(49), ImageRef: "2.png"},
		Item{ID: "m5", Name: "Coke (500ml)", Description: "Chilled beverage", UnitPrice: decimal.NewFromInt(49), ImageRef: "3.png"},
		Item{ID: "m6", Name: "Chocolate Brownie", Description: "With ice cream", UnitPrice: decimal.NewFromInt(129), ImageRef: "https://images.unsplash.com/photo-1544025162-d76694265947?w=800&q=60&auto=format&fit=crop"},
	)
	if err != nil {
		// static data, cannot fail
		panic(err)
	}
	return c
}
