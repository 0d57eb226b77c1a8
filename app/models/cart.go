package models

// CartLine is one menu item in a cart.
type CartLine struct {
	ID       string `json:"id"`
	ItemCode int    `json:"itemCode"`
	Quantity int    `json:"quantity"`
}

// Cart is stored under carts/<id>.json. Orders lists the orders checked out
// from it, oldest first.
type Cart struct {
	ID     string     `json:"id"`
	Email  string     `json:"email"`
	Items  []CartLine `json:"items"`
	Orders []string   `json:"orders"`
}
