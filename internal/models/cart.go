package models

// CartItem is the local line-item shape held by the cart store.
// ID is derived from the product id; a quantity below 1 never
// appears here, removal happens instead.
type CartItem struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Image     string  `json:"image,omitempty"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// CartProduct is the line-item shape returned by GET /cart/:userId.
type CartProduct struct {
	ProductID    string  `json:"product_id"`
	ProductName  string  `json:"product_name"`
	ProductImage string  `json:"product_image,omitempty"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
}

type AddToCartRequest struct {
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type UpdateCartRequest struct {
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type RemoveFromCartRequest struct {
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id"`
}
