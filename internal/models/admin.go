package models

type DashboardStats struct {
	TotalRevenue   float64 `json:"total_revenue"`
	TotalOrders    int     `json:"total_orders"`
	TotalCustomers int     `json:"total_customers"`
	TotalProducts  int     `json:"total_products"`
	PendingOrders  int     `json:"pending_orders"`
}

type CustomerSummary struct {
	UserID     string  `json:"user_id"`
	FullName   string  `json:"full_name"`
	Email      string  `json:"email"`
	OrderCount int     `json:"order_count"`
	TotalSpent float64 `json:"total_spent"`
}

type SalesPoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

type TopProduct struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitsSold int     `json:"units_sold"`
	Revenue   float64 `json:"revenue"`
}
