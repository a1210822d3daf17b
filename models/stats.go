package models

// DashboardStats is the payload of the admin dashboard
type DashboardStats struct {
	OrdersCount           int     `json:"ordersCount"`
	ProductsCount         int     `json:"productsCount"`
	UsersCount            int     `json:"usersCount"`
	TotalRevenue          float64 `json:"totalRevenue"`
	TotalRevenueFormatted string  `json:"totalRevenueFormatted"`
}
