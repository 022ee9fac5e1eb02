package domain

import "time"

type OrderConfirmedEvent struct {
	OrderID      int64     `json:"order_id"`
	CustomerName string    `json:"customer_name"`
	Phone        string    `json:"phone"`
	Total        string    `json:"total"`
	ItemCount    int       `json:"item_count"`
	Token        string    `json:"token"`
	Timestamp    time.Time `json:"timestamp"`
}
