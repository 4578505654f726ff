package domain

type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
}

type Product struct {
	ID                 int      `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Price              float64  `json:"price"`
	DiscountPercentage float64  `json:"discount_percentage"`
	Rating             float64  `json:"rating"`
	Stock              int      `json:"stock"`
	Brand              string   `json:"brand"`
	Thumbnail          string   `json:"thumbnail"`
	Images             []string `json:"images"`
	IsPublished        bool     `json:"is_published"`
	CreatedAt          string   `json:"created_at"`
	CategoryID         int      `json:"category_id"`
	AverageRating      float64  `json:"average_rating"`
	ReviewCount        int      `json:"review_count"`
}

type CartItem struct {
	ID        int     `json:"id"`
	ProductID int     `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
	Product   Product `json:"product"`
}

type Cart struct {
	ID          int        `json:"id"`
	UserID      int        `json:"user_id"`
	CreatedAt   string     `json:"created_at"`
	TotalAmount float64    `json:"total_amount"`
	Items       []CartItem `json:"cart_items"`
}

// CartItemRef is the wire shape of one line in a cart replacement. Every cart
// mutation resends the complete list of these.
type CartItemRef struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

type OrderItem struct {
	ID       int     `json:"id"`
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

type Order struct {
	ID          int         `json:"id"`
	TotalAmount float64     `json:"total_amount"`
	Status      string      `json:"status"`
	CreatedAt   string      `json:"created_at"`
	Items       []OrderItem `json:"order_items"`
}

type Wishlist struct {
	ID       int       `json:"id"`
	UserID   int       `json:"user_id"`
	Products []Product `json:"products"`
}

type Review struct {
	ID        int     `json:"id"`
	ProductID int     `json:"product_id"`
	UserID    int     `json:"user_id"`
	Rating    int     `json:"rating"`
	Comment   string  `json:"comment,omitempty"`
	CreatedAt string  `json:"created_at"`
	Product   Product `json:"product,omitempty"`
}
