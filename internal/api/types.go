package api

import "time"

// Product mirrors a catalog entry as returned by /api/products.
type Product struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Sizes       []string  `json:"sizes"`
	Colors      []string  `json:"colors"`
	ImageURL    string    `json:"imageUrl"`
	Discount    float64   `json:"discount"`
	Secondhand  bool      `json:"secondhand"`
	SellerID    string    `json:"sellerId"`
	Likes       []string  `json:"likes"`
	Comments    []Comment `json:"comments"`
}

// LikedBy reports whether the given user id appears in the like list.
func (p Product) LikedBy(userID string) bool {
	if userID == "" {
		return false
	}
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// Comment is a single comment attached to a product.
type Comment struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// User mirrors the actor payload returned by the auth endpoints.
type User struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Token    string `json:"token,omitempty"`
}

// CartItem pairs a product with its quantity inside the server cart.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// cartPayload mirrors the cart endpoints' response envelope.
type cartPayload struct {
	Items []CartItem `json:"items"`
}

// userPayload mirrors the auth endpoints' response envelope.
type userPayload struct {
	User User `json:"user"`
}

// favoritesPayload mirrors /api/product-actions/my/favorites.
type favoritesPayload struct {
	Favorites []Product `json:"favorites"`
}

// FavoriteResult is the server's authoritative answer to a favorite toggle.
type FavoriteResult struct {
	Favorited bool `json:"favorited"`
}

// LikeResult is the server's authoritative answer to a like toggle.
type LikeResult struct {
	LikesCount int  `json:"likesCount"`
	Liked      bool `json:"liked"`
}

// commentsPayload mirrors the comment mutation responses.
type commentsPayload struct {
	Comments []Comment `json:"comments"`
}

// CheckoutLine is the cart line shape the checkout endpoint expects.
type CheckoutLine struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// checkoutPayload mirrors /api/checkout/create-checkout-session.
type checkoutPayload struct {
	URL string `json:"url"`
}

// NewProduct carries the fields a seller submits when creating a listing.
type NewProduct struct {
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Sizes       []string `json:"sizes,omitempty"`
	Colors      []string `json:"colors,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Secondhand  bool     `json:"secondhand,omitempty"`
	Discount    float64  `json:"discount,omitempty"`
}
