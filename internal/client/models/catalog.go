package models

// Category groups menu items ("Burgers", "Pizzas", ...).
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Customization is an immutable per-item extra (topping, side, size). It is
// referenced by ID from menu items and carried verbatim on cart lines.
type Customization struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Type  string  `json:"type,omitempty"`
}

// MenuItem is a purchasable catalog entry.
type MenuItem struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	ImageURL       string          `json:"image_url"`
	Price          float64         `json:"price"`
	Rating         float64         `json:"rating"`
	Calories       int             `json:"calories"`
	Protein        int             `json:"protein"`
	CategoryID     string          `json:"categoryId"`
	Customizations []Customization `json:"customizations,omitempty"`
}

// Order is the reference returned by the payment initiation endpoint.
type Order struct {
	ID     string  `json:"id"`
	Amount float64 `json:"amount"`
}
