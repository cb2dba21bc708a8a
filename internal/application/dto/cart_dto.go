package dto

// CartItemRequest línea solicitada por el comprador (sin precio: lo fija el catálogo).
type CartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1"`
}

// CartQuoteRequest entrada de POST /api/cart/quote.
type CartQuoteRequest struct {
	Items []CartItemRequest `json:"items" validate:"required,min=1,dive"`
}

// CartLineResponse línea valorizada.
type CartLineResponse struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     Money  `json:"price"`
	Quantity  int    `json:"quantity"`
	Total     Money  `json:"total"`
}

// CartQuoteResponse totales calculados en servidor.
type CartQuoteResponse struct {
	Items      []CartLineResponse `json:"items"`
	TotalItems int                `json:"totalItems"`
	Subtotal   Money              `json:"subtotal"`
	GST        Money              `json:"gst"`
	Total      Money              `json:"total"`
	Currency   string             `json:"currency"`
}
