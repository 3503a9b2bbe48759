package orders

import "dukaan/models"

type placeOrderRequest struct {
	Items         []models.OrderItem `json:"items"`
	Shipping      models.Shipping    `json:"shipping"`
	PaymentMethod string             `json:"paymentMethod"`
	Total         float64            `json:"total"`
}

var paymentMethods = map[string]bool{
	"card": true,
	"upi":  true,
	"cod":  true,
}

// validatePlaceOrder checks the proposed order before anything touches the
// stores. It returns a client-facing message, or "" when the request is valid.
// Product existence and stock are checked separately against the catalog.
func validatePlaceOrder(req placeOrderRequest) string {
	if len(req.Items) == 0 {
		return "Order must contain at least one item"
	}
	for _, item := range req.Items {
		if item.ProductID == "" || item.Quantity < 1 {
			return "Order items must reference a product with quantity of at least 1"
		}
	}
	if !shippingComplete(req.Shipping) || req.PaymentMethod == "" || req.Total <= 0 {
		return "Missing required order information"
	}
	if !paymentMethods[req.PaymentMethod] {
		return "Invalid payment method"
	}
	return ""
}

func shippingComplete(s models.Shipping) bool {
	return s.FirstName != "" && s.LastName != "" && s.Email != "" && s.Phone != "" &&
		s.Address != "" && s.City != "" && s.State != "" && s.ZipCode != ""
}
