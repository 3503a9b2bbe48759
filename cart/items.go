package cart

import "dukaan/models"

// Line item operations. A cart never holds two entries for the same product,
// so every mutation goes through these helpers.

// upsertItem merges quantity into an existing entry or appends a new one.
func upsertItem(items []models.CartItem, productID string, quantity int) []models.CartItem {
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity += quantity
			return items
		}
	}
	return append(items, models.CartItem{ProductID: productID, Quantity: quantity})
}

// setQuantity overwrites an entry's quantity, removing it when quantity <= 0.
// The second return reports whether the product was present at all.
func setQuantity(items []models.CartItem, productID string, quantity int) ([]models.CartItem, bool) {
	for i := range items {
		if items[i].ProductID != productID {
			continue
		}
		if quantity <= 0 {
			return append(items[:i], items[i+1:]...), true
		}
		items[i].Quantity = quantity
		return items, true
	}
	return items, false
}

// removeItem drops the entry for productID; absent entries are a no-op.
func removeItem(items []models.CartItem, productID string) []models.CartItem {
	out := items[:0]
	for _, item := range items {
		if item.ProductID != productID {
			out = append(out, item)
		}
	}
	return out
}
