package render

import (
	"net/url"

	"kiosk/internal/cart"
	"kiosk/internal/menu"
)

// SelectedItemView is the projection of one cart entry onto the selection area.
// Action URLs are bound to the item id here so templates never build them.
type SelectedItemView struct {
	ItemID       string `json:"id"`
	Name         string `json:"name"`
	ImageURL     string `json:"image_url"`
	Quantity     int    `json:"quantity"`
	Price        int64  `json:"price"`
	Subtotal     int64  `json:"subtotal"`
	SubtotalText string `json:"subtotal_text"`
	QuantityURL  string `json:"quantity_url"`
}

type MenuItemView struct {
	ItemID    string
	Name      string
	ImageURL  string
	PriceText string
	SelectURL string
}

// ImageURL follows the /img/<itemId>.jpg asset convention.
func ImageURL(itemID string) string {
	return "/img/" + url.PathEscape(itemID) + ".jpg"
}

func itemActionURL(itemID, action string) string {
	return "/kiosk/items/" + url.PathEscape(itemID) + "/" + action
}

// BuildSelection maps the cart to view records in insertion order.
func BuildSelection(c *cart.Cart) []SelectedItemView {
	entries := c.Entries()
	views := make([]SelectedItemView, 0, len(entries))
	for _, e := range entries {
		subtotal := e.Subtotal()
		views = append(views, SelectedItemView{
			ItemID:       e.ItemID,
			Name:         e.Name,
			ImageURL:     ImageURL(e.ItemID),
			Quantity:     e.Quantity,
			Price:        e.Price,
			Subtotal:     subtotal,
			SubtotalText: FormatWon(subtotal),
			QuantityURL:  itemActionURL(e.ItemID, "quantity"),
		})
	}
	return views
}

func BuildMenu(items []menu.Item) []MenuItemView {
	views := make([]MenuItemView, 0, len(items))
	for _, item := range items {
		views = append(views, MenuItemView{
			ItemID:    item.ID,
			Name:      item.Name,
			ImageURL:  ImageURL(item.ID),
			PriceText: FormatWon(item.Price),
			SelectURL: itemActionURL(item.ID, "select"),
		})
	}
	return views
}
