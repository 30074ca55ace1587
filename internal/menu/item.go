package menu

// Item is one orderable entry on the kiosk menu.
// Price is in whole won.
type Item struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Price    int64  `json:"price" yaml:"price"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
}
