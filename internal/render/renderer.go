package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"kiosk/internal/cart"
	"kiosk/internal/menu"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// SelectionContainerID is the id of the element the selection is rendered into.
const SelectionContainerID = "selected-items"

type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

type selectionData struct {
	ContainerID string
	Items       []SelectedItemView
	TotalText   string
}

type pageData struct {
	Menu      []MenuItemView
	Selection selectionData
	Notice    string
}

// RenderSelectedItems rebuilds the whole selection container from the cart.
func (r *Renderer) RenderSelectedItems(c *cart.Cart) (string, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, "selection", newSelectionData(c)); err != nil {
		return "", fmt.Errorf("render selection: %w", err)
	}
	return buf.String(), nil
}

// RenderPage writes the full kiosk page. notice is shown above the selection when set.
func (r *Renderer) RenderPage(w io.Writer, items []menu.Item, c *cart.Cart, notice string) error {
	data := pageData{
		Menu:      BuildMenu(items),
		Selection: newSelectionData(c),
		Notice:    notice,
	}
	if err := r.templates.ExecuteTemplate(w, "page.gohtml", data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

func newSelectionData(c *cart.Cart) selectionData {
	return selectionData{
		ContainerID: SelectionContainerID,
		Items:       BuildSelection(c),
		TotalText:   FormatWon(c.Total()),
	}
}
