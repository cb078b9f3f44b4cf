// Package cart holds a customer's uncommitted selection of menu items.
package cart

import "github.com/google/uuid"

// Line is one menu item in the cart. Price is the unit price in minor units.
type Line struct {
	ID         string `json:"id"`
	MenuItemID uint   `json:"menu_item_id"`
	NameAr     string `json:"name_ar"`
	NameEn     string `json:"name_en"`
	NameFr     string `json:"name_fr"`
	Price      int64  `json:"price"`
	Quantity   int    `json:"quantity"`
	ImageURL   string `json:"image_url,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// Cart is an ordered list of lines, at most one per menu item.
type Cart struct {
	ID    string `json:"id"`
	Lines []Line `json:"items"`
}

// New returns an empty cart with a fresh id.
func New() *Cart {
	return &Cart{ID: uuid.NewString(), Lines: []Line{}}
}

func (c *Cart) find(menuItemID uint) int {
	for i := range c.Lines {
		if c.Lines[i].MenuItemID == menuItemID {
			return i
		}
	}
	return -1
}

// Add appends the line, or adds its quantity to the existing line for the
// same menu item.
func (c *Cart) Add(line Line) {
	if i := c.find(line.MenuItemID); i >= 0 {
		c.Lines[i].Quantity += line.Quantity
		return
	}
	line.ID = uuid.NewString()
	c.Lines = append(c.Lines, line)
}

// Remove drops the line for the menu item, if any.
func (c *Cart) Remove(menuItemID uint) {
	if i := c.find(menuItemID); i >= 0 {
		c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	}
}

// UpdateQuantity sets the quantity of a line; zero or less removes it.
func (c *Cart) UpdateQuantity(menuItemID uint, quantity int) {
	if quantity <= 0 {
		c.Remove(menuItemID)
		return
	}
	if i := c.find(menuItemID); i >= 0 {
		c.Lines[i].Quantity = quantity
	}
}

func (c *Cart) UpdateNotes(menuItemID uint, notes string) {
	if i := c.find(menuItemID); i >= 0 {
		c.Lines[i].Notes = notes
	}
}

func (c *Cart) Clear() {
	c.Lines = []Line{}
}

// Subtotal is the sum of price times quantity over all lines.
func (c *Cart) Subtotal() int64 {
	var total int64
	for _, l := range c.Lines {
		total += l.Price * int64(l.Quantity)
	}
	return total
}

// Total equals Subtotal; delivery fees and discounts are applied at checkout.
func (c *Cart) Total() int64 {
	return c.Subtotal()
}

// ItemCount is the sum of quantities.
func (c *Cart) ItemCount() int {
	count := 0
	for _, l := range c.Lines {
		count += l.Quantity
	}
	return count
}

// View is the cart as returned to clients.
type View struct {
	ID        string `json:"id"`
	Items     []Line `json:"items"`
	Subtotal  int64  `json:"subtotal"`
	Total     int64  `json:"total"`
	ItemCount int    `json:"item_count"`
}

func (c *Cart) View() View {
	return View{
		ID:        c.ID,
		Items:     c.Lines,
		Subtotal:  c.Subtotal(),
		Total:     c.Total(),
		ItemCount: c.ItemCount(),
	}
}
