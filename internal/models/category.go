package models

// Category is a system-defined taxonomy entry. Categories are seeded once
// from the embedded definition set and never mutated at runtime.
type Category struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Type     TransactionType `json:"type"`
	Color    string          `json:"color"`
	Icon     string          `json:"icon"`
	IsActive bool            `json:"isActive"`
}

// Subcategory belongs to exactly one Category and inherits its type.
type Subcategory struct {
	ID         string `json:"id"`
	CategoryID string `json:"categoryId"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	Icon       string `json:"icon"`
	IsActive   bool   `json:"isActive"`
}
