package model

import (
	"encoding/json"
	"strings"
)

// Category is a product category. The backend returns subcategories as a
// JSON-encoded string array, which Subcategories decodes.
type Category struct {
	ID             Numeric `json:"id"`
	CategoryName   string  `json:"categoryname"`
	Description    string  `json:"cat_description"`
	RawSubcategory string  `json:"subcategories"`
}

// Subcategories decodes RawSubcategory, falling back to a comma list.
func (c Category) Subcategories() []string {
	raw := strings.TrimSpace(c.RawSubcategory)
	if raw == "" {
		return nil
	}
	var names []string
	if err := json.Unmarshal([]byte(raw), &names); err == nil {
		return names
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// UnmarshalJSON tolerates subcategories sent either as a string or as an
// array.
func (c *Category) UnmarshalJSON(data []byte) error {
	type plain Category
	var aux struct {
		plain
		RawSubcategory json.RawMessage `json:"subcategories"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*c = Category(aux.plain)
	if len(aux.RawSubcategory) == 0 || string(aux.RawSubcategory) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(aux.RawSubcategory, &s); err == nil {
		c.RawSubcategory = s
		return nil
	}
	c.RawSubcategory = string(aux.RawSubcategory)
	return nil
}

// CategoryPayload is the body for creating or editing a category.
type CategoryPayload struct {
	CategoryName  string   `json:"categoryname"`
	Description   string   `json:"cat_description"`
	Subcategories []string `json:"subcategories"`
}

// ProductImage is one stored product image.
type ProductImage struct {
	ID     Numeric `json:"id"`
	ImgURL string  `json:"imgurl"`
}

// Product is one entry of /products.
type Product struct {
	ProductID   Numeric        `json:"product_id"`
	ProductName string         `json:"productname"`
	Slug        string         `json:"slug"`
	SKU         string         `json:"SKU"`
	SupplierSKU string         `json:"supplierSKU"`
	Price       Numeric        `json:"pro_price"`
	Quantity    Numeric        `json:"pro_quantity"`
	Description string         `json:"pro_description"`
	Category    *Category      `json:"category"`
	Images      []ProductImage `json:"images"`
}

// CategoryName returns the product's category name or "".
func (p Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.CategoryName
}
