package validation

import "regexp"

// Field names used by the category and login forms.
const (
	FieldCategoryName = "categoryName"
	FieldDescription  = "description"
	FieldSubcategory  = "subcategory"
	FieldEmail        = "email"
	FieldPassword     = "password"
)

// CategoryRules validate the category create and edit forms.
var CategoryRules = Rules{
	{
		Field:    FieldCategoryName,
		Required: true,
		Pattern:  regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9\s-]{1,48}[a-zA-Z0-9]$`),
		Message:  "Category name must be 3-50 characters, start and end with alphanumeric characters, and can contain spaces and hyphens",
	},
	{
		Field:   FieldDescription,
		Pattern: regexp.MustCompile(`^[a-zA-Z0-9\s\-,.!?()@#$%&*+='"]{0,500}$`),
		Message: "Description can contain letters, numbers, spaces, and common punctuation marks (max 500 characters)",
	},
	{
		Field:   FieldSubcategory,
		Pattern: regexp.MustCompile(`^[a-zA-Z0-9]+(,[a-zA-Z0-9]+)*$`),
		Message: "Subcategories must be comma-separated alphanumeric values without spaces (e.g., Smartphones,Laptops,Tablets)",
		List:    true,
	},
}

// LoginRules validate the sign-in form.
var LoginRules = Rules{
	{
		Field:           FieldEmail,
		Required:        true,
		RequiredMessage: "This field is required",
		Pattern:         regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`),
		Message:         "Please enter a valid email address",
	},
	{
		Field:           FieldPassword,
		Required:        true,
		RequiredMessage: "This field is required",
		MinLength:       6,
		Message:         "Password must be at least 6 characters",
	},
}
