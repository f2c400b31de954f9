package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/adroitalarm/shopdesk/internal/common"
)

func TestCategoryRules(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
		field  string
		want   string
	}{
		{
			name:   "valid",
			values: map[string]string{FieldCategoryName: "Smart Home", FieldDescription: "Sensors, hubs & more!", FieldSubcategory: "Hubs,Sensors"},
		},
		{
			name:   "missing name",
			values: map[string]string{FieldCategoryName: "   "},
			field:  FieldCategoryName,
			want:   "CategoryName is required",
		},
		{
			name:   "name too short",
			values: map[string]string{FieldCategoryName: "ab"},
			field:  FieldCategoryName,
			want:   "Category name must be 3-50 characters, start and end with alphanumeric characters, and can contain spaces and hyphens",
		},
		{
			name:   "name ends with hyphen",
			values: map[string]string{FieldCategoryName: "Alarms-"},
			field:  FieldCategoryName,
			want:   "Category name must be 3-50 characters, start and end with alphanumeric characters, and can contain spaces and hyphens",
		},
		{
			name:   "description with disallowed characters",
			values: map[string]string{FieldCategoryName: "Alarms", FieldDescription: "<script>"},
			field:  FieldDescription,
			want:   "Description can contain letters, numbers, spaces, and common punctuation marks (max 500 characters)",
		},
		{
			name:   "description too long",
			values: map[string]string{FieldCategoryName: "Alarms", FieldDescription: strings.Repeat("a", 501)},
			field:  FieldDescription,
			want:   "Description can contain letters, numbers, spaces, and common punctuation marks (max 500 characters)",
		},
		{
			name:   "subcategory with spaces inside an item",
			values: map[string]string{FieldCategoryName: "Alarms", FieldSubcategory: "Door Sensors,Keypads"},
			field:  FieldSubcategory,
			want:   "Subcategories must be comma-separated alphanumeric values without spaces (e.g., Smartphones,Laptops,Tablets)",
		},
		{
			name:   "subcategory items are trimmed",
			values: map[string]string{FieldCategoryName: "Alarms", FieldSubcategory: " Keypads , Sirens ,"},
		},
		{
			name:   "duplicate subcategories",
			values: map[string]string{FieldCategoryName: "Alarms", FieldSubcategory: "Keypads,Sirens,Keypads"},
			field:  FieldSubcategory,
			want:   "Duplicate subcategories are not allowed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := CategoryRules.Validate(tt.values)
			if tt.want == "" {
				assert.Empty(t, errs)
				assert.NoError(t, errs.Err())
				return
			}
			assert.Equal(t, tt.want, errs.Get(tt.field))
			assert.ErrorIs(t, errs.Err(), common.ErrValidation)
		})
	}
}

func TestLoginRules(t *testing.T) {
	errs := LoginRules.Validate(map[string]string{})
	assert.Equal(t, Errors{
		{Field: FieldEmail, Message: "This field is required"},
		{Field: FieldPassword, Message: "This field is required"},
	}, errs)

	errs = LoginRules.Validate(map[string]string{FieldEmail: "admin@shop", FieldPassword: "12345"})
	assert.Equal(t, "Please enter a valid email address", errs.Get(FieldEmail))
	assert.Equal(t, "Password must be at least 6 characters", errs.Get(FieldPassword))
	assert.Equal(t, "Please enter a valid email address; Password must be at least 6 characters", errs.Summary())

	assert.Empty(t, LoginRules.Validate(map[string]string{FieldEmail: "admin@shop.com.au", FieldPassword: "hunter22"}))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitList(" a,, b ,"))
	assert.Nil(t, SplitList(" , "))
}
