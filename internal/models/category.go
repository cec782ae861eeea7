package models

// SupCategory groups sub-categories. It is used for filtering only.
type SupCategory struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
	// The API has shipped both spellings.
	SubCategoriesLower []SubCategory `json:"subcategories,omitempty"`
	SubCategories      []SubCategory `json:"subCategories,omitempty"`
}

// Children returns the nested sub-categories whichever key carried them.
func (s SupCategory) Children() []SubCategory {
	if len(s.SubCategories) > 0 {
		return s.SubCategories
	}
	return s.SubCategoriesLower
}

// SubCategory is the leaf classification a book belongs to and the unit
// promotions attach to.
type SubCategory struct {
	ID            int64  `json:"id"`
	SupCategoryID int64  `json:"supCategoryId"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Active        bool   `json:"active"`
}

type SubCategoryRequest struct {
	SupCategoryID int64  `json:"supCategoryId"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Active        bool   `json:"active"`
}

type SupCategoryRequest struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
}
