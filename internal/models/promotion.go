package models

import "github.com/shopspring/decimal"

type Promotion struct {
	ID         int64           `json:"id"`
	Content    string          `json:"content"`
	Percentage decimal.Decimal `json:"percentage"`
	StartDate  Date            `json:"startDate"`
	EndDate    Date            `json:"endDate"`
	Active     bool            `json:"active"`
}

// PromotionDetail is a promotion together with the sub-categories it applies to.
type PromotionDetail struct {
	Promotion
	SubCategoryIDs   []int64  `json:"subCategoryIds"`
	SubCategoryNames []string `json:"subCategoryNames,omitempty"`
}

type CreatePromotionRequest struct {
	Content        string          `json:"content"`
	Percentage     decimal.Decimal `json:"percentage"`
	StartDate      Date            `json:"startDate"`
	EndDate        Date            `json:"endDate"`
	Active         bool            `json:"active"`
	SubCategoryIDs []int64         `json:"subCategoryIds"`
}

type UpdatePromotionRequest struct {
	ID             int64            `json:"id"`
	Content        *string          `json:"content,omitempty"`
	Percentage     *decimal.Decimal `json:"percentage,omitempty"`
	StartDate      *Date            `json:"startDate,omitempty"`
	EndDate        *Date            `json:"endDate,omitempty"`
	Active         *bool            `json:"active,omitempty"`
	SubCategoryIDs []int64          `json:"subCategoryIds,omitempty"`
}
