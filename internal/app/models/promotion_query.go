package models

// PromotionQuery holds the optional list filters. When several are set, name
// wins over product_id, which wins over discount_ratio.
type PromotionQuery struct {
	Name          *string `json:"name" validate:"omitempty,max=63"`
	ProductID     *int64  `json:"product_id"`
	DiscountRatio *int64  `json:"discount_ratio" validate:"omitempty,min=0,max=100"`
}
