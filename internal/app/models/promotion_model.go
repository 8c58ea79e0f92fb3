package models

import (
	"encoding/json"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/safatanc/promotion-core/internal/app/errors"
)

const PromotionNameMaxLength = 63

const (
	MsgMalformedBody           = "malformed body"
	MsgNoFieldsToUpdate        = "no fields to update"
	MsgDiscountRatioOutOfRange = "discount_ratio out of range, expected 0 to 100"
	MsgNameTooLong             = "name too long, expected at most 63 characters"
)

// Promotion is a discount on a single product. ID is assigned by the store on
// the first save and Counter only ever moves through a redeem.
type Promotion struct {
	ID            int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string `gorm:"type:varchar(63);index" json:"name"`
	ProductID     int64  `gorm:"index" json:"product_id"`
	DiscountRatio int64  `gorm:"index" json:"discount_ratio"`
	Counter       int64  `gorm:"not null" json:"counter"`
}

func (Promotion) TableName() string {
	return "promotions"
}

func (p *Promotion) IsPersisted() bool {
	return p.ID != 0
}

// Serialize returns the external representation. id and counter are nil until
// the promotion has been saved.
func (p *Promotion) Serialize() map[string]any {
	var id, counter any
	if p.IsPersisted() {
		id = p.ID
		counter = p.Counter
	}
	return map[string]any{
		"id":             id,
		"name":           p.Name,
		"product_id":     p.ProductID,
		"discount_ratio": p.DiscountRatio,
		"counter":        counter,
	}
}

// promotionFields holds the client-settable fields after type conversion.
// A nil pointer means the key was absent from the input.
type promotionFields struct {
	Name          *string `json:"name" validate:"omitempty,max=63"`
	ProductID     *int64  `json:"product_id"`
	DiscountRatio *int64  `json:"discount_ratio" validate:"omitempty,min=0,max=100"`
}

var requiredPromotionKeys = []string{"name", "product_id", "discount_ratio"}

var validate = newFieldValidator()

func newFieldValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DeserializePromotion builds a new, unsaved promotion from a decoded JSON body.
func DeserializePromotion(data any) (*Promotion, error) {
	promotion := &Promotion{}
	if err := promotion.Deserialize(data); err != nil {
		return nil, err
	}
	return promotion, nil
}

// Deserialize replaces name, product_id and discount_ratio. All three keys are
// required. ID and Counter are never touched.
func (p *Promotion) Deserialize(data any) error {
	body, ok := data.(map[string]any)
	if !ok {
		return errors.NewValidationError(MsgMalformedBody)
	}

	for _, key := range requiredPromotionKeys {
		if _, present := body[key]; !present {
			return errors.NewValidationError("missing field: " + key)
		}
	}

	fields, err := parsePromotionFields(body)
	if err != nil {
		return err
	}

	p.apply(fields)
	return nil
}

// DeserializePartial applies only the recognized keys present in data. Every
// present field is checked before any of them is applied.
func (p *Promotion) DeserializePartial(data any) error {
	body, ok := data.(map[string]any)
	if !ok {
		return errors.NewValidationError(MsgMalformedBody)
	}

	fields, err := parsePromotionFields(body)
	if err != nil {
		return err
	}
	if fields.Name == nil && fields.ProductID == nil && fields.DiscountRatio == nil {
		return errors.NewValidationError(MsgNoFieldsToUpdate)
	}

	p.apply(fields)
	return nil
}

func (p *Promotion) apply(fields *promotionFields) {
	if fields.Name != nil {
		p.Name = *fields.Name
	}
	if fields.ProductID != nil {
		p.ProductID = *fields.ProductID
	}
	if fields.DiscountRatio != nil {
		p.DiscountRatio = *fields.DiscountRatio
	}
}

func parsePromotionFields(body map[string]any) (*promotionFields, error) {
	fields := &promotionFields{}

	if raw, present := body["name"]; present {
		name, ok := raw.(string)
		if !ok {
			return nil, errors.NewValidationError(MsgMalformedBody)
		}
		fields.Name = &name
	}
	if raw, present := body["product_id"]; present {
		productID, ok := toInt64(raw)
		if !ok {
			return nil, errors.NewValidationError(MsgMalformedBody)
		}
		fields.ProductID = &productID
	}
	if raw, present := body["discount_ratio"]; present {
		ratio, ok := toInt64(raw)
		if !ok {
			return nil, errors.NewValidationError(MsgMalformedBody)
		}
		fields.DiscountRatio = &ratio
	}

	if err := validate.Struct(fields); err != nil {
		return nil, fieldValidationError(err)
	}
	return fields, nil
}

func fieldValidationError(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return errors.NewValidationError(MsgMalformedBody)
	}

	switch field := validationErrors[0].Field(); field {
	case "discount_ratio":
		return errors.NewValidationError(MsgDiscountRatioOutOfRange)
	case "name":
		return errors.NewValidationError(MsgNameTooLong)
	default:
		return errors.NewValidationError("invalid field: " + field)
	}
}

// toInt64 accepts the numeric shapes a JSON decoder can produce. Fractions,
// booleans, strings and nulls are rejected.
func toInt64(raw any) (int64, bool) {
	switch n := raw.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt64(f)
	case float64:
		return floatToInt64(n)
	case float32:
		return floatToInt64(float64(n))
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return uintToInt64(uint64(n))
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return uintToInt64(n)
	default:
		return 0, false
	}
}

func floatToInt64(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func uintToInt64(u uint64) (int64, bool) {
	if u > math.MaxInt64 {
		return 0, false
	}
	return int64(u), true
}
