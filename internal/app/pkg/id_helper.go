package pkg

import (
	"strconv"
	"strings"

	"github.com/safatanc/promotion-core/internal/app/errors"
)

const MsgInvalidPromotionID = "invalid promotion id"

// ParsePromotionID converts a path or query value into a promotion id.
// Anything that is not a base-10 integer is a validation error.
func ParsePromotionID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, errors.NewValidationError(MsgInvalidPromotionID)
	}
	return id, nil
}
