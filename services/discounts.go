package services

import (
	"errors"
	"strings"

	"github.com/racsaibot-coder/rich-aroma-os/apperr"
	"github.com/racsaibot-coder/rich-aroma-os/models"

	"gorm.io/gorm"
)

// DiscountLookup is what order creation consumes. The core never reprices
// an order with it; callers apply the percent themselves.
type DiscountLookup struct {
	Valid     bool    `json:"valid"`
	Code      string  `json:"code"`
	Percent   float64 `json:"percent"`
	CreatorID *string `json:"creator_id"`
}

// LookupDiscountCode resolves an active discount code, case-insensitively.
func LookupDiscountCode(db *gorm.DB, code string) (*DiscountLookup, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, apperr.New(apperr.Validation, "code is required")
	}

	var dc models.DiscountCode
	err := db.First(&dc, "code = ? AND active = ?", code, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "invalid code")
		}
		return nil, apperr.Wrap(apperr.IntegrityWarning, "discount lookup failed", err)
	}

	return &DiscountLookup{
		Valid:     true,
		Code:      dc.Code,
		Percent:   dc.Percent,
		CreatorID: dc.CreatorID,
	}, nil
}
