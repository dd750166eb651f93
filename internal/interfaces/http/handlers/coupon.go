package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/coupon"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
)

// CouponView is a coupon as the coupons page shows it
type CouponView struct {
	catalog.Coupon
	ExpiresIn string `json:"expires_in"`
	Eligible  bool   `json:"eligible"`
}

// CouponHandler handles coupon listing
type CouponHandler struct {
	validator *coupon.Validator
}

// NewCouponHandler creates a new coupon handler
func NewCouponHandler(v *coupon.Validator) *CouponHandler {
	return &CouponHandler{validator: v}
}

// GetCoupons handles GET /coupons. Every active coupon is listed and marked
// eligible against ?subtotal= or, without it, the session cart's subtotal.
// ?eligible=true keeps only eligible coupons.
func (h *CouponHandler) GetCoupons(c *gin.Context) {
	var subtotal decimal.Decimal
	if raw := c.Query("subtotal"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil || v.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subtotal"})
			return
		}
		subtotal = v
	} else if st := middleware.GetSession(c); st != nil {
		subtotal = st.Cart.Total()
	}

	onlyEligible := c.Query("eligible") == "true"
	eligible := make(map[string]bool)
	for _, cp := range h.validator.Eligible(subtotal) {
		eligible[cp.Code] = true
	}

	now := h.validator.Now()
	out := make([]CouponView, 0)
	for _, cp := range h.validator.Active() {
		if onlyEligible && !eligible[cp.Code] {
			continue
		}
		out = append(out, CouponView{
			Coupon:    cp,
			ExpiresIn: timeRemaining(cp.Expiry, now),
			Eligible:  eligible[cp.Code],
		})
	}

	respondOK(c, "Coupons retrieved successfully", out)
}

// timeRemaining renders how long until expiry, in days when over a day
func timeRemaining(expiry, now time.Time) string {
	left := expiry.Sub(now)
	switch {
	case left <= 0:
		return "expired"
	case left >= 48*time.Hour:
		return formatCount(int(left.Hours()/24), "day")
	case left >= time.Hour:
		return formatCount(int(left.Hours()), "hour")
	default:
		return formatCount(int(left.Minutes())+1, "minute")
	}
}

func formatCount(n int, unit string) string {
	s := strconv.Itoa(n) + " " + unit
	if n != 1 {
		s += "s"
	}
	return s + " left"
}
