package domain

import (
	"testing"
	"time"
)

func TestCoupon_Exhausted(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		used  int
		want  bool
	}{
		{"unlimited never exhausts", 0, 1000, false},
		{"below limit", 5, 4, false},
		{"at limit", 5, 5, true},
		{"over limit", 5, 6, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Coupon{UsageLimit: tt.limit, UsedCount: tt.used}
			if got := c.Exhausted(); got != tt.want {
				t.Errorf("Exhausted() = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestCoupon_WithinWindow(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC)
	c := &Coupon{StartDate: start, EndDate: end}

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"before start", start.Add(-time.Second), false},
		{"at start", start, true},
		{"inside", start.AddDate(0, 0, 15), true},
		{"at end", end, true},
		{"after end", end.Add(time.Second), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.WithinWindow(tt.at); got != tt.want {
				t.Errorf("WithinWindow(%v) = %v; want %v", tt.at, got, tt.want)
			}
		})
	}
}

func TestValidDiscountType(t *testing.T) {
	if !ValidDiscountType(DiscountPercentage) || !ValidDiscountType(DiscountFixed) {
		t.Error("known discount types should be accepted")
	}
	if ValidDiscountType("amount") || ValidDiscountType("") {
		t.Error("unknown discount types should be rejected")
	}
}
