package filter

import (
	"testing"

	"github.com/rafaatrevisan/PinkdealTelegramBot/internal/config"
	"github.com/rafaatrevisan/PinkdealTelegramBot/internal/offer"
)

func testConfig() config.Filter {
	return config.Filter{
		PriceFloor:   20.00,
		PremiumPrice: 50.00,
		MidBandLow:   20.00,
		MidBandHigh:  60.00,
		Strict: config.FilterProfile{
			MidRatingMin: 4.8,
			MidSalesMin:  300,
			RatingMin:    4.5,
			SalesMin:     100,
		},
		Relaxed: config.FilterProfile{
			MidRatingMin: 4.5,
			MidSalesMin:  100,
			RatingMin:    4.0,
			SalesMin:     50,
		},
	}
}

func testBlacklist() []string {
	return []string{"capa", "cabo usb", "parafuso", "adesivo", "pilha"}
}

func TestFilter_Accept(t *testing.T) {
	f := New(testConfig(), testBlacklist())

	tests := []struct {
		name   string
		offer  offer.Offer
		strict bool
		want   bool
	}{
		{
			name:   "below price floor always rejected",
			offer:  offer.Offer{ProductName: "Fone Premium", PriceMin: 19.99, Sales: 10000, RatingStar: 5.0},
			strict: true,
			want:   false,
		},
		{
			name:   "below price floor rejected even relaxed",
			offer:  offer.Offer{ProductName: "Fone Premium", PriceMin: 19.99, Sales: 10000, RatingStar: 5.0},
			strict: false,
			want:   false,
		},
		{
			name:   "price floor boundary passes floor rule",
			offer:  offer.Offer{ProductName: "Fone Bluetooth", PriceMin: 20.00, Sales: 500, RatingStar: 4.9},
			strict: true,
			want:   true,
		},
		{
			name:   "cheap blacklisted accessory rejected",
			offer:  offer.Offer{ProductName: "Capa iPhone", PriceMin: 49.99, Sales: 5000, RatingStar: 5.0},
			strict: true,
			want:   false,
		},
		{
			name:   "expensive item with blacklisted term not auto-rejected",
			offer:  offer.Offer{ProductName: "Capa iPhone", PriceMin: 50.01, Sales: 5000, RatingStar: 5.0},
			strict: true,
			want:   true,
		},
		{
			name:   "blacklist match is case-insensitive",
			offer:  offer.Offer{ProductName: "KIT PARAFUSO universal", PriceMin: 25.00, Sales: 5000, RatingStar: 5.0},
			strict: true,
			want:   false,
		},
		{
			name:   "mid band needs strict social proof",
			offer:  offer.Offer{ProductName: "Garrafa Térmica", PriceMin: 45.00, Sales: 299, RatingStar: 4.9},
			strict: true,
			want:   false, // продаж меньше строгого порога 300
		},
		{
			name:   "mid band strict accepted at thresholds",
			offer:  offer.Offer{ProductName: "Garrafa Térmica", PriceMin: 45.00, Sales: 300, RatingStar: 4.8},
			strict: true,
			want:   true,
		},
		{
			name:   "mid band upper boundary still mid band in strict",
			offer:  offer.Offer{ProductName: "Mouse Gamer", PriceMin: 60.00, Sales: 299, RatingStar: 4.9},
			strict: true,
			want:   false,
		},
		{
			name:   "above mid band uses outer thresholds",
			offer:  offer.Offer{ProductName: "Mouse Gamer", PriceMin: 60.01, Sales: 150, RatingStar: 4.6},
			strict: true,
			want:   true,
		},
		{
			name:   "mid band relaxed accepts lower proof",
			offer:  offer.Offer{ProductName: "Garrafa Térmica", PriceMin: 45.00, Sales: 120, RatingStar: 4.6},
			strict: false,
			want:   true,
		},
		{
			name:   "relaxed still rejects weak rating",
			offer:  offer.Offer{ProductName: "Garrafa Térmica", PriceMin: 45.00, Sales: 120, RatingStar: 4.4},
			strict: false,
			want:   false,
		},
		{
			name:   "expensive item relaxed",
			offer:  offer.Offer{ProductName: "Cadeira Ergonômica", PriceMin: 350.00, Sales: 60, RatingStar: 4.2},
			strict: false,
			want:   true,
		},
		{
			name:   "parse failure shape: zero fields rejected",
			offer:  offer.Offer{ProductName: "Produto Quebrado"},
			strict: false,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Accept(tt.offer, tt.strict); got != tt.want {
				t.Errorf("Accept(strict=%v) = %v, want %v", tt.strict, got, tt.want)
			}
		})
	}
}

// Строгий и щадящий режимы независимы: ни один не является
// подмножеством другого, проверяем обе стороны границы отдельно.
func TestFilter_StrictRelaxedIndependent(t *testing.T) {
	f := New(testConfig(), nil)

	// Проходит relaxed, но не strict.
	o := offer.Offer{ProductName: "Luminária LED", PriceMin: 30.00, Sales: 150, RatingStar: 4.6}
	if f.Accept(o, true) {
		t.Error("strict should reject mid-band offer with 150 sales")
	}
	if !f.Accept(o, false) {
		t.Error("relaxed should accept mid-band offer with 150 sales")
	}
}
