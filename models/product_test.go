package models

import "testing"

func TestRecalculateDerivedQuantities(t *testing.T) {
	p := Product{
		ProductType: KindAgricultural,
		TotalWeight: 100,
		UnitWeight:  3,
	}
	p.RecalculateDerived()

	if p.TotalQuantity != 33 {
		t.Errorf("total quantity = %d, want 33", p.TotalQuantity)
	}
	if p.StockQuantity != 0 {
		t.Errorf("derivation must not touch an explicit stock of 0, got %d", p.StockQuantity)
	}
}

func TestNewProductDefaultsStockToTotal(t *testing.T) {
	p := Product{
		ProductType: KindAgricultural,
		TotalWeight: 100,
		UnitWeight:  3,
	}
	// gorm runs BeforeSave then BeforeCreate on insert.
	p.RecalculateDerived()
	if err := p.BeforeCreate(nil); err != nil {
		t.Fatal(err)
	}

	if p.StockQuantity != 33 {
		t.Errorf("new product stock = %d, want the full total 33", p.StockQuantity)
	}
}

func TestRecalculateDerivedKeepsZeroStock(t *testing.T) {
	p := Product{
		ProductType:   KindAgricultural,
		TotalWeight:   100,
		UnitWeight:    5,
		StockQuantity: 0,
	}
	p.RecalculateDerived()
	if p.StockQuantity != 0 {
		t.Errorf("sold-out stock must survive a save, got %d", p.StockQuantity)
	}
}

func TestRecalculateDerivedClampsQuantityToOne(t *testing.T) {
	p := Product{
		ProductType: KindAgricultural,
		TotalWeight: 50,
		UnitWeight:  80,
	}
	p.RecalculateDerived()

	if p.TotalQuantity != 1 {
		t.Errorf("total quantity = %d, want 1 when the unit weight exceeds the total", p.TotalQuantity)
	}
}

func TestRecalculateDerivedStockBounds(t *testing.T) {
	p := Product{
		ProductType:   KindAgricultural,
		TotalWeight:   100,
		UnitWeight:    5,
		StockQuantity: 500,
	}
	p.RecalculateDerived()
	if p.StockQuantity != 20 {
		t.Errorf("stock = %d, want clamp to total quantity 20", p.StockQuantity)
	}

	p.StockQuantity = -4
	p.RecalculateDerived()
	if p.StockQuantity != 0 {
		t.Errorf("stock = %d, want clamp to 0", p.StockQuantity)
	}
}

func TestRecalculateDerivedDiscount(t *testing.T) {
	promo := 12000.0
	p := Product{
		ProductType:        KindEquipment,
		RegularPrice:       15000,
		IsPromotionEnabled: true,
		PromoPrice:         &promo,
	}
	p.RecalculateDerived()
	if p.DiscountPercentage == nil || *p.DiscountPercentage != 20 {
		t.Fatalf("discount = %v, want 20", p.DiscountPercentage)
	}

	p.IsPromotionEnabled = false
	p.RecalculateDerived()
	if p.DiscountPercentage != nil {
		t.Errorf("discount should be cleared when the promotion is disabled, got %d", *p.DiscountPercentage)
	}
}

func TestRecalculateDerivedSkipsNonAgricultural(t *testing.T) {
	p := Product{
		ProductType: KindService,
		TotalWeight: 100,
		UnitWeight:  5,
	}
	p.RecalculateDerived()
	if p.TotalQuantity != 0 {
		t.Errorf("services have no derived quantities, got %d", p.TotalQuantity)
	}
}
