package catalog

import (
	"testing"

	"digicoop-backend/models"
)

func TestGetKnownKinds(t *testing.T) {
	svc := Get(models.KindService)
	if svc == nil || svc.Type != models.KindService {
		t.Fatal("service kind should have a catalog entry")
	}
	eq := Get(models.KindEquipment)
	if eq == nil || eq.Type != models.KindEquipment {
		t.Fatal("equipment kind should have a catalog entry")
	}
	if Get(models.KindAgricultural) != nil {
		t.Error("agricultural products use columns, not the catalog")
	}
	if Get("bogus") != nil {
		t.Error("unknown kind should return nil")
	}
}

func TestRequiredFields(t *testing.T) {
	cases := []struct {
		kind string
		want []string
	}{
		{models.KindService, []string{"service_category", "service_type", "service_area"}},
		{models.KindEquipment, []string{"equipment_category", "condition"}},
		{models.KindAgricultural, nil},
	}

	for _, tc := range cases {
		got := RequiredFields(tc.kind)
		if len(got) != len(tc.want) {
			t.Errorf("RequiredFields(%s) = %v, want %v", tc.kind, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("RequiredFields(%s)[%d] = %s, want %s", tc.kind, i, got[i], tc.want[i])
			}
		}
	}
}

func TestProductTypesExposePriceUnits(t *testing.T) {
	for _, cfg := range ProductTypes() {
		if len(cfg.PriceUnitOptions) == 0 {
			t.Errorf("%s has no price unit options", cfg.Type)
		}
		if cfg.Label == "" {
			t.Errorf("%s has no label", cfg.Type)
		}
	}
}
