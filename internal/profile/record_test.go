package profile

import "testing"

func TestNormalize_Defaults(t *testing.T) {
	rec := &Record{UserID: "u1"}
	rec.Normalize()

	if rec.PlanPreferences.Length != 5 {
		t.Errorf("Expected default length 5, got %d", rec.PlanPreferences.Length)
	}
	if rec.PlanPreferences.Variety != VarietyHigh {
		t.Errorf("Expected default variety high, got '%s'", rec.PlanPreferences.Variety)
	}
	if rec.PlanPreferences.BudgetLevel != BudgetModerate {
		t.Errorf("Expected default budget moderate, got '%s'", rec.PlanPreferences.BudgetLevel)
	}
}

func TestNormalize_ClampsLength(t *testing.T) {
	rec := &Record{PlanPreferences: PlanPreferences{Length: 12}}
	rec.Normalize()
	if rec.PlanPreferences.Length != 7 {
		t.Errorf("Expected length clamped to 7, got %d", rec.PlanPreferences.Length)
	}

	rec = &Record{PlanPreferences: PlanPreferences{Length: -1}}
	rec.Normalize()
	if rec.PlanPreferences.Length != 5 {
		t.Errorf("Expected length defaulted to 5, got %d", rec.PlanPreferences.Length)
	}
}

func TestNormalize_CleansTags(t *testing.T) {
	rec := &Record{
		DietaryRestrictions: []string{" vegetarian ", "", "  ", "gluten-free"},
	}
	rec.Normalize()

	if len(rec.DietaryRestrictions) != 2 {
		t.Fatalf("Expected 2 tags after cleaning, got %v", rec.DietaryRestrictions)
	}
	if rec.DietaryRestrictions[0] != "vegetarian" || rec.DietaryRestrictions[1] != "gluten-free" {
		t.Errorf("Expected trimmed, order-preserving tags, got %v", rec.DietaryRestrictions)
	}
}

func TestNormalize_InvalidEnumAndPrepTime(t *testing.T) {
	zero := 0
	rec := &Record{
		PlanPreferences: PlanPreferences{
			Variety:        Variety("extreme"),
			BudgetLevel:    BudgetLevel("luxury"),
			MaxPrepMinutes: &zero,
		},
	}
	rec.Normalize()

	if rec.PlanPreferences.Variety != VarietyHigh {
		t.Errorf("Expected unknown variety to default to high, got '%s'", rec.PlanPreferences.Variety)
	}
	if rec.PlanPreferences.BudgetLevel != BudgetModerate {
		t.Errorf("Expected unknown budget to default to moderate, got '%s'", rec.PlanPreferences.BudgetLevel)
	}
	if rec.PlanPreferences.MaxPrepMinutes != nil {
		t.Error("Expected non-positive max prep minutes to be cleared")
	}
}
