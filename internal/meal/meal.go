package meal

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Metric is a non-negative nutrition or cost figure that may be unknown.
// The model's free-text output does not guarantee every number, so "unknown"
// is a first-class value rather than a zero.
type Metric struct {
	Value float64
	Known bool
}

// KnownMetric returns a Metric carrying v.
func KnownMetric(v float64) Metric {
	return Metric{Value: v, Known: true}
}

func (m Metric) String() string {
	if !m.Known {
		return "unknown"
	}
	return strconv.FormatFloat(m.Value, 'f', -1, 64)
}

// MarshalJSON renders the numeric value, or the string "unknown".
func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Known {
		return json.Marshal("unknown")
	}
	return json.Marshal(m.Value)
}

// UnmarshalJSON accepts a number or the string "unknown".
func (m *Metric) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*m = Metric{Value: v, Known: true}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "unknown" || s == "" {
			*m = Metric{}
			return nil
		}
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			*m = Metric{Value: v, Known: true}
			return nil
		}
	}
	return fmt.Errorf("metric must be a number or \"unknown\", got %s", string(data))
}

// Ingredient is one entry of the ingredient list. Quantity and Unit are empty
// when the model's line did not follow the "item: amount unit" shape.
type Ingredient struct {
	Item     string `json:"item"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}

// Nutrition holds the five metrics the composer asks the model to emit.
type Nutrition struct {
	Calories Metric `json:"calories"`
	ProteinG Metric `json:"protein_g"`
	CarbsG   Metric `json:"carbs_g"`
	FatG     Metric `json:"fat_g"`
	FiberG   Metric `json:"fiber_g"`
}

// Meal is one parsed meal recommendation.
type Meal struct {
	RecipeName              string       `json:"recipe_name"`
	Ingredients             []Ingredient `json:"ingredients"`
	Instructions            []string     `json:"instructions"`
	Nutrition               Nutrition    `json:"nutrition"`
	EstimatedCostPerServing Metric       `json:"estimated_cost_per_serving"`
}
