package meal

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ParseError reports that the model response lacked one or more mandatory
// sections. Optional sections (nutrition, cost) never trigger it.
type ParseError struct {
	Missing []string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("model response missing mandatory sections: %s", strings.Join(e.Missing, ", "))
}

// Section labels the composer instructs the model to emit. The parser keys on
// these, tolerating case and markdown punctuation drift.
const (
	sectionName         = "recipe name"
	sectionIngredients  = "ingredients"
	sectionInstructions = "instructions"
	sectionNutrition    = "nutrition"
	sectionCost         = "estimated cost per serving"
)

var (
	headerWithRest  = regexp.MustCompile(`^[#*\-\s]*([A-Za-z][A-Za-z ]*?)[*\s]*:\s*(.*)$`)
	bareHeader      = regexp.MustCompile(`^[#*\-\s]*([A-Za-z][A-Za-z ]*?)[*\s]*$`)
	numberedStep    = regexp.MustCompile(`^\d+[.)]\s*`)
	bulletPrefix    = regexp.MustCompile(`^[-•*]\s*`)
	firstNumber     = regexp.MustCompile(`-?\d+(?:\.\d+)?`)
	currencyAmount  = regexp.MustCompile(`[$€£]\s*(\d+(?:\.\d+)?)`)
	markdownClutter = strings.NewReplacer("**", "", "*", "")
)

var headerAliases = map[string]string{
	"recipe name":                sectionName,
	"recipe":                     sectionName,
	"ingredients":                sectionIngredients,
	"ingredient list":            sectionIngredients,
	"instructions":               sectionInstructions,
	"directions":                 sectionInstructions,
	"nutrition":                  sectionNutrition,
	"nutrition facts":            sectionNutrition,
	"nutrition information":      sectionNutrition,
	"estimated cost per serving": sectionCost,
	"cost per serving":           sectionCost,
	"estimated cost":             sectionCost,
}

// Parse extracts a structured Meal from the model's free-text reply.
//
// The scanner walks the reply line by line and switches sections on the
// header labels the prompt mandated. Extraction is best-effort everywhere
// except the three load-bearing fields: recipe name, at least one ingredient
// and at least one instruction. Missing nutrition or cost degrade to
// "unknown" values on an otherwise successful Meal.
func Parse(raw string) (*Meal, error) {
	m := &Meal{}
	section := ""
	currentStep := ""

	flushStep := func() {
		if s := strings.TrimSpace(currentStep); s != "" {
			m.Instructions = append(m.Instructions, s)
		}
		currentStep = ""
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)

		if name, rest, ok := matchHeader(line); ok {
			if section == sectionInstructions {
				flushStep()
			}
			section = name
			rest = strings.TrimSpace(markdownClutter.Replace(rest))
			switch section {
			case sectionName:
				if rest != "" {
					m.RecipeName = rest
				}
			case sectionCost:
				m.EstimatedCostPerServing = parseCost(rest)
			}
			continue
		}

		if line == "" {
			continue
		}

		switch section {
		case sectionName:
			// Header was on its own line; the name follows.
			if m.RecipeName == "" {
				m.RecipeName = strings.TrimSpace(markdownClutter.Replace(line))
			}
		case sectionIngredients:
			m.Ingredients = append(m.Ingredients, parseIngredientLine(line))
		case sectionInstructions:
			switch {
			case numberedStep.MatchString(line):
				flushStep()
				currentStep = numberedStep.ReplaceAllString(line, "")
			case bulletPrefix.MatchString(line):
				flushStep()
				currentStep = bulletPrefix.ReplaceAllString(line, "")
			case currentStep != "":
				// Continuation of the previous step.
				currentStep += " " + line
			default:
				currentStep = line
			}
		case sectionNutrition:
			applyNutritionLine(&m.Nutrition, line)
		case sectionCost:
			if !m.EstimatedCostPerServing.Known {
				m.EstimatedCostPerServing = parseCost(line)
			}
		}
	}
	flushStep()

	var missing []string
	if strings.TrimSpace(m.RecipeName) == "" {
		missing = append(missing, "recipe name")
	}
	if len(m.Ingredients) == 0 {
		missing = append(missing, "ingredients")
	}
	if len(m.Instructions) == 0 {
		missing = append(missing, "instructions")
	}
	if len(missing) > 0 {
		return nil, &ParseError{Missing: missing}
	}

	return m, nil
}

func matchHeader(line string) (section, rest string, ok bool) {
	if g := headerWithRest.FindStringSubmatch(line); g != nil {
		if s, known := headerAliases[strings.ToLower(strings.TrimSpace(g[1]))]; known {
			return s, g[2], true
		}
	}
	if g := bareHeader.FindStringSubmatch(line); g != nil {
		if s, known := headerAliases[strings.ToLower(strings.TrimSpace(g[1]))]; known {
			return s, "", true
		}
	}
	return "", "", false
}

// parseIngredientLine splits "item: amount unit" into its parts. Lines that
// do not follow that shape keep the whole text as the item; a partial entry
// beats rejecting the response.
func parseIngredientLine(line string) Ingredient {
	line = strings.TrimSpace(markdownClutter.Replace(bulletPrefix.ReplaceAllString(line, "")))

	item, rest, found := strings.Cut(line, ":")
	if !found {
		return Ingredient{Item: line}
	}

	item = strings.TrimSpace(item)
	fields := strings.Fields(rest)
	if item == "" || len(fields) == 0 {
		return Ingredient{Item: line}
	}

	return Ingredient{
		Item:     item,
		Quantity: fields[0],
		Unit:     strings.Join(fields[1:], " "),
	}
}

func applyNutritionLine(n *Nutrition, line string) {
	label, rest, found := strings.Cut(markdownClutter.Replace(bulletPrefix.ReplaceAllString(line, "")), ":")
	if !found {
		return
	}
	metric := parseMetric(rest)
	switch {
	case containsWord(label, "calories"):
		n.Calories = metric
	case containsWord(label, "protein"):
		n.ProteinG = metric
	case containsWord(label, "carbs"), containsWord(label, "carbohydrates"):
		n.CarbsG = metric
	case containsWord(label, "fat"):
		n.FatG = metric
	case containsWord(label, "fiber"), containsWord(label, "fibre"):
		n.FiberG = metric
	}
}

func containsWord(label, word string) bool {
	return strings.Contains(strings.ToLower(label), word)
}

// parseMetric pulls the first number out of a nutrition value. Non-numeric or
// negative values degrade to unknown.
func parseMetric(raw string) Metric {
	match := firstNumber.FindString(raw)
	if match == "" {
		return Metric{}
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil || v < 0 {
		return Metric{}
	}
	return KnownMetric(v)
}

// parseCost extracts a currency amount such as "$3.50". A bare number is
// accepted as a fallback; anything else is unknown.
func parseCost(raw string) Metric {
	if g := currencyAmount.FindStringSubmatch(raw); g != nil {
		if v, err := strconv.ParseFloat(g[1], 64); err == nil {
			return KnownMetric(v)
		}
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil && v >= 0 {
		return KnownMetric(v)
	}
	return Metric{}
}
