package enrichment

import (
	"fmt"
	"strings"
)

// ItemView is the narrow slice of an inventory item the enrichment
// backend needs. Services build it from their entities so prompt
// construction never depends on the persistence-layer shape.
type ItemView struct {
	Name     string
	Quantity float64
	Unit     string
	Notes    string
}

func nutritionPrompt(item ItemView) string {
	quantityStr := fmt.Sprintf("%g", item.Quantity)
	if item.Unit != "" {
		quantityStr = fmt.Sprintf("%g %s", item.Quantity, item.Unit)
	}

	contextStr := ""
	if item.Notes != "" {
		contextStr = fmt.Sprintf("Context/Notes: %s\n", item.Notes)
	}

	return fmt.Sprintf(
		"Provide nutritional information for %s of %s.\n%s\n"+
			"Return ONLY a JSON object with the following keys:\n"+
			"- calories (integer)\n"+
			"- protein (float, in grams)\n"+
			"- carbs (float, in grams)\n"+
			"- fat (float, in grams)\n"+
			"- sugar (float, in grams)\n"+
			"- vitamins (list of strings, e.g. [\"Vitamin C\", \"Calcium\"])\n"+
			"Do not include markdown formatting or explanations, just the raw JSON.",
		quantityStr, item.Name, contextStr,
	)
}

const labelScanPrompt = "Analyze this nutrition label. Extract the following per serving (or per container if specified):\n" +
	"- calories (integer)\n" +
	"- protein (float, in grams)\n" +
	"- carbs (float, in grams)\n" +
	"- fat (float, in grams)\n" +
	"Return ONLY a JSON object with these keys. No markdown."

func fridgeHealthPrompt(items []ItemView) string {
	return fmt.Sprintf(
		"You are a nutritionist. Analyze the following fridge inventory:\n%s\n\n"+
			"Provide a health analysis in JSON format with:\n"+
			"- score (integer 1-10, where 10 is healthiest)\n"+
			"- analysis (string, a paragraph explaining the score, mentioning specific good/bad items)\n"+
			"- recommendations (list of strings, specific suggestions to improve balance)\n"+
			"Return ONLY valid JSON, with no markdown formatting or surrounding prose.",
		inventoryLines(items),
	)
}

func recipesPrompt(itemNames []string) string {
	return fmt.Sprintf(
		"You are a chef. Propose 5 recipes that can be made primarily with these ingredients:\n%s\n\n"+
			"CRITICAL: Prioritize recipes that require FEW additional ingredients. "+
			"If possible, suggest recipes that use ONLY these ingredients.\n\n"+
			"Return a JSON array of objects with these keys:\n"+
			"- title (string)\n"+
			"- difficulty (string: Easy, Medium, Hard)\n"+
			"- time (string, e.g. \"30 mins\")\n"+
			"- instructions (list of strings)\n"+
			"- matching_ingredients (list of strings, ingredients the user HAS from the list)\n"+
			"- missing_ingredients (list of strings, ingredients the user NEEDS to buy)\n"+
			"Return ONLY valid JSON, with no markdown formatting or surrounding prose.",
		nameLines(itemNames),
	)
}

func goalAdvicePrompt(itemNames []string, goal string) string {
	return fmt.Sprintf(
		"You are an expert Dietitian and Health Coach.\n"+
			"The user has this goal: %q.\n"+
			"The user has these items in their fridge:\n%s\n\n"+
			"Analyze how their current stock aligns with their goal.\n\n"+
			"Return a JSON object with:\n"+
			"- score (integer 1-10, alignment score)\n"+
			"- assessment (string, 2 sentences analyzing their stock vs goal)\n"+
			"- eat_list (list of strings, items from their fridge that ARE GOOD for this goal)\n"+
			"- avoid_list (list of strings, items from their fridge that are NOT IDEAL for this goal)\n"+
			"- shopping_list (list of strings, top 3-5 items to buy to support this goal)\n"+
			"Return ONLY valid JSON, with no markdown formatting or surrounding prose.",
		goal, nameLines(itemNames),
	)
}

func inventoryLines(items []ItemView) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("- %s: %g %s (Notes: %s)", item.Name, item.Quantity, item.Unit, item.Notes))
	}
	return strings.Join(lines, "\n")
}

func nameLines(names []string) string {
	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, "- "+name)
	}
	return strings.Join(lines, "\n")
}
