package cuisine

// Aliases maps slugged variations to canonical cuisine names.
var Aliases = map[string]string{
	// Dish names that imply a cuisine
	"sushi":      "Japanese",
	"ramen":      "Japanese",
	"izakaya":    "Japanese",
	"pizza":      "Italian",
	"pizzeria":   "Italian",
	"trattoria":  "Italian",
	"pasta":      "Italian",
	"taqueria":   "Mexican",
	"tacos":      "Mexican",
	"dim-sum":    "Chinese",
	"szechuan":   "Chinese",
	"sichuan":    "Chinese",
	"cantonese":  "Chinese",
	"pho":        "Vietnamese",
	"banh-mi":    "Vietnamese",
	"kbbq":       "Korean",
	"korean-bbq": "Korean",
	"falafel":    "Middle Eastern",
	"shawarma":   "Middle Eastern",
	"mezze":      "Middle Eastern",
	"tapas":      "Spanish",
	"bistro":     "French",
	"brasserie":  "French",
	"curry":      "Indian",
	"tandoori":   "Indian",

	// Spelling and formatting variations
	"italian-food":   "Italian",
	"bbq":            "Barbecue",
	"bar-b-q":        "Barbecue",
	"barbeque":       "Barbecue",
	"tex-mex":        "Mexican",
	"middle-eastern": "Middle Eastern",
	"mideast":        "Middle Eastern",
	"levantine":      "Middle Eastern",
	"american-new":   "American",
	"new-american":   "American",
	"burgers":        "American",
	"diner":          "American",
	"steakhouse":     "Steakhouse",
	"steak":          "Steakhouse",
	"seafood":        "Seafood",
	"fish":           "Seafood",
	"vegan":          "Vegetarian",
	"plant-based":    "Vegetarian",
}
