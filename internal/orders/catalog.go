package orders

// OrderType is one entry of the fixed design-services catalog.
type OrderType struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Category string `json:"category"`
}

var Catalog = map[string]OrderType{
	"basic_livery":   {Key: "basic_livery", Name: "Basic Livery", Price: "30 Robux", Category: "Liveries"},
	"premium_livery": {Key: "premium_livery", Name: "Premium Livery", Price: "60 Robux", Category: "Liveries"},
	"basic_avatar":   {Key: "basic_avatar", Name: "Basic Avatar", Price: "30 Robux", Category: "Avatars"},
	"premium_avatar": {Key: "premium_avatar", Name: "Premium Avatar", Price: "60 Robux", Category: "Avatars"},
	"standard_els":   {Key: "standard_els", Name: "Standard ELS", Price: "50 Robux", Category: "ELS"},
}

// CatalogKeys fixes the presentation order of the catalog.
var CatalogKeys = []string{
	"basic_livery",
	"premium_livery",
	"basic_avatar",
	"premium_avatar",
	"standard_els",
}

// IntakeQuestions is the fixed elicitation sequence posted into every new
// order channel. The payment question embeds the order price via Sprintf.
var IntakeQuestions = []string{
	"**Question 1 of 5:** Please describe exactly what you want designed. Be as specific as possible.",
	"**Question 2 of 5:** Do you have any logos, images, colors, or examples you want us to use? Please share them here.",
	"**Question 3 of 5:** Any specific dimensions, formats, or technical requirements?",
	"**Question 4 of 5:** When do you need this completed? (Standard delivery is 3-7 days)",
	"**Question 5 of 5:** Please confirm you understand payment of **%s** is required before work begins.",
}
