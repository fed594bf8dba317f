package models

// Category is one entry of the fixed subscription category enum. Color and
// icon are display configuration, never persisted per user.
type Category struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// DefaultCategory is assigned when a subscription arrives without one.
const DefaultCategory = "Other"

// Categories is the closed category enum in display order.
var Categories = []Category{
	{Name: "Entertainment", Color: "#EF4444", Icon: "🎬"},
	{Name: "Productivity", Color: "#3B82F6", Icon: "💼"},
	{Name: "Health", Color: "#10B981", Icon: "❤️"},
	{Name: "Education", Color: "#8B5CF6", Icon: "📚"},
	{Name: "Utilities", Color: "#F59E0B", Icon: "⚡"},
	{Name: "Other", Color: "#6B7280", Icon: "📦"},
}

// CategoryByName looks up a category in the enum.
func CategoryByName(name string) (Category, bool) {
	for _, c := range Categories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// IsKnownCategory reports whether name is part of the category enum.
func IsKnownCategory(name string) bool {
	_, ok := CategoryByName(name)
	return ok
}
