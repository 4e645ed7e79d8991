package keywords

// CategoryDisplay carries presentation metadata for a category.
type CategoryDisplay struct {
	Name string
	Icon string
}

// categoryDisplay maps category identifiers to display metadata.
// Unknown categories fall back to the raw identifier with a folder icon.
var categoryDisplay = map[string]CategoryDisplay{
	"language":     {Name: "Languages", Icon: "💻"},
	"framework":    {Name: "Frameworks", Icon: "⚡"},
	"database":     {Name: "Databases", Icon: "🗄️"},
	"api":          {Name: "APIs & Protocols", Icon: "🔌"},
	"architecture": {Name: "Architecture", Icon: "🏗️"},
	"tool":         {Name: "Tools", Icon: "🔧"},
	"concept":      {Name: "Concepts", Icon: "💡"},
	"cloud":        {Name: "Cloud & Deploy", Icon: "☁️"},
	"testing":      {Name: "Testing", Icon: "🧪"},
	"mobile":       {Name: "Mobile", Icon: "📱"},
	"devops":       {Name: "DevOps", Icon: "🚀"},
	"security":     {Name: "Security", Icon: "🔒"},
}

// categoryOrder fixes iteration order for AllCategories.
var categoryOrder = []string{
	"language", "framework", "database", "api", "architecture", "tool",
	"concept", "cloud", "testing", "mobile", "devops", "security",
}

// Display returns presentation metadata for a category.
func Display(category string) CategoryDisplay {
	if d, ok := categoryDisplay[category]; ok {
		return d
	}
	return CategoryDisplay{Name: category, Icon: "📂"}
}

// AllCategories returns every known category identifier in display order.
func AllCategories() []string {
	out := make([]string, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// validCategory reports whether the identifier is a known category.
func validCategory(category string) bool {
	_, ok := categoryDisplay[category]
	return ok
}
