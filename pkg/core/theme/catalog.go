package theme

// Template is one entry of the background catalog.
type Template struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	From string `json:"from"`
	To   string `json:"to"`
	Dark bool   `json:"dark"`
}

// The first entry is the fallback for unknown ids.
var templates = []Template{
	{ID: "designer", Name: "Designer", From: "#FAF5FF", To: "#FDF2F8"},
	{ID: "developer", Name: "Developer", From: "#111827", To: "#1F2937", Dark: true},
	{ID: "doctor", Name: "Doctor", From: "#F0FDF4", To: "#EFF6FF"},
	{ID: "trainer", Name: "Trainer", From: "#FFF7ED", To: "#FEF2F2"},
	{ID: "business", Name: "Business", From: "#F9FAFB", To: "#EFF6FF"},
	{ID: "artist", Name: "Artist", From: "#FAF5FF", To: "#FDF2F8"},
	{ID: "photographer", Name: "Photographer", From: "#EFF6FF", To: "#EEF2FF"},
	{ID: "writer", Name: "Writer", From: "#FEFCE8", To: "#FFF7ED"},
	{ID: "chef", Name: "Chef", From: "#FEF2F2", To: "#FFF7ED"},
	{ID: "musician", Name: "Musician", From: "#FAF5FF", To: "#EFF6FF"},
	{ID: "teacher", Name: "Teacher", From: "#F0FDF4", To: "#F0FDFA"},
	{ID: "influencer", Name: "Influencer", From: "#FDF2F8", To: "#FAF5FF"},
}

type tier struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

var fontSizes = []tier{
	{ID: "small", Value: "0.875rem"},
	{ID: "medium", Value: "1rem"},
	{ID: "large", Value: "1.125rem"},
	{ID: "xl", Value: "1.25rem"},
}

var pageWidths = []tier{
	{ID: "narrow", Value: "24rem"},
	{ID: "normal", Value: "28rem"},
	{ID: "wide", Value: "32rem"},
	{ID: "full", Value: "56rem"},
}

// ColorPreset pairs a primary and background color offered in the editor.
type ColorPreset struct {
	Name       string `json:"name"`
	Primary    string `json:"primary"`
	Background string `json:"background"`
}

var colorPresets = []ColorPreset{
	{Name: "Indigo", Primary: "#6366F1", Background: "#F8FAFC"},
	{Name: "Violet", Primary: "#8B5CF6", Background: "#FAF5FF"},
	{Name: "Blue", Primary: "#3B82F6", Background: "#EFF6FF"},
	{Name: "Green", Primary: "#10B981", Background: "#ECFDF5"},
	{Name: "Pink", Primary: "#EC4899", Background: "#FDF2F8"},
	{Name: "Orange", Primary: "#F59E0B", Background: "#FFFBEB"},
	{Name: "Red", Primary: "#EF4444", Background: "#FEF2F2"},
	{Name: "Yellow", Primary: "#EAB308", Background: "#FEFCE8"},
	{Name: "Cyan", Primary: "#06B6D4", Background: "#F0F9FF"},
	{Name: "Gray", Primary: "#6B7280", Background: "#F9FAFB"},
	{Name: "Gold", Primary: "#D97706", Background: "#FFFBEB"},
	{Name: "Black", Primary: "#1F2937", Background: "#F3F4F6"},
}

var fontOptions = []string{
	"Inter, sans-serif",
	"Poppins, sans-serif",
	"Roboto, sans-serif",
	"Open Sans, sans-serif",
	"Cairo, sans-serif",
	"Tajawal, sans-serif",
}

// Catalog is everything the editor needs to offer theme choices.
type Catalog struct {
	Templates    []Template    `json:"templates"`
	FontSizes    []string      `json:"font_sizes"`
	PageWidths   []string      `json:"page_widths"`
	ColorPresets []ColorPreset `json:"color_presets"`
	Fonts        []string      `json:"fonts"`
}

func GetCatalog() Catalog {
	c := Catalog{
		Templates:    append([]Template(nil), templates...),
		ColorPresets: append([]ColorPreset(nil), colorPresets...),
		Fonts:        append([]string(nil), fontOptions...),
	}
	for _, t := range fontSizes {
		c.FontSizes = append(c.FontSizes, t.ID)
	}
	for _, t := range pageWidths {
		c.PageWidths = append(c.PageWidths, t.ID)
	}
	return c
}

func IsTemplate(id string) bool {
	_, ok := lookupTemplate(id)
	return ok
}

func IsFontSize(id string) bool {
	_, ok := lookupTier(fontSizes, id)
	return ok
}

func IsPageWidth(id string) bool {
	_, ok := lookupTier(pageWidths, id)
	return ok
}

func lookupTemplate(id string) (Template, bool) {
	for _, t := range templates {
		if t.ID == id {
			return t, true
		}
	}
	return templates[0], false
}

func lookupTier(tiers []tier, id string) (string, bool) {
	for _, t := range tiers {
		if t.ID == id {
			return t.Value, true
		}
	}
	return "", false
}
