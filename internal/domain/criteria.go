package domain

// All disables the category or level filter.
const All = "All"

// Criteria is the user's current filter selection. The zero value is not the
// default; use DefaultCriteria.
type Criteria struct {
	Search   string `json:"search"`
	Category string `json:"category"`
	Location string `json:"location"`
	Level    string `json:"level"`
}

func DefaultCriteria() Criteria {
	return Criteria{Category: All, Level: All}
}

// IsDefault reports whether c selects every listing.
func (c Criteria) IsDefault() bool {
	return c.Search == "" && c.Category == All && c.Location == "" && c.Level == All
}

// Option is one entry of a select control.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

func DefaultCategories() []Option {
	return []Option{
		{Value: All, Label: "All"},
		{Value: "full-time", Label: "Full-Time"},
		{Value: "part-time", Label: "Part-Time"},
		{Value: "contract", Label: "Contract"},
		{Value: "freelance", Label: "Freelance"},
	}
}

func DefaultLevels() []Option {
	return []Option{
		{Value: All, Label: "All"},
		{Value: "Internship", Label: "Internship"},
		{Value: "Entry", Label: "Entry"},
		{Value: "Mid", Label: "Mid"},
		{Value: "Senior", Label: "Senior"},
		{Value: "Lead", Label: "Lead"},
	}
}
