package tracker

// StatusLevel is one entry of the canonical status vocabulary.
type StatusLevel struct {
	// Name is the status value as it appears in the new_status column.
	Name string `json:"name"`
	// Color is the display color used for the status.
	Color string `json:"color"`
}

// defaultStatusLevels is ordered from most to least advanced.
var defaultStatusLevels = []StatusLevel{
	{Name: "Launched", Color: "#1b7837"},
	{Name: "Pilot", Color: "#5aae61"},
	{Name: "Development", Color: "#a6dba0"},
	{Name: "Research", Color: "#c2a5cf"},
	{Name: "Inactive", Color: "#9970ab"},
	{Name: "Cancelled", Color: "#762a83"},
}

// DefaultStatusLevels returns a copy of the built-in status vocabulary.
func DefaultStatusLevels() []StatusLevel {
	return append([]StatusLevel(nil), defaultStatusLevels...)
}

// StatusNames returns the names of levels in order.
func StatusNames(levels []StatusLevel) []string {
	names := make([]string, len(levels))
	for i, l := range levels {
		names[i] = l.Name
	}

	return names
}
