package domain

// Theme holds the page accent colors
type Theme struct {
	Primary     string `json:"primary" validate:"required,rgbhex"`
	PrimaryDark string `json:"primaryDark" validate:"required,rgbhex"`
	Focus       string `json:"focus" validate:"required,rgbhex"`
}

// DefaultTheme returns the colors used when no theme is persisted
func DefaultTheme() Theme {
	return Theme{
		Primary:     "#2563eb",
		PrimaryDark: "#1d4ed8",
		Focus:       "#93c5fd",
	}
}
