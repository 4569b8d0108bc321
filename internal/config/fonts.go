package config

import "github.com/akyairhashvil/notifit/internal/models"

// Font IDs of the two dashboard themes.
const (
	FontStructured = "Asta Sans OTF"
	FontAsteon     = "Noto Sans KR"
)

// DefaultFonts is the catalog every notification must fit in, in display order.
func DefaultFonts() []models.Font {
	return []models.Font{
		{ID: FontStructured, DisplayName: "Asta Sans OTF (Structured)"},
		{ID: FontAsteon, DisplayName: "Noto Sans KR (Asteon)"},
	}
}
