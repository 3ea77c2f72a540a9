package devgateway

import (
	_ "embed"
	"encoding/json"

	"github.com/kpfoody/foody/internal/client/models"
)

//go:embed data.json
var seedData []byte

type seedMenuItem struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	ImageURL       string   `json:"image_url"`
	Price          float64  `json:"price"`
	Rating         float64  `json:"rating"`
	Calories       int      `json:"calories"`
	Protein        int      `json:"protein"`
	CategoryID     string   `json:"categoryId"`
	Customizations []string `json:"customizations"`
}

type seedFile struct {
	Categories     []models.Category      `json:"categories"`
	Customizations []models.Customization `json:"customizations"`
	Menu           []seedMenuItem         `json:"menu"`
}

// seedCatalog decodes the embedded catalog snapshot and resolves the menu
// items' customization references into full objects.
func seedCatalog() ([]models.Category, []models.MenuItem) {
	var f seedFile
	if err := json.Unmarshal(seedData, &f); err != nil {
		panic(err)
	}

	byID := make(map[string]models.Customization, len(f.Customizations))
	for _, c := range f.Customizations {
		byID[c.ID] = c
	}

	menu := make([]models.MenuItem, 0, len(f.Menu))
	for _, m := range f.Menu {
		item := models.MenuItem{
			ID:          m.ID,
			Name:        m.Name,
			Description: m.Description,
			ImageURL:    m.ImageURL,
			Price:       m.Price,
			Rating:      m.Rating,
			Calories:    m.Calories,
			Protein:     m.Protein,
			CategoryID:  m.CategoryID,
		}
		for _, id := range m.Customizations {
			if c, ok := byID[id]; ok {
				item.Customizations = append(item.Customizations, c)
			}
		}
		menu = append(menu, item)
	}
	return f.Categories, menu
}
