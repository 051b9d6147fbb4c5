// Package stages defines the themed prompt tiers a user unlocks by generating
// images, plus the per-session progress that gates them.
package stages

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Stage is one themed tier of example prompts. The catalog is defined at
// startup and never mutated.
type Stage struct {
	ID                int      `json:"id"`
	Title             string   `json:"title"`
	Theme             string   `json:"theme"`
	Description       string   `json:"description"`
	UnlockRequirement int      `json:"unlock_requirement"`
	ExamplePrompts    []string `json:"example_prompts"`
}

// Catalog lists every stage in unlock order.
var Catalog = []Stage{
	{
		ID:                1,
		Title:             "Neon Nights",
		Theme:             "cyberpunk neon-lit cityscapes",
		Description:       "Create vibrant cyberpunk scenes with neon lights and futuristic aesthetics",
		UnlockRequirement: 0,
		ExamplePrompts: []string{
			"cyberpunk city with neon cats",
			"retro arcade with glowing signs",
			"neon-lit alleyway at night",
		},
	},
	{
		ID:                2,
		Title:             "Urban Exploration",
		Theme:             "dark urban environments",
		Description:       "Explore gritty city streets and shadowy alleyways",
		UnlockRequirement: 3,
		ExamplePrompts: []string{
			"dark alley with mysterious shadows",
			"abandoned city street at night",
			"urban cats in a rainy environment",
		},
	},
	{
		ID:                3,
		Title:             "Mystical Forest",
		Theme:             "fantasy forest with magical elements",
		Description:       "Journey into enchanted forests filled with wonder",
		UnlockRequirement: 6,
		ExamplePrompts: []string{
			"magical forest with glowing mushrooms",
			"wizard cats in an enchanted forest",
			"fairy tale woodland scene",
		},
	},
	{
		ID:                4,
		Title:             "Ancient Ruins",
		Theme:             "historical architecture and ancient civilizations",
		Description:       "Discover the mysteries of lost civilizations",
		UnlockRequirement: 9,
		ExamplePrompts: []string{
			"ancient temple with golden light",
			"explorer cats in mysterious ruins",
			"archaeological discovery scene",
		},
	},
}

// ByID looks a stage up in the catalog.
func ByID(id int) (Stage, bool) {
	for _, s := range Catalog {
		if s.ID == id {
			return s, true
		}
	}
	return Stage{}, false
}

// UnlockedIDs returns the ids of every stage whose threshold the given image
// count has reached.
func UnlockedIDs(imagesGenerated int) []int {
	var ids []int
	for _, s := range Catalog {
		if imagesGenerated >= s.UnlockRequirement {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

// EnhancePrompt appends the stage theme to a base prompt. Unknown stage ids
// leave the prompt untouched.
func EnhancePrompt(base string, stageID int) string {
	stage, ok := ByID(stageID)
	if !ok {
		return base
	}
	return fmt.Sprintf("%s in the style of %s", base, stage.Theme)
}

// DisplayTheme renders a stage theme in title case for the index page.
func DisplayTheme(theme string) string {
	return cases.Title(language.English).String(strings.TrimSpace(theme))
}

// Progress tracks one session's cumulative generations. ImagesGenerated never
// decreases; CurrentStage advances at most one stage per recorded image.
type Progress struct {
	ImagesGenerated int `json:"images_generated"`
	CurrentStage    int `json:"current_stage"`
}

// NewProgress starts a session at the first stage with nothing generated.
func NewProgress() *Progress {
	return &Progress{ImagesGenerated: 0, CurrentStage: 1}
}

// Record counts one successful generation and reports whether it unlocked a
// new stage. A single call advances CurrentStage by at most one stage even if
// the new total clears several thresholds; callers invoke Record once per
// successful image, so multi-threshold batches still unlock every stage one
// image at a time.
func (p *Progress) Record() bool {
	p.ImagesGenerated++
	for _, s := range Catalog {
		if p.ImagesGenerated >= s.UnlockRequirement && s.ID > p.CurrentStage {
			p.CurrentStage = s.ID
			return true
		}
	}
	return false
}
