package storage

import (
	"fmt"

	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/logger"
)

// Seed inserts any default mood or tag whose name is not already present.
// It is safe to call on every start.
func Seed(p Provider) error {
	moods, err := p.SeedMoods(constants.DefaultMoods)
	if err != nil {
		return fmt.Errorf("failed to seed moods: %w", err)
	}
	tags, err := p.SeedTags(constants.DefaultTags)
	if err != nil {
		return fmt.Errorf("failed to seed tags: %w", err)
	}
	if moods > 0 || tags > 0 {
		logger.Info("Seeded default data", "moods", moods, "tags", tags)
	}
	return nil
}
