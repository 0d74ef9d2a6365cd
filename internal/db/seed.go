package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm/clause"

	"github.com/turtlemeow87-design/tradscendence-site/internal/models"
)

// SeedCatalog inserts the launch instruments so a fresh environment has a
// browsable catalog. Upserts on slug, so restarts never duplicate rows and
// never clobber admin edits.
func SeedCatalog(c *Client, log *zap.Logger) error {
	instruments := []models.Instrument{
		{
			Slug:         "ArabicOud",
			Name:         "Oud",
			OriginPrefix: "the Arabic",
			Tagline:      "The ancestor of the lute, voice of the Levant.",
			DisplayOrder: 0,
			Featured:     true,
			PageReady:    true,
		},
		{
			Slug:         "PersianSantur",
			Name:         "Santur",
			OriginPrefix: "the Persian",
			Tagline:      "Seventy-two strings struck with featherweight mallets.",
			DisplayOrder: 1,
			PageReady:    true,
		},
		{
			Slug:         "IndianSitar",
			Name:         "Sitar",
			OriginPrefix: "the Indian",
			Tagline:      "Sympathetic strings and shimmering ragas.",
			DisplayOrder: 2,
			Featured:     true,
			PageReady:    true,
		},
	}

	log.Info("seeding catalog", zap.Int("instruments", len(instruments)))
	for i := range instruments {
		err := c.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoNothing: true,
		}).Create(&instruments[i]).Error
		if err != nil {
			return err
		}
	}
	return nil
}
