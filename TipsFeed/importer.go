package TipsFeed

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"KidGrow/Models"
)

// ImportTips triggers a feed refresh over HTTP.
func ImportTips(c *fiber.Ctx) error {
	importer := NewImporter(Models.DB)
	count, err := importer.Run()
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"imported": count})
}

// Importer pulls curated tip articles from an external content feed into the
// nutrition/development catalog sections. Imported entries never carry
// section="task", so they can never leak into daily assignment.
type Importer struct {
	DB      *gorm.DB
	FeedURL string
}

func NewImporter(db *gorm.DB) *Importer {
	return &Importer{
		DB:      db,
		FeedURL: os.Getenv("TIPS_FEED_URL"),
	}
}

// Run fetches the feed index and upserts one catalog entry per article card.
// Cards are matched by title within their section, so re-running refreshes
// descriptions without duplicating entries.
func (imp *Importer) Run() (int, error) {
	if imp.FeedURL == "" {
		return 0, fmt.Errorf("TIPS_FEED_URL not configured")
	}

	client := colly.NewCollector()
	imported := 0
	var scrapeErr error

	client.OnHTML("article.tip-card", func(h *colly.HTMLElement) {
		tip := Models.Task{
			Title:       strings.TrimSpace(h.ChildText("h2")),
			Description: strings.TrimSpace(h.ChildText("p.summary")),
			Emoji:       strings.TrimSpace(h.ChildText("span.emoji")),
			Section:     sectionFromAttr(h.Attr("data-section")),
			AgeGroup:    strings.TrimSpace(h.Attr("data-age-group")),
			Category:    strings.TrimSpace(h.Attr("data-category")),
			IsActive:    true,
		}
		if tip.Title == "" || !Models.IsValidAgeGroup(tip.AgeGroup) {
			return
		}
		if err := imp.upsert(tip); err != nil {
			log.Printf("Failed to store tip %q: %v", tip.Title, err)
			return
		}
		imported++
	})

	client.OnError(func(r *colly.Response, err error) {
		scrapeErr = fmt.Errorf("feed request failed: %w", err)
	})

	if err := client.Visit(imp.FeedURL); err != nil {
		return 0, err
	}
	if scrapeErr != nil {
		return imported, scrapeErr
	}
	return imported, nil
}

// ParseFeedDocument extracts tip entries from an already-fetched feed page.
// Split out so the parsing rules are testable without a live feed.
func ParseFeedDocument(document *goquery.Document) []Models.Task {
	var tips []Models.Task
	document.Find("article.tip-card").Each(func(_ int, s *goquery.Selection) {
		section, _ := s.Attr("data-section")
		ageGroup, _ := s.Attr("data-age-group")
		category, _ := s.Attr("data-category")
		tip := Models.Task{
			Title:       strings.TrimSpace(s.Find("h2").Text()),
			Description: strings.TrimSpace(s.Find("p.summary").Text()),
			Emoji:       strings.TrimSpace(s.Find("span.emoji").Text()),
			Section:     sectionFromAttr(section),
			AgeGroup:    strings.TrimSpace(ageGroup),
			Category:    strings.TrimSpace(category),
			IsActive:    true,
		}
		if tip.Title == "" || !Models.IsValidAgeGroup(tip.AgeGroup) {
			return
		}
		tips = append(tips, tip)
	})
	return tips
}

func (imp *Importer) upsert(tip Models.Task) error {
	var existing Models.Task
	err := imp.DB.Where("title = ? AND section = ?", tip.Title, tip.Section).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return imp.DB.Create(&tip).Error
	}
	if err != nil {
		return err
	}
	return imp.DB.Model(&existing).Updates(map[string]interface{}{
		"description": tip.Description,
		"emoji":       tip.Emoji,
		"age_group":   tip.AgeGroup,
		"category":    tip.Category,
		"is_active":   true,
	}).Error
}

// sectionFromAttr maps a feed section tag onto a catalog section, defaulting
// to development. The task section is deliberately not reachable from here.
func sectionFromAttr(raw string) string {
	switch strings.TrimSpace(raw) {
	case "nutrition":
		return Models.SectionNutrition
	default:
		return Models.SectionDevelopment
	}
}
