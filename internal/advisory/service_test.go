package advisory_test

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/agriconnect/agriconnect/internal/advisory"
	"github.com/agriconnect/agriconnect/internal/domain"
	"github.com/agriconnect/agriconnect/internal/markdown"
	"github.com/agriconnect/agriconnect/pkg/testsupport"
)

const contentTableDDL = `CREATE TABLE %s (
	id TEXT PRIMARY KEY,
	topic_key TEXT NOT NULL,
	language_code TEXT NOT NULL,
	title TEXT NOT NULL,
	body_text TEXT NOT NULL,
	category_key TEXT,
	image_url TEXT,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE (topic_key, language_code)
)`

func repositories() map[string]func(t *testing.T) advisory.Repository {
	return map[string]func(t *testing.T) advisory.Repository{
		"memory": func(*testing.T) advisory.Repository { return advisory.NewMemoryRepository() },
		"bun": func(t *testing.T) advisory.Repository {
			db := testsupport.NewBunSQLiteDB(t)
			for _, kind := range []advisory.Kind{advisory.KindCropAdvisory, advisory.KindPostHarvest} {
				if _, err := db.ExecContext(context.Background(), fmt.Sprintf(contentTableDDL, kind.Table())); err != nil {
					t.Fatalf("create %s: %v", kind.Table(), err)
				}
			}
			return advisory.NewBunRepository(db)
		},
	}
}

func doc(path, topic, lang, title, category, body string) *markdown.Document {
	return &markdown.Document{
		Path: path,
		FrontMatter: markdown.FrontMatter{
			TopicKey: topic,
			Language: lang,
			Title:    title,
			Category: category,
		},
		Body: []byte(body),
	}
}

func TestImportAndQuery(t *testing.T) {
	for name, factory := range repositories() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			svc := advisory.NewService(factory(t))

			result, err := svc.Import(ctx, advisory.KindCropAdvisory, []*markdown.Document{
				doc("en/soil.md", "soil-testing", "en", "Soil Testing", "Soil Health", "Test **yearly**."),
				doc("en/pests.md", "pest-control", "en", "Pest Control", "Crop Protection", "Use traps."),
				doc("hi/soil.md", "soil-testing", "hi", "मिट्टी परीक्षण", "Soil Health", "हर साल"),
				doc("en/irrigation.md", "", "en", "Drip Irrigation", "", "Save water."),
				doc("broken.md", "broken", "", "No Language", "", ""),
			})
			if err != nil {
				t.Fatalf("import: %v", err)
			}
			if result.Imported != 4 || len(result.Skipped) != 1 || result.Skipped[0].Path != "broken.md" {
				t.Fatalf("unexpected import result %+v", result)
			}

			topics, err := svc.Topics(ctx, advisory.KindCropAdvisory, "en")
			if err != nil {
				t.Fatalf("topics: %v", err)
			}
			var titles []string
			for _, topic := range topics {
				titles = append(titles, topic.Title)
			}
			if !slices.Equal(titles, []string{"Drip Irrigation", "Pest Control", "Soil Testing"}) {
				t.Fatalf("expected topics ordered by title, got %v", titles)
			}
			if topics[0].TopicKey != "irrigation" {
				t.Fatalf("expected topic key from file name, got %q", topics[0].TopicKey)
			}

			content, err := svc.Content(ctx, advisory.KindCropAdvisory, "soil-testing", "hi")
			if err != nil {
				t.Fatalf("content: %v", err)
			}
			if content.Title != "मिट्टी परीक्षण" {
				t.Fatalf("expected hindi article, got %q", content.Title)
			}

			english, err := svc.Content(ctx, advisory.KindCropAdvisory, "soil-testing", "en")
			if err != nil {
				t.Fatalf("content en: %v", err)
			}
			if !strings.Contains(english.BodyHTML, "<strong>yearly</strong>") {
				t.Fatalf("expected rendered body, got %q", english.BodyHTML)
			}

			categories, err := svc.Categories(ctx, advisory.KindCropAdvisory)
			if err != nil {
				t.Fatalf("categories: %v", err)
			}
			if len(categories) != 2 {
				t.Fatalf("expected 2 distinct categories, got %v", categories)
			}

			if _, err := svc.Content(ctx, advisory.KindPostHarvest, "soil-testing", "en"); !domain.IsNotFound(err) {
				t.Fatalf("expected kinds to be stored separately, got %v", err)
			}
		})
	}
}

func TestImportReplacesExistingArticle(t *testing.T) {
	for name, factory := range repositories() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			svc := advisory.NewService(factory(t))

			first := doc("storage.md", "grain-storage", "mr", "धान्य साठवण", "storage", "v1")
			second := doc("storage.md", "grain-storage", "mr", "धान्य साठवण (सुधारित)", "storage", "v2")
			for _, d := range []*markdown.Document{first, second} {
				if _, err := svc.Import(ctx, advisory.KindPostHarvest, []*markdown.Document{d}); err != nil {
					t.Fatalf("import: %v", err)
				}
			}

			topics, err := svc.Topics(ctx, advisory.KindPostHarvest, "mr")
			if err != nil {
				t.Fatalf("topics: %v", err)
			}
			if len(topics) != 1 || topics[0].Title != "धान्य साठवण (सुधारित)" {
				t.Fatalf("expected replaced article, got %+v", topics)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	cases := map[string]advisory.Kind{
		"crop-advisory":         advisory.KindCropAdvisory,
		"advisory_content":      advisory.KindCropAdvisory,
		"post-harvest-guidance": advisory.KindPostHarvest,
		"Post-Harvest":          advisory.KindPostHarvest,
	}
	for input, want := range cases {
		got, err := advisory.ParseKind(input)
		if err != nil || got != want {
			t.Fatalf("ParseKind(%q) = %q, %v", input, got, err)
		}
	}
	if _, err := advisory.ParseKind("recipes"); err == nil {
		t.Fatal("expected unknown kind error")
	}
}
