package advisory

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/agriconnect/agriconnect/internal/identity"
	"github.com/agriconnect/agriconnect/internal/logging"
	"github.com/agriconnect/agriconnect/internal/markdown"
	"github.com/agriconnect/agriconnect/internal/util"
	"github.com/agriconnect/agriconnect/pkg/interfaces"
	"github.com/goliatone/go-slug"
)

// ImportIssue records a document that could not be imported.
type ImportIssue struct {
	Path string `json:"path"`
	Err  error  `json:"-"`
}

// ImportResult summarises an Import run.
type ImportResult struct {
	Imported int           `json:"imported"`
	Skipped  []ImportIssue `json:"skipped,omitempty"`
}

// Service serves advisory and post-harvest content.
type Service struct {
	repo     Repository
	renderer *markdown.Renderer
	logger   interfaces.Logger
	now      func() time.Time
}

type ServiceOption func(*Service)

func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRenderer overrides the Markdown renderer used for BodyHTML.
func WithRenderer(renderer *markdown.Renderer) ServiceOption {
	return func(s *Service) {
		if renderer != nil {
			s.renderer = renderer
		}
	}
}

func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo Repository, opts ...ServiceOption) *Service {
	svc := &Service{
		repo:     repo,
		renderer: markdown.NewRenderer(markdown.Options{SafeMode: true}),
		logger:   logging.NoOp(),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

// Topics lists the articles of kind available in languageCode, ordered by title.
func (s *Service) Topics(ctx context.Context, kind Kind, languageCode string) ([]Topic, error) {
	lang := strings.TrimSpace(languageCode)
	if lang == "" {
		return nil, ErrLanguageRequired
	}
	records, err := s.repo.ListByLanguage(ctx, kind, lang)
	if err != nil {
		return nil, err
	}
	topics := make([]Topic, 0, len(records))
	for _, record := range records {
		topics = append(topics, record.topic())
	}
	return topics, nil
}

// Content returns one article with its body rendered to HTML.
func (s *Service) Content(ctx context.Context, kind Kind, topicKey, languageCode string) (*Content, error) {
	topic := strings.TrimSpace(topicKey)
	lang := strings.TrimSpace(languageCode)
	if topic == "" {
		return nil, ErrTopicRequired
	}
	if lang == "" {
		return nil, ErrLanguageRequired
	}
	record, err := s.repo.Get(ctx, kind, topic, lang)
	if err != nil {
		return nil, err
	}
	html, err := s.renderer.RenderString(record.BodyText)
	if err != nil {
		return nil, err
	}
	record.BodyHTML = html
	return record, nil
}

// Categories lists the distinct category keys used by kind.
func (s *Service) Categories(ctx context.Context, kind Kind) ([]string, error) {
	return s.repo.Categories(ctx, kind)
}

// Import stores documents as content of kind. Re-importing a topic and
// language replaces the article. Documents without a language or title are
// skipped and reported.
func (s *Service) Import(ctx context.Context, kind Kind, docs []*markdown.Document) (ImportResult, error) {
	logger := logging.WithFields(s.logger, map[string]any{"kind": string(kind)})
	var result ImportResult

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		record, err := s.contentFromDocument(kind, doc)
		if err != nil {
			logger.Warn("advisory.import.skipped", "path", doc.Path, "error", err)
			result.Skipped = append(result.Skipped, ImportIssue{Path: doc.Path, Err: err})
			continue
		}
		if _, err := s.repo.Upsert(ctx, kind, record); err != nil {
			logger.Error("advisory.import.failed", "path", doc.Path, "error", err)
			return result, err
		}
		result.Imported++
	}

	logger.Info("advisory.import.completed", "imported", result.Imported, "skipped", len(result.Skipped))
	return result, nil
}

func (s *Service) contentFromDocument(kind Kind, doc *markdown.Document) (*Content, error) {
	meta := doc.FrontMatter
	lang := strings.ToLower(meta.Language)
	if lang == "" {
		return nil, ErrLanguageRequired
	}
	if meta.Title == "" {
		return nil, fmt.Errorf("advisory: title is required")
	}

	topicKey := meta.TopicKey
	if topicKey == "" {
		topicKey = strings.TrimSuffix(path.Base(doc.Path), path.Ext(doc.Path))
	}
	normalized, err := slug.Normalize(topicKey)
	if err != nil || normalized == "" {
		return nil, fmt.Errorf("%w: %q", ErrTopicRequired, topicKey)
	}

	var category *string
	if meta.Category != "" {
		if key, err := slug.Normalize(meta.Category); err == nil && key != "" {
			category = &key
		}
	}

	now := s.now()
	return &Content{
		ID:           identity.AdvisoryUUID(string(kind), normalized, lang),
		TopicKey:     normalized,
		LanguageCode: lang,
		Title:        meta.Title,
		BodyText:     string(doc.Body),
		CategoryKey:  category,
		ImageURL:     util.OptionalString(meta.Image),
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
