package services

import (
	"context"
	"fmt"

	"postfeed/app/metrics"
	"postfeed/app/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Source is where the enricher reads posts, authors and comments from.
// *client.Client implements it.
type Source interface {
	FetchPosts(ctx context.Context) ([]models.Post, error)
	FetchAuthor(ctx context.Context, id int) (models.Author, error)
	FetchComments(ctx context.Context, postID int) ([]models.Comment, error)
}

// Enricher joins every post with its author and comments.
type Enricher struct {
	source         Source
	logger         *zap.Logger
	metrics        *metrics.Collector
	maxConcurrency int
}

// EnricherOption configures an Enricher.
type EnricherOption func(*Enricher)

// WithLogger sets the logger of the enricher.
func WithLogger(logger *zap.Logger) EnricherOption {
	return func(e *Enricher) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMetrics records batch outcomes on the collector.
func WithMetrics(c *metrics.Collector) EnricherOption {
	return func(e *Enricher) {
		e.metrics = c
	}
}

// WithMaxConcurrency bounds how many posts are enriched at once. Zero, the
// default, starts one task per post.
func WithMaxConcurrency(n int) EnricherOption {
	return func(e *Enricher) {
		if n > 0 {
			e.maxConcurrency = n
		}
	}
}

// NewEnricher creates an Enricher reading from source.
func NewEnricher(source Source, opts ...EnricherOption) *Enricher {
	e := &Enricher{
		source: source,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run fetches the post list and enriches it.
func (e *Enricher) Run(ctx context.Context) ([]models.EnrichedPost, error) {
	posts, err := e.source.FetchPosts(ctx)
	if err != nil {
		e.metrics.EnrichFailed()
		return nil, fmt.Errorf("fetch posts: %w", err)
	}
	e.logger.Debug("fetched posts", zap.Int("count", len(posts)))
	return e.Enrich(ctx, posts)
}

// Enrich fetches the author and comments of every post concurrently and
// returns one record per post, in the order of posts. The first failing
// fetch cancels the rest of the batch and its error is returned.
func (e *Enricher) Enrich(ctx context.Context, posts []models.Post) ([]models.EnrichedPost, error) {
	enriched := make([]models.EnrichedPost, len(posts))

	g, gctx := errgroup.WithContext(ctx)
	if e.maxConcurrency > 0 {
		g.SetLimit(e.maxConcurrency)
	}
	for i, post := range posts {
		i, post := i, post
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ep, err := e.enrichPost(gctx, post)
			if err != nil {
				return err
			}
			enriched[i] = ep
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		e.metrics.EnrichFailed()
		e.logger.Warn("enrichment failed", zap.Int("posts", len(posts)), zap.Error(err))
		return nil, err
	}

	e.metrics.PostsEnriched(len(posts))
	e.logger.Debug("enrichment complete", zap.Int("posts", len(posts)))
	return enriched, nil
}

func (e *Enricher) enrichPost(ctx context.Context, post models.Post) (models.EnrichedPost, error) {
	var (
		author   models.Author
		comments []models.Comment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a, err := e.source.FetchAuthor(gctx, post.AuthorID)
		if err != nil {
			return fmt.Errorf("post %d: fetch author %d: %w", post.ID, post.AuthorID, err)
		}
		author = a
		return nil
	})
	g.Go(func() error {
		cs, err := e.source.FetchComments(gctx, post.ID)
		if err != nil {
			return fmt.Errorf("post %d: fetch comments: %w", post.ID, err)
		}
		comments = cs
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.EnrichedPost{}, err
	}

	return models.NewEnrichedPost(post, author, comments), nil
}
