// Package isbn looks up book metadata by ISBN in public catalogs.
//
// Lookups are best effort: every failure of a catalog is logged and reported
// as "metadata unavailable", never as an error.
package isbn

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Astemirdum/home-library/pkg/circuit_breaker"
	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Config struct {
	OpenLibraryURL string        `envconfig:"ISBN_OPENLIBRARY_URL" default:"https://openlibrary.org"`
	CoversURL      string        `envconfig:"ISBN_COVERS_URL" default:"https://covers.openlibrary.org"`
	GoogleBooksURL string        `envconfig:"ISBN_GOOGLEBOOKS_URL" default:"https://www.googleapis.com/books/v1"`
	Timeout        time.Duration `envconfig:"ISBN_TIMEOUT" default:"10s"`
	RedisAddr      string        `envconfig:"ISBN_REDIS_ADDR"`
	RedisPassword  string        `envconfig:"ISBN_REDIS_PASSWORD"`
	CacheTTL       time.Duration `envconfig:"ISBN_CACHE_TTL" default:"24h"`
}

// Metadata is the normalized description of a book.
type Metadata struct {
	ISBN        string  `json:"isbn"`
	Title       string  `json:"title"`
	Author      *string `json:"author"`
	CoverURL    *string `json:"coverUrl"`
	Publisher   *string `json:"publisher"`
	PublishYear *int    `json:"publishYear"`
	PageCount   *int    `json:"pageCount"`
	Description *string `json:"description"`
}

// Source is one external catalog. Lookup returns nil, nil when the catalog
// has no record for the ISBN.
type Source interface {
	Name() string
	Lookup(ctx context.Context, isbn string) (*Metadata, error)
}

type guardedSource struct {
	Source
	cb circuit_breaker.CircuitBreaker
}

type Client struct {
	sources []guardedSource
	covers  *coverChecker
	cache   Cache
	group   singleflight.Group
	// bounds one shared lookup across all of its sources
	timeout time.Duration
	log     *zap.Logger
}

type Option func(c *Client)

func WithSources(sources ...Source) Option {
	return func(c *Client) {
		c.sources = c.sources[:0]
		for _, s := range sources {
			c.sources = append(c.sources, guard(s))
		}
	}
}

func WithCache(cache Cache) Option {
	return func(c *Client) {
		c.cache = cache
	}
}

func New(cfg Config, log *zap.Logger, opts ...Option) *Client {
	httpClient := &http.Client{Timeout: cfg.Timeout}
	c := &Client{
		sources: []guardedSource{
			guard(NewOpenLibrary(cfg.OpenLibraryURL, httpClient)),
			guard(NewGoogleBooks(cfg.GoogleBooksURL, httpClient)),
		},
		covers:  &coverChecker{baseURL: strings.TrimRight(cfg.CoversURL, "/"), client: httpClient},
		timeout: 3 * cfg.Timeout,
		log:     log.Named("isbn"),
	}
	if c.timeout <= 0 {
		c.timeout = 30 * time.Second
	}
	if cfg.RedisAddr != "" {
		c.cache = NewRedisCache(redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}), cfg.CacheTTL)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func guard(s Source) guardedSource {
	return guardedSource{Source: s, cb: circuit_breaker.New(20, 30*time.Second, 0.5, 2)}
}

// Normalize strips hyphens and spaces.
func Normalize(isbn string) string {
	return strings.NewReplacer("-", "", " ", "").Replace(strings.TrimSpace(isbn))
}

// Lookup tries each source in order and returns the first match.
// Concurrent lookups of one ISBN share a single fetch that outlives the
// caller which started it.
func (c *Client) Lookup(ctx context.Context, isbn string) (*Metadata, bool) {
	isbn = Normalize(isbn)
	if isbn == "" {
		return nil, false
	}
	ch := c.group.DoChan(isbn, func() (any, error) {
		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		return c.lookup(lctx, isbn), nil
	})
	select {
	case <-ctx.Done():
		return nil, false
	case res := <-ch:
		md, _ := res.Val.(*Metadata)
		return md, md != nil
	}
}

func (c *Client) lookup(ctx context.Context, isbn string) *Metadata {
	if c.cache != nil {
		md, ok, err := c.cache.Get(ctx, isbn)
		if err != nil {
			c.log.Warn("cache get", zap.String("isbn", isbn), zap.Error(err))
		}
		if ok {
			return md
		}
	}

	for _, src := range c.sources {
		var md *Metadata
		err := src.cb.Call(func() error {
			var err error
			md, err = src.Lookup(ctx, isbn)
			return err
		})
		if err != nil {
			c.log.Debug("source lookup", zap.String("source", src.Name()), zap.String("isbn", isbn), zap.Error(err))
			continue
		}
		if md == nil || md.Title == "" {
			continue
		}
		md.ISBN = isbn
		if c.covers != nil {
			md.CoverURL = c.covers.check(ctx, isbn)
		}
		if c.cache != nil {
			if err := c.cache.Set(ctx, isbn, md); err != nil {
				c.log.Warn("cache set", zap.String("isbn", isbn), zap.Error(err))
			}
		}
		return md
	}
	return nil
}

// coverChecker keeps the Open Library cover only when the image exists.
type coverChecker struct {
	baseURL string
	client  *http.Client
}

func (cc *coverChecker) url(isbn string) string {
	return fmt.Sprintf("%s/b/isbn/%s-M.jpg", cc.baseURL, isbn)
}

func (cc *coverChecker) check(ctx context.Context, isbn string) *string {
	cover := cc.url(isbn)
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, cover+"?default=false", http.NoBody)
	if err != nil {
		return nil
	}
	resp, err := cc.client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil
	}
	return &cover
}
