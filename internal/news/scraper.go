package news

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"ai-trader/internal/interfaces"
	"ai-trader/internal/logger"
	"ai-trader/internal/types"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// SourceKind selects how a source page is parsed.
type SourceKind int

const (
	// KindRSS reads <item> entries from an RSS feed
	KindRSS SourceKind = iota
	// KindHTML reads article containers with CSS selectors
	KindHTML
)

// Source is one place headlines are scraped from. {symbol} in SearchPath
// is replaced with the query-escaped symbol.
type Source struct {
	Name       string
	Kind       SourceKind
	BaseURL    string
	SearchPath string
	Selectors  Selectors
	RateLimit  time.Duration
}

// Selectors are used by KindHTML sources only
type Selectors struct {
	Container string
	Title     string
	Summary   string
}

// Scraper collects recent headlines for a symbol from several sources.
type Scraper struct {
	sources []Source
	timeout time.Duration
}

var _ interfaces.HeadlineSource = (*Scraper)(nil)

// NewScraper creates a scraper with the default sources
func NewScraper(timeout time.Duration) *Scraper {
	return NewScraperWithSources(timeout, DefaultSources())
}

func NewScraperWithSources(timeout time.Duration, sources []Source) *Scraper {
	return &Scraper{sources: sources, timeout: timeout}
}

// DefaultSources returns the Google News feed and MoneyControl tag pages.
func DefaultSources() []Source {
	return []Source{
		{
			Name:       "GoogleNews",
			Kind:       KindRSS,
			BaseURL:    "https://news.google.com",
			SearchPath: "/rss/search?q={symbol}+stock&hl=en-IN&gl=IN&ceid=IN:en",
			RateLimit:  time.Second,
		},
		{
			Name:       "MoneyControl",
			Kind:       KindHTML,
			BaseURL:    "https://www.moneycontrol.com",
			SearchPath: "/news/tags/{symbol}.html",
			Selectors: Selectors{
				Container: "li.clearfix",
				Title:     "h2 a, h3 a",
				Summary:   "p",
			},
			RateLimit: 2 * time.Second,
		},
	}
}

// Headlines returns at most max articles across all sources. Failing sources
// are logged and skipped; the result may be empty.
func (s *Scraper) Headlines(ctx context.Context, symbol string, max int) ([]types.Article, error) {
	if max <= 0 || len(s.sources) == 0 {
		return []types.Article{}, nil
	}
	logger.Debug(ctx, "Starting news scraping", "symbol", symbol, "sources", len(s.sources))

	perSource := max / len(s.sources)
	if perSource < 1 {
		perSource = 1
	}

	all := []types.Article{}
	for i, source := range s.sources {
		if len(all) >= max {
			break
		}
		articles, err := s.scrapeSource(ctx, source, symbol, perSource)
		if err != nil {
			logger.Warn(ctx, "Failed to scrape source", "source", source.Name, "symbol", symbol, "error", err)
		} else {
			all = append(all, articles...)
		}

		if i < len(s.sources)-1 && source.RateLimit > 0 {
			select {
			case <-ctx.Done():
				return truncate(all, max), ctx.Err()
			case <-time.After(source.RateLimit):
			}
		}
	}

	logger.Info(ctx, "News scraping completed", "symbol", symbol, "articles", len(all))
	return truncate(all, max), nil
}

func (s *Scraper) scrapeSource(ctx context.Context, source Source, symbol string, max int) ([]types.Article, error) {
	articles := []types.Article{}

	c := colly.NewCollector(
		colly.AllowedDomains(getDomain(source.BaseURL)),
		colly.MaxDepth(1),
		colly.UserAgent(userAgent),
	)
	c.SetRequestTimeout(s.timeout)

	add := func(title, summary string) {
		title = strings.TrimSpace(title)
		if title == "" || len(articles) >= max {
			return
		}
		articles = append(articles, types.Article{Headline: title, Summary: htmlToText(summary)})
	}

	switch source.Kind {
	case KindRSS:
		c.OnXML("//item", func(e *colly.XMLElement) {
			add(e.ChildText("title"), e.ChildText("description"))
		})
	default:
		c.OnHTML(source.Selectors.Container, func(e *colly.HTMLElement) {
			add(e.ChildText(source.Selectors.Title), e.ChildText(source.Selectors.Summary))
		})
	}

	var visitErr error
	c.OnError(func(r *colly.Response, err error) {
		visitErr = fmt.Errorf("%s returned %d: %w", source.Name, r.StatusCode, err)
	})

	searchURL := source.BaseURL + strings.ReplaceAll(source.SearchPath, "{symbol}", url.QueryEscape(strings.ToLower(symbol)))
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := c.Visit(searchURL); err != nil {
		if visitErr != nil {
			return nil, visitErr
		}
		return nil, fmt.Errorf("failed to visit %s: %w", searchURL, err)
	}
	c.Wait()

	if visitErr != nil {
		return nil, visitErr
	}
	return articles, nil
}

// htmlToText flattens feed descriptions, which are often HTML fragments.
func htmlToText(fragment string) string {
	fragment = strings.TrimSpace(fragment)
	if !strings.Contains(fragment, "<") {
		return fragment
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

func truncate(articles []types.Article, max int) []types.Article {
	if len(articles) > max {
		return articles[:max]
	}
	return articles
}

func getDomain(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
