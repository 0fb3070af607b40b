package sourcing

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/sethvargo/go-retry"

	"github.com/jdevries/tripwise/backend/internal/domain"
)

const (
	defaultBaseURL = "https://www.getyourguide.com"

	// Per query URL: one attempt plus two retries with constant backoff.
	// The overall bound on the sourcing phase is the caller's context deadline.
	fetchRetries     = 2
	fetchBackoff     = 500 * time.Millisecond
	maxResponseBytes = 4 << 20

	// Catalog responses are cached for an hour; listings churn slowly and the
	// source is an uncontrolled third party we should not re-hit per request.
	cacheTTL = time.Hour

	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
)

// cardSelectors is the ordered ladder of structural selectors tried against a
// catalog result page, most specific first. The first selector that matches
// anything wins; the generic tail entries exist because the source's markup
// drifts and class names are not stable.
var cardSelectors = []string{
	`[data-test-id="search-result-card"]`,
	`article[data-test-id="vertical-activity-card"]`,
	`article[class*="activity-card"]`,
	`div[class*="vertical-activity-card"]`,
	`li[class*="search-result"]`,
	`article`,
}

// Extractor pulls candidate activities out of an external catalog's HTML.
// It never returns an error: network and parse failures are logged and
// swallowed because the orchestrator always has a fallback path.
type Extractor struct {
	client  *http.Client
	baseURL *url.URL
	cache   Cache
	log     *slog.Logger
}

// NewExtractor wires an extractor against the catalog at baseURL.
// A nil client gets a 15-second timeout; a nil cache disables caching;
// an empty baseURL targets the default catalog.
func NewExtractor(client *http.Client, baseURL string, cache Cache, log *slog.Logger) (*Extractor, error) {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("sourcing.NewExtractor: invalid base URL %q: %w", baseURL, err)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Extractor{client: client, baseURL: parsed, cache: cache, log: log}, nil
}

// FetchCandidates returns up to desiredCount candidates for the destination.
// Query URLs are tried in order; the first response that yields at least one
// candidate wins. All failures degrade to an empty result.
func (e *Extractor) FetchCandidates(ctx context.Context, destination string, style domain.TravelStyle, desiredCount int) []domain.Candidate {
	if strings.TrimSpace(destination) == "" || desiredCount <= 0 {
		return nil
	}

	keywords := styleFor(style).Keywords
	for _, queryURL := range e.queryURLs(destination, keywords) {
		body, err := e.fetch(ctx, queryURL)
		if err != nil {
			e.log.Warn("catalog fetch failed", "url", queryURL, "error", err)
			continue
		}

		candidates := e.extract(body, keywords[0])
		if len(candidates) == 0 {
			e.log.Debug("no candidates in response", "url", queryURL)
			continue
		}

		e.log.Info("catalog extraction succeeded",
			"url", queryURL, "destination", destination, "count", len(candidates))
		if len(candidates) > desiredCount {
			candidates = candidates[:desiredCount]
		}
		return candidates
	}

	e.log.Info("catalog extraction yielded nothing", "destination", destination, "style", style)
	return nil
}

// queryURLs builds the ordered list of search URLs to try: keyword-hinted
// search first, then plain destination search, then the legacy endpoint shape.
func (e *Extractor) queryURLs(destination string, keywords []string) []string {
	base := strings.TrimSuffix(e.baseURL.String(), "/")
	hinted := url.QueryEscape(destination + " " + keywords[0])
	plain := url.QueryEscape(destination)
	dashed := url.QueryEscape(strings.ReplaceAll(strings.ToLower(destination), " ", "-"))

	return []string{
		base + "/s/?q=" + hinted,
		base + "/s/?q=" + plain,
		base + "/search?q=" + dashed,
	}
}

// fetch returns the response body for rawURL, consulting the cache first.
// Transient failures (network errors, 429, 5xx) are retried a bounded number
// of times; anything else fails the URL immediately.
func (e *Extractor) fetch(ctx context.Context, rawURL string) (string, error) {
	if e.cache != nil {
		if body, ok := e.cache.Get(ctx, rawURL); ok {
			return body, nil
		}
	}

	var body string
	backoff := retry.WithMaxRetries(fetchRetries, retry.NewConstant(fetchBackoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return err
		}
		req.Header.Set("User-Agent", browserUserAgent)
		req.Header.Set("Accept-Language", "en-US,en;q=0.9,nl;q=0.8")
		req.Header.Set("Referer", e.baseURL.String()+"/")

		resp, err := e.client.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return retry.RetryableError(fmt.Errorf("catalog returned %s", resp.Status))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("catalog returned %s", resp.Status)
		}

		raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if err != nil {
			return retry.RetryableError(fmt.Errorf("read body: %w", err))
		}
		body = string(raw)
		return nil
	})
	if err != nil {
		return "", err
	}

	if e.cache != nil {
		e.cache.Set(ctx, rawURL, body, cacheTTL)
	}
	return body, nil
}

// extract runs the strategy ladder against one response body: selector-based
// extraction first, embedded structured data second. The first strategy that
// yields anything wins.
func (e *Extractor) extract(body, category string) []domain.Candidate {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		e.log.Warn("catalog response is not parseable HTML", "error", err)
		return nil
	}

	if candidates := e.selectorCandidates(doc, category); len(candidates) > 0 {
		return candidates
	}
	return e.structuredDataCandidates(doc, category)
}

// selectorCandidates walks the selector ladder and mines the first matching
// element set for listing fields. An element is kept only when it has a
// usable title and a link into the source's own domain; the domain check is
// what separates genuine listings from incidental markup.
func (e *Extractor) selectorCandidates(doc *goquery.Document, category string) []domain.Candidate {
	var cards *goquery.Selection
	for _, selector := range cardSelectors {
		if found := doc.Find(selector); found.Length() > 0 {
			cards = found
			break
		}
	}
	if cards == nil {
		return nil
	}

	var candidates []domain.Candidate
	cards.Each(func(_ int, card *goquery.Selection) {
		title := firstText(card,
			`[itemprop="name"]`,
			`[data-test-id="activity-card-title"]`,
			`[class*="title"]`,
			"h3", "h2")
		if utf8.RuneCountInString(title) < 3 {
			return
		}

		detailURL := e.resolveURL(cardLink(card))
		if !e.sameDomain(detailURL) {
			return
		}

		candidates = append(candidates, domain.Candidate{
			Title: title,
			Description: firstText(card,
				`[itemprop="description"]`,
				`[data-test-id="activity-card-description"]`,
				`[class*="description"]`,
				"p"),
			Price: cleanText(firstText(card,
				`[itemprop="price"]`,
				`[data-test-id="activity-card-price"]`,
				`[class*="price"]`)),
			Rating: parseLeadingDecimal(firstText(card,
				`[itemprop="ratingValue"]`,
				`[data-test-id="rating"]`,
				`[class*="rating"]`)),
			Reviews: parseLeadingInt(firstText(card,
				`[itemprop="reviewCount"]`,
				`[data-test-id="review-count"]`,
				`[class*="review"]`)),
			Duration: cleanText(firstText(card,
				`[data-test-id="activity-card-duration"]`,
				`[class*="duration"]`,
				"time")),
			Category:  category,
			SourceURL: detailURL,
			ImageURL:  cardImage(card),
		})
	})
	return candidates
}

// firstText tries each selector in order and returns the first non-empty
// trimmed text. This is the per-field fallback ladder: semantic attribute,
// then test-id attribute, then class heuristic, then nearby plain elements.
func firstText(sel *goquery.Selection, selectors ...string) string {
	for _, s := range selectors {
		if text := strings.TrimSpace(sel.Find(s).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// cardLink returns the most plausible detail-page href for a card: the card's
// own href when the card is an anchor, otherwise its first nested anchor.
func cardLink(card *goquery.Selection) string {
	if href, ok := card.Attr("href"); ok {
		return href
	}
	href, _ := card.Find("a[href]").First().Attr("href")
	return href
}

// cardImage returns the card's image URL, preferring src over the lazy-load
// data-src attribute.
func cardImage(card *goquery.Selection) string {
	img := card.Find("img").First()
	if src, ok := img.Attr("src"); ok && src != "" {
		return src
	}
	src, _ := img.Attr("data-src")
	return src
}

// resolveURL makes href absolute against the catalog base URL.
// Returns "" for unparseable input.
func (e *Extractor) resolveURL(href string) string {
	if href == "" {
		return ""
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return e.baseURL.ResolveReference(parsed).String()
}

// sameDomain reports whether rawURL points into the catalog's own domain.
// Subdomains of the catalog host count as the same domain.
func (e *Extractor) sameDomain(rawURL string) bool {
	if rawURL == "" {
		return false
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	base := strings.ToLower(strings.TrimPrefix(e.baseURL.Hostname(), "www."))
	return host == base || strings.HasSuffix(host, "."+base)
}

// cleanText collapses internal whitespace runs into single spaces.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
