// workers/gim_scraper.go
package workers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

const (
	hiscoresURLFormat = "https://secure.runescape.com/m=hiscore_oldschool_ironman/group-ironman/?groupSize=%d&page=%d"
	scraperUserAgent  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	DefaultGroupSize = 5
	DefaultMaxPages  = 150
)

// errBlocked means the hiscores site refused us (Cloudflare). There is no
// point walking further pages when it happens.
var errBlocked = errors.New("blocked by hiscores site")

// RankSink receives the scrape result. prestigeRank is nil when no prestige
// groups precede ours and ours has no star.
type RankSink interface {
	RecordRank(rank int, prestigeRank *int, totalXP int64) error
}

// GIMScraper walks the group-ironman hiscores pages until it finds the
// configured group, counting prestige groups passed along the way.
type GIMScraper struct {
	group      string
	groupSize  int
	maxPages   int
	httpClient *http.Client
	sink       RankSink
}

func NewGIMScraper(group string, groupSize, maxPages int, client *http.Client, sink RankSink) *GIMScraper {
	if groupSize < 1 {
		groupSize = DefaultGroupSize
	}
	if maxPages < 1 {
		maxPages = DefaultMaxPages
	}
	return &GIMScraper{
		group:      strings.ToLower(strings.TrimSpace(group)),
		groupSize:  groupSize,
		maxPages:   maxPages,
		httpClient: client,
		sink:       sink,
	}
}

// Run scrapes until the group is found or the page budget runs out.
func (s *GIMScraper) Run(ctx context.Context) error {
	log.Printf("[SCRAPE] 🔍 Searching hiscores for group %q (size %d)…", s.group, s.groupSize)

	prestigeCount := 0
	for page := 1; page <= s.maxPages; page++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		rows, err := s.fetchPage(ctx, page)
		if err != nil {
			if errors.Is(err, errBlocked) {
				return err
			}
			log.Printf("[SCRAPE] ⚠️ page %d: %v", page, err)
			continue
		}

		for _, row := range rows {
			if strings.Contains(strings.ToLower(row.Name), s.group) {
				if row.HasStar {
					prestigeCount++
				}
				var prestige *int
				if prestigeCount > 0 {
					p := prestigeCount
					prestige = &p
				}
				log.Printf("[SCRAPE] ✅ Found %q at rank #%d (xp %d, prestige groups ahead or equal: %d)",
					row.Name, row.Rank, row.XP, prestigeCount)
				return s.sink.RecordRank(row.Rank, prestige, row.XP)
			}
			if row.HasStar {
				prestigeCount++
			}
		}

		if page%10 == 0 {
			log.Printf("[SCRAPE] 💤 Scanned %d pages, %d prestige groups so far…", page, prestigeCount)
		}
	}

	return fmt.Errorf("group %q not found in first %d pages", s.group, s.maxPages)
}

// hiscoreRow is one table row of the group-ironman leaderboard.
type hiscoreRow struct {
	Rank    int
	Name    string
	XP      int64
	HasStar bool
}

func (s *GIMScraper) fetchPage(ctx context.Context, page int) ([]hiscoreRow, error) {
	url := fmt.Sprintf(hiscoresURLFormat, s.groupSize, page)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", scraperUserAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		return nil, errBlocked
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	return parseHiscoreRows(resp.Body)
}

// parseHiscoreRows extracts (rank, name, xp, prestige star) from the
// leaderboard table: cells 1, 2 and 4 of each tbody row, with a star image
// anywhere in the row marking prestige.
func parseHiscoreRows(r io.Reader) ([]hiscoreRow, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	var rows []hiscoreRow
	for _, tbody := range findElements(doc, "tbody") {
		for _, tr := range findElements(tbody, "tr") {
			cells := findElements(tr, "td")
			if len(cells) < 4 {
				continue
			}

			rank, err := strconv.Atoi(strings.ReplaceAll(nodeText(cells[0]), ",", ""))
			if err != nil {
				continue
			}
			name := nodeText(cells[1])
			xp, err := strconv.ParseInt(strings.ReplaceAll(nodeText(cells[3]), ",", ""), 10, 64)
			if err != nil {
				continue
			}

			rows = append(rows, hiscoreRow{
				Rank:    rank,
				Name:    name,
				XP:      xp,
				HasStar: len(findElements(tr, "img")) > 0,
			})
		}
	}
	return rows, nil
}

// findElements collects descendant elements with the given tag, in document
// order.
func findElements(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && node.Data == tag {
			out = append(out, node)
			if tag != "img" {
				return
			}
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		walk(child)
	}
	return out
}

// nodeText concatenates all text beneath a node, trimmed.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}
