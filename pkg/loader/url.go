package loader

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

var whitespaceRe = regexp.MustCompile(`[ \t]+`)

// FetchURL downloads an HTML page and returns its readable text as a Document.
// Scripts, styles and chrome elements are stripped before text extraction.
func FetchURL(url string, name string) (*Document, error) {
	client := &http.Client{Timeout: 10 * time.Second}

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, &LoadError{Source: url, Err: err}
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; SyllabusBot/1.0)")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &LoadError{Source: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &LoadError{Source: url, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(contentType, "text/html") && !strings.Contains(contentType, "text/plain") {
		return nil, &LoadError{Source: url, Err: fmt.Errorf("unsupported content type %q", contentType)}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &LoadError{Source: url, Err: err}
	}

	doc.Find("script, style, nav, footer, header, noscript, iframe").Remove()

	text := collapseWhitespace(doc.Find("body").Text())
	if text == "" {
		return nil, &LoadError{Source: url, Err: fmt.Errorf("no extractable text")}
	}

	if name == "" {
		name = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if name == "" {
		name = url
	}

	return &Document{
		Content: text,
		Source:  url,
		Type:    "url",
		Name:    name,
	}, nil
}

func collapseWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	var kept []string
	for _, line := range lines {
		line = strings.TrimSpace(whitespaceRe.ReplaceAllString(line, " "))
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
