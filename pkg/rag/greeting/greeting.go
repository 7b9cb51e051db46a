package greeting

import (
	"encoding/json"
	"math/rand"
	"os"
	"strings"

	"syllabus-bot-be/internal/constant"
)

// Catalog holds the greeting keywords and canned replies loaded from the
// greetings file.
type Catalog struct {
	Keywords []string `json:"greeting_keywords"`
	Messages []string `json:"greeting_messages"`
}

// Load reads the catalog from a JSON file. A missing or malformed file yields
// an empty catalog and the error; the caller may keep the empty catalog so the
// bot still works without greetings.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return &Catalog{}, err
	}

	var c Catalog
	if err := json.Unmarshal(raw, &c); err != nil {
		return &Catalog{}, err
	}
	return &c, nil
}

// IsGreeting reports whether the message is exactly a greeting keyword.
// Matching is exact after lowercasing and trimming, so "xin chào" matches but
// "xin chào, đề cương môn python" does not.
func (c *Catalog) IsGreeting(message string) bool {
	normalized := strings.ToLower(strings.TrimSpace(message))
	if normalized == "" {
		return false
	}
	for _, kw := range c.Keywords {
		if normalized == strings.ToLower(strings.TrimSpace(kw)) {
			return true
		}
	}
	return false
}

// Pick returns a random greeting reply, falling back to the default message
// when the catalog has none.
func (c *Catalog) Pick() string {
	if len(c.Messages) == 0 {
		return constant.DefaultGreetingMessage
	}
	return c.Messages[rand.Intn(len(c.Messages))]
}
