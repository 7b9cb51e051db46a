package greeting

import (
	"os"
	"path/filepath"
	"testing"

	"syllabus-bot-be/internal/constant"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "greetings.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeCatalog(t, `{
		"greeting_keywords": ["hi", "xin chào"],
		"greeting_messages": ["Chào bạn!"]
	}`)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(c.Keywords) != 2 || len(c.Messages) != 1 {
		t.Errorf("unexpected catalog: %+v", c)
	}
}

func TestLoadMissingFile(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Error("expected error for missing file")
	}
	if c == nil {
		t.Fatal("expected usable empty catalog")
	}
	if c.IsGreeting("hi") {
		t.Error("empty catalog should match nothing")
	}
}

func TestIsGreetingExactMatchOnly(t *testing.T) {
	c := &Catalog{Keywords: []string{"hi", "xin chào"}}

	tests := []struct {
		message string
		want    bool
	}{
		{"hi", true},
		{"HI", true},
		{"  Xin Chào  ", true},
		{"xin chào, đề cương môn python là gì", false},
		{"hiện tại", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := c.IsGreeting(tt.message); got != tt.want {
			t.Errorf("IsGreeting(%q) = %v, want %v", tt.message, got, tt.want)
		}
	}
}

func TestPickFallsBackToDefault(t *testing.T) {
	c := &Catalog{}
	if got := c.Pick(); got != constant.DefaultGreetingMessage {
		t.Errorf("got %q, want default greeting", got)
	}
}

func TestPickReturnsCatalogMessage(t *testing.T) {
	c := &Catalog{Messages: []string{"Chào bạn!"}}
	for i := 0; i < 5; i++ {
		if got := c.Pick(); got != "Chào bạn!" {
			t.Errorf("got %q", got)
		}
	}
}
