// Command mkcharacter drafts a character record from a web page. It pulls
// the readable text of a biography or wiki article and emits a JSON skeleton
// to append to the roster file; the greeting and response pool still need a
// human pass.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/go-shiori/go-readability"

	"figment/internal/catalog"
)

var (
	id       = flag.Int("id", 0, "Character id to assign (required)")
	name     = flag.String("name", "", "Character name (defaults to the page title)")
	pageURL  = flag.String("url", "", "Source page to summarize (required)")
	tags     = flag.String("tags", "", "Comma-separated tags")
	maxShort = flag.Int("max-short", 160, "Max length of the short description")
	maxLong  = flag.Int("max-long", 600, "Max length of the long description")
)

func main() {
	flag.Parse()

	if *pageURL == "" || *id <= 0 {
		fmt.Fprintln(os.Stderr, "Usage: mkcharacter -id <n> -url <page> [-name <name>] [-tags a,b]")
		os.Exit(2)
	}

	parsed, err := url.Parse(*pageURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid URL: %v\n", err)
		os.Exit(1)
	}

	resp, err := http.Get(*pageURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to fetch URL: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	article, err := readability.FromReader(resp.Body, parsed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to parse page: %v\n", err)
		os.Exit(1)
	}

	character := catalog.Character{
		ID:               *id,
		Name:             *name,
		ShortDescription: clip(article.TextContent, *maxShort),
		LongDescription:  clip(article.TextContent, *maxLong),
		Greeting:         "Hello there.",
		Responses:        []string{"Interesting..."},
	}
	if character.Name == "" {
		character.Name = article.Title
	}
	if *tags != "" {
		for _, tag := range strings.Split(*tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				character.Tags = append(character.Tags, tag)
			}
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(character); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// clip collapses whitespace and cuts text to at most n runes on a word
// boundary.
func clip(text string, n int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	cut := string(runes[:n])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "…"
}
