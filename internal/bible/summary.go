package bible

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed summaries.yaml
var summariesYAML []byte

var (
	summariesOnce sync.Once
	summaries     map[string]string
	summariesErr  error
)

func loadSummaries() (map[string]string, error) {
	summariesOnce.Do(func() {
		var raw map[string]string
		if err := yaml.Unmarshal(summariesYAML, &raw); err != nil {
			summariesErr = fmt.Errorf("yaml.Unmarshal() > %w", err)
			return
		}
		summaries = make(map[string]string, len(raw))
		for name, text := range raw {
			b, ok := LookupBook(name)
			if !ok {
				summariesErr = fmt.Errorf("summary for unknown book %q", name)
				return
			}
			summaries[b.Name] = text
		}
	})
	return summaries, summariesErr
}

// Summary returns the overview text of a book.
func Summary(book string) (string, bool) {
	all, err := loadSummaries()
	if err != nil {
		return "", false
	}
	b, ok := LookupBook(book)
	if !ok {
		return "", false
	}
	text, ok := all[b.Name]
	return text, ok
}
