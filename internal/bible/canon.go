// Package bible holds the canonical book table, scripture references and
// the book summaries shown at the top of every hour.
package bible

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"
)

type Testament int

const (
	OldTestament Testament = iota
	NewTestament
)

func (t Testament) String() string {
	if t == NewTestament {
		return "New Testament"
	}
	return "Old Testament"
}

// Book is one canonical book. Verses[i] is the number of verses in chapter i+1.
type Book struct {
	Name      string
	OSIS      string
	Testament Testament
	Verses    []int
}

func (b Book) Chapters() int {
	return len(b.Verses)
}

// VerseCount returns 0 when the chapter does not exist.
func (b Book) VerseCount(chapter int) int {
	if chapter < 1 || chapter > len(b.Verses) {
		return 0
	}
	return b.Verses[chapter-1]
}

func (b Book) TotalVerses() int {
	total := 0
	for _, n := range b.Verses {
		total += n
	}
	return total
}

// Canon is the ordered 66 book table. It is read-only after construction.
type Canon struct {
	books []Book
	index map[string]int
}

var (
	kjvOnce  sync.Once
	kjvCanon *Canon
)

// KJV returns the shared KJV canon.
func KJV() *Canon {
	kjvOnce.Do(func() {
		kjvCanon = NewCanon(kjvBooks)
	})
	return kjvCanon
}

func NewCanon(books []Book) *Canon {
	c := &Canon{
		books: books,
		index: make(map[string]int, len(books)*3),
	}
	for i, b := range books {
		c.index[foldKey(b.Name)] = i
		c.index[foldKey(b.OSIS)] = i
		c.index[foldKey(strings.ReplaceAll(b.Name, " ", ""))] = i
	}
	for alias, name := range bookAliases {
		if i, ok := c.index[foldKey(name)]; ok {
			c.index[foldKey(alias)] = i
		}
	}
	return c
}

// Books returns the book names in canonical order (Genesis..Revelation).
func (c *Canon) Books() []string {
	names := make([]string, len(c.books))
	for i, b := range c.books {
		names[i] = b.Name
	}
	return names
}

func (c *Canon) All() []Book {
	return c.books
}

// Lookup resolves a canonical name, an OSIS id or a common alias case-insensitively.
func (c *Canon) Lookup(name string) (Book, bool) {
	key := foldKey(strings.TrimSuffix(strings.TrimSpace(name), "."))
	i, ok := c.index[key]
	if !ok {
		i, ok = c.index[strings.ReplaceAll(key, " ", "")]
	}
	if !ok {
		return Book{}, false
	}
	return c.books[i], true
}

// Position returns the canonical position of a book, or -1.
func (c *Canon) Position(name string) int {
	i, ok := c.index[foldKey(name)]
	if !ok {
		return -1
	}
	return i
}

func (c *Canon) HasVerse(book string, chapter, verse int) bool {
	b, ok := c.Lookup(book)
	if !ok {
		return false
	}
	return verse >= 1 && verse <= b.VerseCount(chapter)
}

func (c *Canon) TotalVerses() int {
	total := 0
	for _, b := range c.books {
		total += b.TotalVerses()
	}
	return total
}

// LookupBook resolves a book name against the KJV canon.
func LookupBook(name string) (Book, bool) {
	return KJV().Lookup(name)
}

var fold = cases.Fold()

func foldKey(s string) string {
	return strings.Join(strings.Fields(fold.String(s)), " ")
}

var bookAliases = map[string]string{
	"Psalm":           "Psalms",
	"Ps":              "Psalms",
	"Song of Songs":   "Song of Solomon",
	"Canticles":       "Song of Solomon",
	"Revelations":     "Revelation",
	"Apocalypse":      "Revelation",
	"Qoheleth":        "Ecclesiastes",
	"Gen":             "Genesis",
	"Ex":              "Exodus",
	"Exo":             "Exodus",
	"Deut":            "Deuteronomy",
	"Matt":            "Matthew",
	"Mk":              "Mark",
	"Lk":              "Luke",
	"Jn":              "John",
	"Rom":             "Romans",
	"Heb":             "Hebrews",
	"Rev":             "Revelation",
	"I Samuel":        "1 Samuel",
	"II Samuel":       "2 Samuel",
	"I Kings":         "1 Kings",
	"II Kings":        "2 Kings",
	"I Corinthians":   "1 Corinthians",
	"II Corinthians":  "2 Corinthians",
	"I John":          "1 John",
	"II John":         "2 John",
	"III John":        "3 John",
	"I Peter":         "1 Peter",
	"II Peter":        "2 Peter",
	"I Timothy":       "1 Timothy",
	"II Timothy":      "2 Timothy",
	"I Thessalonians": "1 Thessalonians",
}
