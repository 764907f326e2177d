package bible

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Reference points at a verse, a passage within one chapter (EndVerse > Verse)
// or, when Chapter is 0, at the summary of a whole book.
type Reference struct {
	Book     string
	Chapter  int
	Verse    int
	EndVerse int
}

func NewReference(book string, chapter, verse int) Reference {
	return Reference{Book: book, Chapter: chapter, Verse: verse}
}

// SummaryOf returns the meta-reference for a book summary.
func SummaryOf(book string) Reference {
	return Reference{Book: book}
}

func (r Reference) IsSummary() bool {
	return r.Chapter == 0
}

func (r Reference) IsRange() bool {
	return r.EndVerse > r.Verse
}

// Verses expands a passage into its single verse references.
func (r Reference) Verses() []Reference {
	if !r.IsRange() {
		return []Reference{r}
	}
	refs := make([]Reference, 0, r.EndVerse-r.Verse+1)
	for v := r.Verse; v <= r.EndVerse; v++ {
		refs = append(refs, NewReference(r.Book, r.Chapter, v))
	}
	return refs
}

func (r Reference) String() string {
	switch {
	case r.IsSummary():
		return fmt.Sprintf("Book of %s Overview", r.Book)
	case r.IsRange():
		return fmt.Sprintf("%s %d:%d-%d", r.Book, r.Chapter, r.Verse, r.EndVerse)
	default:
		return fmt.Sprintf("%s %d:%d", r.Book, r.Chapter, r.Verse)
	}
}

// OSISID returns the osisID form, e.g. "John.3.16".
func (r Reference) OSISID() string {
	b, ok := LookupBook(r.Book)
	osis := r.Book
	if ok {
		osis = b.OSIS
	}
	if r.IsSummary() {
		return osis
	}
	return fmt.Sprintf("%s.%d.%d", osis, r.Chapter, r.Verse)
}

type referenceSyntax struct {
	Book     string `@Book`
	Chapter  int    `@Number`
	Verse    int    `":" @Number`
	EndVerse *int   `( "-" @Number )?`
}

var referenceLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Book", Pattern: `(?:\d\s*)?[A-Za-z]+(?:\s+(?:of\s+)?[A-Za-z]+)*\.?`},
	{Name: "Number", Pattern: `\d+`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Dash", Pattern: `-`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var referenceParser = participle.MustBuild[referenceSyntax](
	participle.Lexer(referenceLexer),
	participle.Elide("Whitespace"),
)

// ParseReference parses "John 3:16", "Luke 2:10-11", "Gen.1.1" or
// "Book of Genesis Overview" and validates it against the KJV canon.
func ParseReference(s string) (Reference, error) {
	return KJV().ParseReference(s)
}

func (c *Canon) ParseReference(s string) (Reference, error) {
	input := strings.TrimSpace(s)
	if book, ok := summaryBook(input); ok {
		b, found := c.Lookup(book)
		if !found {
			return Reference{}, fmt.Errorf("unknown book %q in %q", book, s)
		}
		return SummaryOf(b.Name), nil
	}

	syntax, err := referenceParser.ParseString("", dotsToColon(input))
	if err != nil {
		return Reference{}, fmt.Errorf("referenceParser.ParseString(%q) > %w", s, err)
	}
	b, ok := c.Lookup(syntax.Book)
	if !ok {
		return Reference{}, fmt.Errorf("unknown book %q in %q", syntax.Book, s)
	}
	ref := NewReference(b.Name, syntax.Chapter, syntax.Verse)
	if syntax.EndVerse != nil && *syntax.EndVerse != syntax.Verse {
		if *syntax.EndVerse < syntax.Verse {
			return Reference{}, fmt.Errorf("verse range %d-%d is reversed in %q", syntax.Verse, *syntax.EndVerse, s)
		}
		ref.EndVerse = *syntax.EndVerse
	}

	last := ref.Verse
	if ref.IsRange() {
		last = ref.EndVerse
	}
	if !c.HasVerse(b.Name, ref.Chapter, ref.Verse) || !c.HasVerse(b.Name, ref.Chapter, last) {
		return Reference{}, fmt.Errorf("%s is outside the canon", ref)
	}
	return ref, nil
}

// MustParseReference panics on error. Use it for literals only.
func MustParseReference(s string) Reference {
	ref, err := ParseReference(s)
	if err != nil {
		panic(err)
	}
	return ref
}

func summaryBook(s string) (string, bool) {
	const prefix, suffix = "book of ", " overview"
	lower := strings.ToLower(s)
	if !strings.HasPrefix(lower, prefix) || !strings.HasSuffix(lower, suffix) || len(s) <= len(prefix)+len(suffix) {
		return "", false
	}
	return s[len(prefix) : len(s)-len(suffix)], true
}

// dotsToColon rewrites "Gen.1.1" as "Gen 1:1".
func dotsToColon(s string) string {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return s
	}
	return parts[0] + " " + parts[1] + ":" + parts[2]
}
