// Package verse is the verse store: scripture text keyed by reference and translation.
package verse

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/at-ishikawa/bibleclock/internal/bible"
)

type Translation string

const (
	KJV       Translation = "KJV"
	Amplified Translation = "AMP"
)

func (t Translation) DisplayName() string {
	switch t {
	case Amplified:
		return "Amplified"
	default:
		return "KJV"
	}
}

var ErrNotFound = errors.New("verse not found")

// NotFoundError reports a reference the store cannot supply.
type NotFoundError struct {
	Reference   bible.Reference
	Translation Translation
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s text not found for %s", e.Translation, e.Reference)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// Lookup is the read side of the store used by the selector.
type Lookup interface {
	Lookup(ref bible.Reference, translation Translation) (string, bool)
}

// Store holds verse text per translation. Datasets are loaded once at
// startup; Put adds records fetched later and is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	texts map[Translation]map[bible.Reference]string
}

func NewStore() *Store {
	return &Store{
		texts: map[Translation]map[bible.Reference]string{
			KJV:       {},
			Amplified: {},
		},
	}
}

func (s *Store) Put(ref bible.Reference, translation Translation, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	texts, ok := s.texts[translation]
	if !ok {
		texts = map[bible.Reference]string{}
		s.texts[translation] = texts
	}
	texts[ref] = text
}

// Lookup returns the text of a verse. A passage is found only when every
// verse in it is present, and its texts are joined with a space.
func (s *Store) Lookup(ref bible.Reference, translation Translation) (string, bool) {
	if ref.IsSummary() {
		return "", false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	texts := s.texts[translation]
	verses := ref.Verses()
	parts := make([]string, 0, len(verses))
	for _, v := range verses {
		text, ok := texts[v]
		if !ok {
			return "", false
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, " "), true
}

func (s *Store) Len(translation Translation) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.texts[translation])
}

// References returns the stored references of a translation in canonical order.
func (s *Store) References(translation Translation) []bible.Reference {
	s.mu.RLock()
	refs := make([]bible.Reference, 0, len(s.texts[translation]))
	for ref := range s.texts[translation] {
		refs = append(refs, ref)
	}
	s.mu.RUnlock()

	canon := bible.KJV()
	sort.Slice(refs, func(i, j int) bool {
		a, b := refs[i], refs[j]
		if pa, pb := canon.Position(a.Book), canon.Position(b.Book); pa != pb {
			return pa < pb
		}
		if a.Chapter != b.Chapter {
			return a.Chapter < b.Chapter
		}
		return a.Verse < b.Verse
	})
	return refs
}

// Index returns a snapshot of the KJV verses present, in the shape the
// resolver reads.
func (s *Store) Index() *Index {
	idx := &Index{present: map[bible.Reference]struct{}{}}
	seen := map[string]bool{}
	for _, ref := range s.References(KJV) {
		idx.present[bible.NewReference(ref.Book, ref.Chapter, ref.Verse)] = struct{}{}
		if !seen[ref.Book] {
			seen[ref.Book] = true
			idx.books = append(idx.books, ref.Book)
		}
	}
	return idx
}

// Index is a dataset derived view of which verses exist.
type Index struct {
	books   []string
	present map[bible.Reference]struct{}
}

func (idx *Index) Books() []string {
	return idx.books
}

func (idx *Index) HasVerse(book string, chapter, verse int) bool {
	_, ok := idx.present[bible.NewReference(book, chapter, verse)]
	return ok
}

func (idx *Index) Len() int {
	return len(idx.present)
}

// Missing lists the canonical verses absent from the store, at most limit of them.
func Missing(lookup Lookup, canon *bible.Canon, limit int) (int, []bible.Reference) {
	count := 0
	var missing []bible.Reference
	for _, b := range canon.All() {
		for chapter, verses := range b.Verses {
			for v := 1; v <= verses; v++ {
				ref := bible.NewReference(b.Name, chapter+1, v)
				if _, ok := lookup.Lookup(ref, KJV); ok {
					continue
				}
				count++
				if len(missing) < limit {
					missing = append(missing, ref)
				}
			}
		}
	}
	return count, missing
}
