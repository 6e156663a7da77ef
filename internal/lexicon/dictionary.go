// Package lexicon answers whether text is made only of known words.
//
// A Dictionary is loaded from a newline-separated word list (typically
// /usr/share/dict/words) plus a fixed set of extra words. Loading happens at
// most once, on first use, and the word set is read-only afterwards, so a
// single Dictionary can be shared by every worker of a batch.
package lexicon

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"unicode"

	"github.com/ironsheep/label-extract/internal/failure"
)

// DefaultPath is the system word list.
const DefaultPath = "/usr/share/dict/words"

// DefaultExtras are product terms missing from general word lists.
var DefaultExtras = []string{"handpainted", "stardust"}

// Dictionary is a lazily loaded, case-insensitive word set.
type Dictionary struct {
	path   string
	extras []string

	once  sync.Once
	words map[string]struct{}
	err   error
}

// New returns a dictionary that loads path on first use and adds extras.
func New(path string, extras ...string) *Dictionary {
	return &Dictionary{path: path, extras: extras}
}

// FromWords returns an already loaded dictionary.
func FromWords(words ...string) *Dictionary {
	d := &Dictionary{}
	d.once.Do(func() {
		d.words = make(map[string]struct{}, len(words))
		for _, w := range words {
			d.add(w)
		}
	})
	return d
}

// Load forces the one-time load and returns its result. Every call after a
// failed load returns the same failure.
func (d *Dictionary) Load() error {
	d.once.Do(func() {
		d.words, d.err = d.load()
	})
	return d.err
}

func (d *Dictionary) load() (map[string]struct{}, error) {
	f, err := os.Open(d.path)
	if err != nil {
		return nil, failure.New(failure.DictionaryUnavailable, "failed to open word list", err)
	}
	defer f.Close()

	d.words = make(map[string]struct{}, 1<<17)
	if err := d.read(f); err != nil {
		return nil, failure.New(failure.DictionaryUnavailable, fmt.Sprintf("failed to read %s", d.path), err)
	}
	for _, w := range d.extras {
		d.add(w)
	}
	return d.words, nil
}

func (d *Dictionary) read(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		d.add(scanner.Text())
	}
	return scanner.Err()
}

func (d *Dictionary) add(word string) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word != "" {
		d.words[word] = struct{}{}
	}
}

// Len returns the number of distinct words, loading if needed.
func (d *Dictionary) Len() (int, error) {
	if err := d.Load(); err != nil {
		return 0, err
	}
	return len(d.words), nil
}

// IsKnown reports whether word is in the dictionary, ignoring case.
func (d *Dictionary) IsKnown(word string) (bool, error) {
	if err := d.Load(); err != nil {
		return false, err
	}
	_, ok := d.words[strings.ToLower(word)]
	return ok, nil
}

// FullyKnown reports whether every token of text is a known word. Tokens are
// separated by whitespace and ASCII punctuation; text with no tokens is
// trivially known.
func (d *Dictionary) FullyKnown(text string) (bool, error) {
	if err := d.Load(); err != nil {
		return false, err
	}
	for _, tok := range Tokens(text) {
		if _, ok := d.words[strings.ToLower(tok)]; !ok {
			return false, nil
		}
	}
	return true, nil
}

// Tokens splits text on whitespace and ASCII punctuation, dropping empty tokens.
func Tokens(text string) []string {
	return strings.FieldsFunc(text, isSeparator)
}

func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || isASCIIPunct(r)
}

func isASCIIPunct(r rune) bool {
	return (r >= '!' && r <= '/') || (r >= ':' && r <= '@') ||
		(r >= '[' && r <= '`') || (r >= '{' && r <= '~')
}
