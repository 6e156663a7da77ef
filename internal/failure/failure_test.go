package failure

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
)

func TestError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"message only", New(Inconclusive, "expected 10 lines, found 9", nil), "expected 10 lines, found 9"},
		{"message and cause", New(Collaborator, "crop failed", errors.New("exit status 1")), "crop failed: exit status 1"},
		{"cause only", &Error{Kind: Traversal, Cause: errors.New("permission denied")}, "permission denied"},
		{"tagged", &Error{Kind: InputMalformed, Identifier: "0230_017", Message: "bad json"}, "[0230_017] bad json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTag(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		if Tag("x", nil) != nil {
			t.Error("Tag(nil) should be nil")
		}
	})

	t.Run("untagged failure keeps kind", func(t *testing.T) {
		err := Tag("0230_017", Newf(Inconclusive, "no match"))
		if got := err.Error(); got != "[0230_017] no match" {
			t.Errorf("message: got %q", got)
		}
		if KindOf(err) != Inconclusive {
			t.Errorf("kind: got %s, want %s", KindOf(err), Inconclusive)
		}
		if IdentifierOf(err) != "0230_017" {
			t.Errorf("identifier: got %q", IdentifierOf(err))
		}
	})

	t.Run("plain error wraps", func(t *testing.T) {
		cause := errors.New("disk full")
		err := Tag("a", cause)
		if !errors.Is(err, cause) {
			t.Error("tagged error should wrap its cause")
		}
		if KindOf(err) != Collaborator {
			t.Errorf("kind: got %s, want %s", KindOf(err), Collaborator)
		}
	})

	t.Run("wrapped failure keeps kind", func(t *testing.T) {
		inner := New(DictionaryUnavailable, "open words", errors.New("no such file"))
		err := Tag("b", fmt.Errorf("reconstruct: %w", inner))
		if KindOf(err) != DictionaryUnavailable {
			t.Errorf("kind: got %s", KindOf(err))
		}
	})
}

func TestCollector(t *testing.T) {
	var c Collector
	if c.Err() != nil {
		t.Fatal("empty collector should report no error")
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.Add(Tag(fmt.Sprintf("id%02d", i), Newf(Collaborator, "boom")))
		}(i)
	}
	wg.Wait()
	c.Add(nil)

	if c.Len() != 50 {
		t.Fatalf("Len: got %d, want 50", c.Len())
	}

	err := c.Err()
	var many *Many
	if !errors.As(err, &many) {
		t.Fatalf("Err should return *Many, got %T", err)
	}
	if len(many.Errors) != 50 {
		t.Errorf("collected: got %d, want 50", len(many.Errors))
	}
	if !strings.HasPrefix(err.Error(), "some errors occurred:\n\t[id") {
		t.Errorf("unexpected aggregate message: %q", err.Error())
	}

	var fe *Error
	if !errors.As(err, &fe) {
		t.Error("errors.As should reach collected *Error values")
	}
}
