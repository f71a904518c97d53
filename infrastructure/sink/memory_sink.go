package sink

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/fixora/auditguard/domain/audit"
)

// MemorySink keeps audit lines in memory, keyed by log name.
type MemorySink struct {
	mu      sync.Mutex
	entries map[string][]string
}

func NewMemorySink() *MemorySink {
	return &MemorySink{entries: make(map[string][]string)}
}

func (s *MemorySink) AppendLine(className, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := audit.LogName(className)
	s.entries[key] = append(s.entries[key], text)
	return nil
}

// Entries returns the text of every append made for className, in order
func (s *MemorySink) Entries(className string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.entries[audit.LogName(className)]
	out := make([]string, len(entries))
	copy(out, entries)
	return out
}

// Lines returns the log for className split into physical lines, as a file
// sink would have written it.
func (s *MemorySink) Lines(className string) []string {
	var lines []string
	for _, entry := range s.Entries(className) {
		lines = append(lines, strings.Split(entry, "\n")...)
	}
	return lines
}

// Reset drops every stored line
func (s *MemorySink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string][]string)
}

// Dump writes every log, sorted by log name, to w.
func (s *MemorySink) Dump(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, err := fmt.Fprintf(w, "==> %s <==\n", name); err != nil {
			return err
		}
		for _, entry := range s.entries[name] {
			if _, err := fmt.Fprintln(w, entry); err != nil {
				return err
			}
		}
	}
	return nil
}
