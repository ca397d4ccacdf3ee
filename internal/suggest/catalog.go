// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package suggest

import "strings"

// defaultQuestions are the starter prompts of the Allora assistant.
var defaultQuestions = []string{
	"What is the Allora Network?",
	"What role do worker nodes play in the network?",
	"What are the different layers of the network?",
	"What are the main defining characteristics of Allora?",
	"What are the differences between Reputers and Validators?",
	"How do consumers access inferences within Allora?",
	"What role does context awareness play in Allora's design, and how is it achieved through forecasting tasks?",
	"How does Allora ensure the reliability and security of the network?",
	"How does the tokenomics design of the Allora token (ALLO) ensure long-term network sustainability?",
}

// Catalog is a fixed, de-duplicated list of suggested questions.
// The zero value is an empty catalog.
type Catalog struct {
	questions []string
}

// NewCatalog builds a catalog from questions. Entries are trimmed, blank
// entries are dropped and duplicates keep their first position.
func NewCatalog(questions ...string) Catalog {
	seen := make(map[string]struct{}, len(questions))
	out := make([]string, 0, len(questions))
	for _, q := range questions {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		if _, dup := seen[q]; dup {
			continue
		}
		seen[q] = struct{}{}
		out = append(out, q)
	}
	return Catalog{questions: out}
}

// DefaultCatalog returns the built-in Allora questions.
func DefaultCatalog() Catalog {
	return NewCatalog(defaultQuestions...)
}

// Len returns the number of questions.
func (c Catalog) Len() int {
	return len(c.questions)
}

// Questions returns a copy of the catalog entries in order.
func (c Catalog) Questions() []string {
	out := make([]string, len(c.questions))
	copy(out, c.questions)
	return out
}

// Contains reports whether q is a catalog entry.
func (c Catalog) Contains(q string) bool {
	for _, existing := range c.questions {
		if existing == q {
			return true
		}
	}
	return false
}
