// Package reply implements the fast-path keyword responder: an ordered rule
// table matched by substring containment, with templated answers.
package reply

import (
	"math/rand"
	"regexp"
	"strings"
	"sync"
	"time"
)

// fallbackName is substituted for {{name}} when the sender is unknown.
const fallbackName = "ven"

var (
	namePattern  = regexp.MustCompile(`\{\{\s*name\s*\}\}`)
	greetPattern = regexp.MustCompile(`\{\{\s*greet\s*\}\}`)
)

// Responder matches inbound text against the rule table and renders answers.
// The randomness source and clock are injectable so tests can pin both.
type Responder struct {
	rules []Rule

	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// New builds a responder over the given rules with wall-clock time and a
// time-seeded randomness source.
func New(rules []Rule) *Responder {
	return NewWithSource(rules, rand.New(rand.NewSource(time.Now().UnixNano())), time.Now)
}

// NewWithSource builds a responder with an explicit randomness source and
// clock. Tests use a fixed seed to make answer selection deterministic.
func NewWithSource(rules []Rule, rng *rand.Rand, now func() time.Time) *Responder {
	return &Responder{rules: rules, rng: rng, now: now}
}

// Match finds the first rule, in declaration order, with any keyword
// contained in the lowercased text. Containment is deliberately substring
// based, not whole-word: "hej hej" satisfies a "hej" keyword too.
func (r *Responder) Match(text string) (Rule, bool) {
	lower := strings.ToLower(text)
	for _, rule := range r.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(lower, keyword) {
				return rule, true
			}
		}
	}
	return Rule{}, false
}

// Answer picks one of the rule's templates uniformly at random and resolves
// the {{name}} and {{greet}} placeholders.
func (r *Responder) Answer(rule Rule, sender string) string {
	r.mu.Lock()
	template := rule.Answers[r.rng.Intn(len(rule.Answers))]
	hour := r.now().Hour()
	r.mu.Unlock()

	name := sender
	if name == "" {
		name = fallbackName
	}

	answer := namePattern.ReplaceAllString(template, name)
	return greetPattern.ReplaceAllString(answer, Greeting(hour))
}

// Greeting returns the time-of-day greeting for the given local hour.
func Greeting(hour int) string {
	switch {
	case hour < 5:
		return "oppe sent? 🌙"
	case hour < 11:
		return "godmorgen ☀️"
	case hour < 17:
		return "god eftermiddag 🌤️"
	default:
		return "god aften 🌙"
	}
}

// CannedReply is the fixed fallback when no rule matches and the external
// collaborator produced nothing.
func CannedReply(sender string) string {
	if sender == "" {
		sender = fallbackName
	}
	return "Jeg har ikke noget smart svar på det endnu, " + sender + " 🤖"
}
