package services

import (
	"regexp"
	"sync"
)

var bannedWords = []string{
	"fuck", "fucking", "fucker", "shit", "shitty", "bullshit",
	"asshole", "bastard", "bitch", "cunt",
	"spam", "scam", "scammer", "phishing",
}

// ContentFilter screens citizen-submitted report descriptions before they
// land in the store. Deliberately mild: descriptions legitimately contain
// street names, numbers, and urgency, so only profanity and obvious spam
// are rejected.
type ContentFilter struct {
	bannedWordRegexps   []*regexp.Regexp
	repeatedCharPattern *regexp.Regexp
	compiled            bool
	mu                  sync.RWMutex
}

func NewContentFilter() *ContentFilter {
	f := &ContentFilter{}
	f.compilePatterns()
	return f
}

func (f *ContentFilter) compilePatterns() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.compiled {
		return
	}

	f.bannedWordRegexps = make([]*regexp.Regexp, 0, len(bannedWords))
	for _, word := range bannedWords {
		pattern := `(?i)\b` + regexp.QuoteMeta(word) + `\b`
		re, err := regexp.Compile(pattern)
		if err == nil {
			f.bannedWordRegexps = append(f.bannedWordRegexps, re)
		}
	}

	f.repeatedCharPattern = regexp.MustCompile(`(?i)(a{6,}|b{6,}|c{6,}|d{6,}|e{6,}|f{6,}|g{6,}|h{6,}|i{6,}|j{6,}|k{6,}|l{6,}|m{6,}|n{6,}|o{6,}|p{6,}|q{6,}|r{6,}|s{6,}|t{6,}|u{6,}|v{6,}|w{6,}|x{6,}|y{6,}|z{6,}|!{4,}|\?{4,}|\.{6,})`)
	f.compiled = true
}

func (f *ContentFilter) Check(text string) (bool, string) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if text == "" {
		return true, ""
	}
	for _, re := range f.bannedWordRegexps {
		if re.MatchString(text) {
			return false, "inappropriate_language"
		}
	}
	if f.repeatedCharPattern.MatchString(text) {
		return false, "spam_detected"
	}
	return true, ""
}

func (f *ContentFilter) RejectionMessage(reason string) string {
	messages := map[string]string{
		"inappropriate_language": "description contains inappropriate language",
		"spam_detected":          "description appears to be spam",
	}
	if msg, ok := messages[reason]; ok {
		return msg
	}
	return "description does not meet content guidelines"
}
