package nlp

import (
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	strictNameScore = 1.0
	looseNameScore  = 0.6

	minPhoneDigits = 6
	maxPhoneDigits = 15
	phoneDigits    = 10

	maxStrictNameWords = 3
)

var (
	slotIDPattern       = regexp.MustCompile(`(?i)\bSL\d{2,}\b`)
	bookingIDPattern    = regexp.MustCompile(`(?i)\bBK[0-9A-Z]*\d[0-9A-Z]*\b`)
	isoDatePattern      = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)
	relativeDatePattern = regexp.MustCompile(`(?i)\b(today|tomorrow)\b`)

	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\(\d{3}\)\s*\d{3}[-.\s]\d{4}\b`),
		regexp.MustCompile(`\b\d{3}[-.\s]\d{3}[-.\s]\d{4}\b`),
		regexp.MustCompile(`\b\d{10}\b`),
	}
	phoneCandidatePattern = regexp.MustCompile(`\+?\b\d[\d\-. ]{4,}\d\b`)

	wordPattern     = regexp.MustCompile(`\p{L}[\p{L}'\-]*`)
	nameWordPattern = regexp.MustCompile(`^\p{L}[\p{L}'\-]*$`)
)

// Words that never start or continue a person name on top of the classifier triggers.
var nameBlocklist = []string{
	"name", "names", "called", "this", "it", "hi", "hello", "hey", "ok", "okay",
	"yes", "no", "yeah", "sure", "thanks", "thank", "sir", "madam", "mr", "mrs",
	"ms", "dr", "slot", "slots", "booking", "book", "phone", "number", "mobile",
	"contact", "am", "pm", "today", "tomorrow", "monday", "tuesday", "wednesday",
	"thursday", "friday", "saturday", "sunday", "january", "february", "march",
	"april", "may", "june", "july", "august", "september", "october", "november",
	"december", "hair", "haircut", "cut", "wash", "beard", "trim", "color", "colour",
	"facial", "massage", "kids", "makeover", "bridal", "package", "custom", "service",
	"jusbook", "also", "just", "then", "now", "again", "instead", "only",
	"dear", "team", "regards", "please", "im", "its", "myself", "here",
}

// Suffixes that make a word a contraction ("I'm", "it's") rather than a name ("O'Brien").
var contractionSuffixes = map[string]bool{
	"s": true, "m": true, "re": true, "ll": true, "ve": true, "d": true, "t": true,
}

type span struct {
	start int
	end   int
}

type spans []span

func (s spans) overlaps(start, end int) bool {
	for _, sp := range s {
		if start < sp.end && sp.start < end {
			return true
		}
	}
	return false
}

type Extractor struct {
	normalizer *Normalizer
	vocabulary map[string]bool
}

func NewExtractor(normalizer *Normalizer, vocabulary []string) *Extractor {
	vocab := make(map[string]bool, len(vocabulary)+len(nameBlocklist))
	for _, word := range vocabulary {
		vocab[strings.ToLower(word)] = true
	}
	for _, word := range nameBlocklist {
		vocab[word] = true
	}

	return &Extractor{
		normalizer: normalizer,
		vocabulary: vocab,
	}
}

// Extract finds entities in raw text. Spans claimed by one kind are never
// reused by another: ids first, then dates, phones and finally names.
func (e *Extractor) Extract(raw string) Entities {
	var (
		result  Entities
		claimed spans
	)

	add := func(kind EntityKind, value string, start, end int, score float64) {
		result.Items = append(result.Items, Entity{
			Kind:  kind,
			Value: value,
			Raw:   raw[start:end],
			Start: start,
			End:   end,
			Score: score,
		})
		claimed = append(claimed, span{start, end})
	}

	for _, loc := range slotIDPattern.FindAllStringIndex(raw, -1) {
		add(EntitySlotID, strings.ToUpper(raw[loc[0]:loc[1]]), loc[0], loc[1], 1.0)
	}

	for _, loc := range bookingIDPattern.FindAllStringIndex(raw, -1) {
		if claimed.overlaps(loc[0], loc[1]) {
			continue
		}
		add(EntityBookingID, strings.ToUpper(raw[loc[0]:loc[1]]), loc[0], loc[1], 1.0)
	}

	for _, loc := range isoDatePattern.FindAllStringIndex(raw, -1) {
		value := raw[loc[0]:loc[1]]
		if _, err := time.Parse(time.DateOnly, value); err != nil {
			continue
		}
		add(EntityDate, value, loc[0], loc[1], 1.0)
	}
	for _, loc := range relativeDatePattern.FindAllStringIndex(raw, -1) {
		add(EntityDate, strings.ToLower(raw[loc[0]:loc[1]]), loc[0], loc[1], 1.0)
	}

	for _, pattern := range phonePatterns {
		for _, loc := range pattern.FindAllStringIndex(raw, -1) {
			if claimed.overlaps(loc[0], loc[1]) {
				continue
			}
			add(EntityPhone, digitsOnly(raw[loc[0]:loc[1]]), loc[0], loc[1], 1.0)
		}
	}

	for _, loc := range phoneCandidatePattern.FindAllStringIndex(raw, -1) {
		if claimed.overlaps(loc[0], loc[1]) {
			continue
		}
		candidate := raw[loc[0]:loc[1]]
		digits := nationalDigits(candidate)
		if len(digits) == phoneDigits {
			add(EntityPhone, digits, loc[0], loc[1], 1.0)
			continue
		}
		digits = digitsOnly(candidate)
		if len(digits) < minPhoneDigits || len(digits) > maxPhoneDigits {
			continue
		}
		result.Invalid = append(result.Invalid, InvalidEntity{
			Kind:   EntityPhone,
			Raw:    strings.TrimSpace(raw[loc[0]:loc[1]]),
			Reason: "phone number must have exactly 10 digits",
		})
		claimed = append(claimed, span{loc[0], loc[1]})
	}

	names := e.strictNames(raw, claimed)
	for _, name := range names {
		add(EntityPersonName, name.Value, name.Start, name.End, name.Score)
	}

	if len(names) == 0 && (result.Has(EntityPhone) || strings.Contains(raw, ",")) {
		if name, ok := e.looseName(raw, claimed); ok {
			result.Items = append(result.Items, name)
		}
	}

	sort.SliceStable(result.Items, func(i, j int) bool {
		return result.Items[i].Start < result.Items[j].Start
	})

	return result
}

// strictNames collects runs of two or more capitalised words separated only by
// whitespace. Longer runs keep their last words, the ones nearest the contact.
func (e *Extractor) strictNames(raw string, claimed spans) []Entity {
	var (
		names []Entity
		run   []span
	)

	flush := func() {
		if len(run) > maxStrictNameWords {
			run = run[len(run)-maxStrictNameWords:]
		}
		if len(run) >= 2 {
			words := make([]string, 0, len(run))
			for _, w := range run {
				words = append(words, raw[w.start:w.end])
			}
			start, end := run[0].start, run[len(run)-1].end
			names = append(names, Entity{
				Kind:  EntityPersonName,
				Value: strings.Join(words, " "),
				Raw:   raw[start:end],
				Start: start,
				End:   end,
				Score: strictNameScore,
			})
		}
		run = nil
	}

	for _, loc := range wordPattern.FindAllStringIndex(raw, -1) {
		start, end := loc[0], loc[1]
		word := raw[start:end]

		if !e.isNameCandidate(word, true) || touchesDigit(raw, start, end) || claimed.overlaps(start, end) {
			flush()
			continue
		}

		if len(run) > 0 && strings.TrimSpace(raw[run[len(run)-1].end:start]) != "" {
			flush()
		}
		run = append(run, span{start, end})
	}
	flush()

	return names
}

// looseName accepts an uncapitalised name when the message is shaped like a
// "name, contact" reply: the first comma separated segment holding 2 to 4
// plain words once ids, phones and filler are stripped.
func (e *Extractor) looseName(raw string, claimed spans) (Entity, bool) {
	masked := []byte(raw)
	for _, sp := range claimed {
		for i := sp.start; i < sp.end; i++ {
			masked[i] = ','
		}
	}

	offset := 0
	for _, segment := range strings.Split(string(masked), ",") {
		segStart := offset
		offset += len(segment) + 1

		words := strings.Fields(strings.Trim(segment, ".;:!?"))
		for len(words) > 0 && e.isFiller(words[0]) {
			words = words[1:]
		}
		for len(words) > 0 && e.isFiller(words[len(words)-1]) {
			words = words[:len(words)-1]
		}
		if len(words) < 2 || len(words) > 4 {
			continue
		}

		ok := true
		for _, word := range words {
			if !e.isNameCandidate(word, false) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}

		joined := strings.Join(words, " ")
		start := segStart + strings.Index(segment, words[0])
		end := start + len(joined)
		if end > len(raw) || raw[start:end] != joined {
			end = start + len(words[0])
		}

		return Entity{
			Kind:  EntityPersonName,
			Value: cases.Title(language.English).String(strings.ToLower(joined)),
			Raw:   raw[start:end],
			Start: start,
			End:   end,
			Score: looseNameScore,
		}, true
	}

	return Entity{}, false
}

func (e *Extractor) isFiller(word string) bool {
	lower := strings.ToLower(strings.Trim(word, ".;:!?'\""))
	return e.vocabulary[lower] || e.normalizer.IsStopWord(lower)
}

func (e *Extractor) isNameCandidate(word string, requireCapital bool) bool {
	if !nameWordPattern.MatchString(word) || utf8.RuneCountInString(word) < 2 {
		return false
	}
	lower := strings.ToLower(word)
	if e.vocabulary[lower] || e.normalizer.IsStopWord(lower) || isContraction(lower) {
		return false
	}
	if requireCapital {
		first, _ := utf8.DecodeRuneInString(word)
		return unicode.IsUpper(first)
	}
	return true
}

func isContraction(lower string) bool {
	i := strings.LastIndexAny(lower, "'’")
	if i < 0 {
		return false
	}
	_, size := utf8.DecodeRuneInString(lower[i:])
	return contractionSuffixes[lower[i+size:]]
}

func touchesDigit(raw string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(raw[:start])
		if unicode.IsDigit(r) {
			return true
		}
	}
	if end < len(raw) {
		r, _ := utf8.DecodeRuneInString(raw[end:])
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// nationalDigits returns the digits of s without a "+91" or trunk "0" prefix.
func nationalDigits(s string) string {
	digits := digitsOnly(s)
	switch {
	case len(digits) == phoneDigits+2 && strings.HasPrefix(strings.TrimSpace(s), "+91"):
		return digits[2:]
	case len(digits) == phoneDigits+1 && digits[0] == '0':
		return digits[1:]
	}
	return digits
}

// NormalizePhone reduces a phone number to its 10 national digits and reports
// whether it is valid.
func NormalizePhone(s string) (string, bool) {
	digits := nationalDigits(s)
	return digits, len(digits) == phoneDigits
}
