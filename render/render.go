package render

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/revelaction/svograph/match"
	sent "github.com/revelaction/svograph/sentence"
	"github.com/revelaction/svograph/svo"
)

const (
	partialOffset = 6
	Defaultformat = "all"
)

var (
	Black   = "\033[1;30m"
	Red     = "\033[1;31m"
	Green   = "\033[1;32m"
	Yellow  = "\033[0;33m"
	Purple  = "\033[1;34m"
	Magenta = "\033[1;35m"
	Teal    = "\033[1;36m"
	Gray    = "\033[0;37m"
	White   = "\033[1;37m"
	Off     = "\033[0m"
	//Yellow256  = "\033[1;38;5;202m"
	Yellow256 = "\033[1;38;5;130m"
	Grey256   = "\033[1;38;5;145m"
	Green256  = "\033[1;38;5;70m"
	ClearLine = "\033[K"
)

// SupportedFormats are the sentence formats, in NextFormat order.
//
// all: print all sentence
// part: print the surrounding of the passive spans, cut the rest.
// tokens: print the sentence and a table of its tokens
func SupportedFormats() []string {
	return []string{"all", "part", "tokens"}
}

type Renderer struct {
	W io.Writer

	HasColor bool

	HasPrefix bool

	// Format determines the format of the sentence, see SupportedFormats
	Format string
}

func NewRenderer() *Renderer {
	return &Renderer{W: os.Stdout, Format: Defaultformat}
}

// Sentence prints the sentence with the passive spans highlighted, and the
// token table in the "tokens" format.
func (r *Renderer) Sentence(s sent.Sentence, spans []match.Span) {
	highlighted := spanTokens(s.Tokens, spans)

	var text string
	switch r.Format {
	case "part":
		text = r.syntagma(s.Tokens, highlighted)
	default:
		text = r.sentence(s.Tokens, highlighted)
	}

	fmt.Fprintf(r.W, "%s%s\n", r.prefixSentence(s), strings.ReplaceAll(text, "\n", " "))

	if r.Format == "tokens" {
		r.Tokens(s.Tokens)
	}
}

// SentenceString returns the text of the sentence rebuilt from the token
// offsets, with the tokens in matches highlighted.
func (r *Renderer) SentenceString(s []sent.Token, matches []sent.Token) string {
	text := r.sentence(s, matches)
	return strings.ReplaceAll(text, "\n", " ")
}

// Tokens prints one row per token: index, text, lemma, pos, tag, dep and
// head.
func (r *Renderer) Tokens(tokens []sent.Token) {
	tw := tabwriter.NewWriter(r.W, 0, 4, 2, ' ', 0)
	for _, t := range tokens {
		head := fmt.Sprintf("%d", t.Head)
		if t.Head == t.Index {
			head = "-"
		}
		fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\t%s\t%s\t%s\n", t.Index, t.Text, t.Lemma, t.Pos, t.Tag, t.Dep, head)
	}
	tw.Flush()
}

// Triples prints one triple per line, negated verbs in red.
func (r *Renderer) Triples(triples []svo.Triple, prefix string) {
	for _, t := range triples {
		fmt.Fprintf(r.W, "%s%s\n", prefix, r.TripleString(t))
	}
}

func (r *Renderer) TripleString(t svo.Triple) string {
	if !r.HasColor {
		return t.String()
	}

	verbColor := Yellow256
	if t.Negated() {
		verbColor = Red
	}

	return fmt.Sprintf("(%s, %s, %s)", Green256+t.Subject+Off, verbColor+t.Verb+Off, Green256+t.Object+Off)
}

// Record prints a triple store record: the sentence and its triples.
func (r *Renderer) Record(n int, rec Record) {
	prefix := ""
	if r.HasPrefix {
		prefix = fmt.Sprintf("[%5d] ✍  ", n)
	}

	fmt.Fprintf(r.W, "%s%s\n", prefix, rec.Sentence)
	r.Triples(rec.Triples, strings.Repeat(" ", len([]rune(prefix)))+"  ")
}

func (r *Renderer) sentence(sentence, matches []sent.Token) string {
	var str strings.Builder
	var lastIdx, lastLen int
	for i, token := range sentence {
		l := len([]rune(token.Text))
		if i == 0 {
			str.WriteString(colorToken(token, matches, r.HasColor))
			lastIdx = token.Idx
			lastLen = l
			continue
		}

		// tokens without offsets (hand built sentences) are joined by a space
		if token.Idx == 0 {
			str.WriteString(" ")
			str.WriteString(colorToken(token, matches, r.HasColor))
			lastLen = l
			continue
		}

		// the `idx` field is the rune offset of the token in the sentence.
		// Tokens sharing the offset of the previous one are not repeated.
		diff := token.Idx - lastIdx

		if diff > 0 {
			if gap := diff - lastLen; gap > 0 {
				str.WriteString(strings.Repeat(" ", gap))
			}
			str.WriteString(colorToken(token, matches, r.HasColor))
		}

		lastIdx = token.Idx
		lastLen = l
	}

	return str.String()
}

func (r *Renderer) syntagma(sentence, matches []sent.Token) string {
	// if not matches, we print the whole sentence
	if len(matches) == 0 {
		return r.sentence(sentence, matches)
	}

	firstMatchIndex := matches[0].Index
	lastMatchIndex := matches[0].Index
	for _, mt := range matches {
		if mt.Index < firstMatchIndex {
			firstMatchIndex = mt.Index
		}
		if mt.Index > lastMatchIndex {
			lastMatchIndex = mt.Index
		}
	}

	lastTokenIndex := len(sentence) - 1

	syntagmaFirstIdx := 0
	syntagmaLastIdx := lastTokenIndex

	if firstMatchIndex > partialOffset {
		syntagmaFirstIdx = firstMatchIndex - partialOffset
	}

	if lastTokenIndex-lastMatchIndex > partialOffset {
		syntagmaLastIdx = lastMatchIndex + partialOffset
	}

	return r.sentence(sentence[syntagmaFirstIdx:syntagmaLastIdx+1], matches)
}

func spanTokens(tokens []sent.Token, spans []match.Span) []sent.Token {
	matched := []sent.Token{}
	for _, sp := range spans {
		if sp.Start < 0 || sp.End > len(tokens) || sp.Start >= sp.End {
			continue
		}
		matched = append(matched, sp.Tokens(tokens)...)
	}
	return matched
}

func colorToken(token sent.Token, matches []sent.Token, hasColor bool) string {
	if !hasColor {
		return token.Text
	}

	for _, mt := range matches {
		if mt.Index == token.Index {
			return Green256 + token.Text + Off
		}
	}

	return token.Text
}

func (r *Renderer) prefixSentence(s sent.Sentence) string {
	if !r.HasPrefix {
		return ""
	}

	return fmt.Sprintf("[%3d %5d] ✍  ", s.DocId, s.Id)
}

// NextFormat sets the Renderer Format option to a different one, following
// the SupportedFormats() order.
func (r *Renderer) NextFormat() {
	supported := SupportedFormats()
	for i, format := range supported {
		if format == r.Format {
			r.Format = supported[(i+1)%len(supported)]
			return
		}
	}

	r.Format = Defaultformat
}

func (r *Renderer) NextPrefix() {
	// toggle
	r.HasPrefix = !r.HasPrefix
}
