package sentence

import "strings"

type Doc struct {
	Id int `json:"id"`

	Title string `json:"title"`

	Labels    []string   `json:"labels,omitempty"`
	Sentences []Sentence `json:"sentences"`
}

// Library is a collection of Doc
type Library []Doc

// Sentence is a dependency-parsed sentence as produced by the external
// parser (spacy, stanza or any CoNLL-U emitting tool).
type Sentence struct {
	Id    int `json:"id"`
	DocId int `json:"doc_id"`

	// Text is the sentence as it was given to the parser. When empty it is
	// rebuilt from the tokens.
	Text string `json:"text,omitempty"`

	Tokens []Token `json:"tokens"`

	// Chunks are the base noun phrases found by the parser
	Chunks []Chunk `json:"noun_chunks,omitempty"`
}

// Token represents a word of the sentence, with POS and metadata.
type Token struct {
	Id int `json:"id"`

	// Head is the index (in the sentence) of the syntactic head. The root
	// of the sentence points at itself.
	Head       int    `json:"head"`
	SentenceId int    `json:"sent"`
	Pos        string `json:"pos"`
	Dep        string `json:"dep"`

	// The fine-grained (Penn Treebank) tag, f.ex. VBN
	Tag string `json:"tag"`

	// the index of the start character of the token in the original doc (set by spacy, stanza)
	Idx int `json:"idx"`

	// The unmodified word
	Text string `json:"text"`

	// The lemma of the word
	Lemma string `json:"lemma"`

	// The index of the word in the sentence, starting at 0.
	Index int `json:"index"`
}

// Lower returns the lowercase form of the token text.
func (t Token) Lower() string {
	return strings.ToLower(t.Text)
}

// Chunk is a noun chunk, a flat span [Start, End) of the sentence.
type Chunk struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

// JoinText renders tokens separated by a single space.
func JoinText(tokens []Token) string {
	words := make([]string, 0, len(tokens))
	for _, t := range tokens {
		words = append(words, t.Text)
	}

	return strings.Join(words, " ")
}

// SentenceText returns Text or, when empty, the text rebuilt from the tokens
// using their character offsets.
func (s Sentence) SentenceText() string {
	if s.Text != "" {
		return s.Text
	}

	var str strings.Builder
	var lastIdx, lastLen int
	for i, token := range s.Tokens {
		l := len([]rune(token.Text))
		if i == 0 {
			str.WriteString(token.Text)
			lastIdx = token.Idx
			lastLen = l
			continue
		}

		diff := token.Idx - lastIdx
		switch {
		case diff > lastLen:
			str.WriteString(strings.Repeat(" ", diff-lastLen))
		case diff <= 0:
			// no offsets available
			str.WriteString(" ")
		}

		str.WriteString(token.Text)
		lastIdx = token.Idx
		lastLen = l
	}

	return str.String()
}

// Normalize returns the lookup key of a sentence text: lowercase, with
// whitespace collapsed and trimmed.
func Normalize(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}
