package sentence

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadCoNLL reads sentences in CoNLL-U format. Heads are 1-based with 0 for
// the root; they are converted to sentence indexes, the root pointing at
// itself. Multiword token ranges and empty nodes are skipped. The "# text ="
// comment, when present, becomes the sentence text.
func ReadCoNLL(r io.Reader) ([]Sentence, error) {
	var sentences []Sentence
	var cur Sentence
	var heads []int
	offset := 0

	flush := func() error {
		if len(cur.Tokens) == 0 {
			return nil
		}

		for i := range cur.Tokens {
			h := heads[i]
			if h == 0 {
				cur.Tokens[i].Head = i
				continue
			}

			if h < 0 || h > len(cur.Tokens) {
				return fmt.Errorf("sentence %d: token %d has head %d out of range", len(sentences), i+1, h)
			}

			cur.Tokens[i].Head = h - 1
		}

		cur.Id = len(sentences)
		sentences = append(sentences, cur)
		cur = Sentence{}
		heads = nil
		offset = 0
		return nil
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")

		if strings.TrimSpace(text) == "" {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}

		if strings.HasPrefix(text, "#") {
			if v, ok := strings.CutPrefix(text, "# text ="); ok {
				cur.Text = strings.TrimSpace(v)
			}
			continue
		}

		fields := strings.Split(text, "\t")
		if len(fields) < 8 {
			return nil, fmt.Errorf("line %d: expected 10 tab separated fields, got %d", line, len(fields))
		}

		// 1-2 multiword ranges and 1.1 empty nodes
		if strings.ContainsAny(fields[0], "-.") {
			continue
		}

		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid token id %q: %w", line, fields[0], err)
		}

		if id != len(cur.Tokens)+1 {
			return nil, fmt.Errorf("line %d: token id %d out of sequence", line, id)
		}

		head, err := strconv.Atoi(fields[6])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid head %q: %w", line, fields[6], err)
		}

		tok := Token{
			Id:         id - 1,
			Index:      id - 1,
			SentenceId: len(sentences),
			Text:       fields[1],
			Lemma:      fields[2],
			Pos:        fields[3],
			Tag:        fields[4],
			Dep:        depLabel(fields[7]),
			Idx:        offset,
		}

		offset += len([]rune(tok.Text))
		if len(fields) < 10 || !strings.Contains(fields[9], "SpaceAfter=No") {
			offset++
		}

		cur.Tokens = append(cur.Tokens, tok)
		heads = append(heads, head)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if err := flush(); err != nil {
		return nil, err
	}

	return sentences, nil
}

// Universal Dependencies v2 relations that differ from the ClearNLP labels
// the extractor works with.
var udLabels = map[string]string{
	"obj":        "dobj",
	"iobj":       "dative",
	"nsubj:pass": "nsubjpass",
	"csubj:pass": "csubjpass",
	"aux:pass":   "auxpass",
	"obl:agent":  "agent",
}

func depLabel(dep string) string {
	if l, ok := udLabels[dep]; ok {
		return l
	}

	return dep
}
