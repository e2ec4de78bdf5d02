package sentence_test

import (
	"strings"
	"testing"

	sent "github.com/revelaction/svograph/sentence"
)

const conllu = "# sent_id = 1\n" +
	"# text = The city was attacked.\n" +
	"1\tThe\tthe\tDET\tDT\t_\t2\tdet\t_\t_\n" +
	"2\tcity\tcity\tNOUN\tNN\t_\t4\tnsubj:pass\t_\t_\n" +
	"3\twas\tbe\tAUX\tVBD\t_\t4\taux:pass\t_\t_\n" +
	"4\tattacked\tattack\tVERB\tVBN\t_\t0\troot\t_\tSpaceAfter=No\n" +
	"5\t.\t.\tPUNCT\t.\t_\t4\tpunct\t_\t_\n" +
	"\n" +
	"1\tThey\tthey\tPRON\tPRP\t_\t2\tnsubj\t_\t_\n" +
	"1-2\tThey're\t_\t_\t_\t_\t_\t_\t_\t_\n" +
	"2\tfled\tflee\tVERB\tVBD\t_\t0\tROOT\t_\t_\n"

func TestReadCoNLL(t *testing.T) {
	sentences, err := sent.ReadCoNLL(strings.NewReader(conllu))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sentences) != 2 {
		t.Fatalf("expected 2 sentences, got %d", len(sentences))
	}

	first := sentences[0]
	if first.Text != "The city was attacked." {
		t.Errorf("unexpected text %q", first.Text)
	}

	if len(first.Tokens) != 5 {
		t.Fatalf("expected 5 tokens, got %d", len(first.Tokens))
	}

	if first.Tokens[3].Head != 3 {
		t.Errorf("expected root to point at itself, got %d", first.Tokens[3].Head)
	}

	if first.Tokens[1].Head != 3 {
		t.Errorf("expected head of city to be 3, got %d", first.Tokens[1].Head)
	}

	if first.Tokens[1].Dep != "nsubjpass" || first.Tokens[2].Dep != "auxpass" {
		t.Errorf("universal relations not mapped: %q %q", first.Tokens[1].Dep, first.Tokens[2].Dep)
	}

	if first.Tokens[4].Idx != 21 {
		t.Errorf("expected offset 21 after SpaceAfter=No, got %d", first.Tokens[4].Idx)
	}

	second := sentences[1]
	if second.Id != 1 || len(second.Tokens) != 2 {
		t.Fatalf("unexpected second sentence: id %d, %d tokens", second.Id, len(second.Tokens))
	}

	if _, err := sent.NewTree(second); err != nil {
		t.Errorf("second sentence is not a valid tree: %v", err)
	}
}

func TestReadCoNLLInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"short line", "1\tcity\tcity\n"},
		{"bad head", "1\tcity\tcity\tNOUN\tNN\t_\tx\tROOT\t_\t_\n"},
		{"head out of range", "1\tcity\tcity\tNOUN\tNN\t_\t7\tROOT\t_\t_\n"},
		{"out of sequence", "2\tcity\tcity\tNOUN\tNN\t_\t0\tROOT\t_\t_\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := sent.ReadCoNLL(strings.NewReader(tt.input)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
