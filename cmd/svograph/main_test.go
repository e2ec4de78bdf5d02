package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const conllu = "# text = the turks attacked the kurds.\n" +
	"1\tthe\tthe\tDET\tDT\t_\t2\tdet\t_\t_\n" +
	"2\tturks\tturk\tPROPN\tNNPS\t_\t3\tnsubj\t_\t_\n" +
	"3\tattacked\tattack\tVERB\tVBD\t_\t0\tROOT\t_\t_\n" +
	"4\tthe\tthe\tDET\tDT\t_\t5\tdet\t_\t_\n" +
	"5\tkurds\tkurd\tPROPN\tNNPS\t_\t3\tobj\t_\tSpaceAfter=No\n" +
	"6\t.\t.\tPUNCT\t.\t_\t3\tpunct\t_\t_\n" +
	"\n"

const sentences = "id,pid,sentence\n" +
	"1,1,The Turks attacked the Kurds.\n" +
	"2,1,Nothing happened here.\n"

const groups = "group_name,group_type\n" +
	"kurds,ingroup\n" +
	"turks,outgroup\n"

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	ui := UI{Out: &out, Err: &errOut}

	err := newApp(ui).Run(append([]string{"svograph"}, args...))
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestVersion(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	out, _, err := run(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}

	if !strings.HasPrefix(out, "svograph version dev") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestConfigShow(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SVOGRAPH_NEO4J_PASSWORD", "secret")

	out, _, err := run(t, "--workers", "3", "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}

	if !strings.Contains(out, "workers: 3") {
		t.Errorf("expected workers flag in output:\n%s", out)
	}

	if strings.Contains(out, "secret") {
		t.Errorf("password not masked:\n%s", out)
	}
}

func TestInvalidLogLevel(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if _, _, err := run(t, "--log-level", "loud", "version"); err == nil {
		t.Fatalf("expected error for invalid log level")
	}
}

func TestExtractAndNetwork(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	dir := t.TempDir()
	dataDir := filepath.Join(dir, "data")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	writeFile(t, filepath.Join(dataDir, "NSM_corpus_cleaned.csv"), sentences)
	writeFile(t, filepath.Join(dataDir, "NSM_ingroups_outgroups.csv"), groups)
	parsed := filepath.Join(dir, "news.conllu")
	writeFile(t, parsed, conllu)

	common := []string{
		"--quiet",
		"--log-level", "error",
		"--data_dir", dataDir,
		"--doc-path", filepath.Join(dir, "parsed"),
		"--json_dir", filepath.Join(dir, "json"),
		"--save_dir", filepath.Join(dir, "save"),
	}

	out, _, err := run(t, append(common, "import", parsed)...)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out, "imported 1 docs (1 sentences)") {
		t.Errorf("unexpected import output %q", out)
	}

	out, _, err = run(t, append(common, "extract")...)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !strings.Contains(out, "Sentences: 2, with groups: 1") {
		t.Errorf("unexpected extract output %q", out)
	}

	data, err := os.ReadFile(filepath.Join(dir, "json", "SVOs.json"))
	if err != nil {
		t.Fatalf("reading triple store: %v", err)
	}
	if !strings.Contains(string(data), `"sentence":"the turks attacked the kurds."`) {
		t.Errorf("unexpected triple store:\n%s", data)
	}

	out, _, err = run(t, append(common, "network")...)
	if err != nil {
		t.Fatalf("network: %v", err)
	}
	if !strings.HasPrefix(out, "Nodes: 3, in edges: 0, out edges: 2, triples: 1") {
		t.Errorf("unexpected network output %q", out)
	}

	nodes, err := os.ReadFile(filepath.Join(dir, "save", "nodes.csv"))
	if err != nil {
		t.Fatalf("reading nodes: %v", err)
	}

	want := "name,type,Id\nturks,outgroup,0\nattack,verb,1\nkurds,ingroup,2\n"
	if string(nodes) != want {
		t.Errorf("unexpected nodes:\n%s", nodes)
	}

	out, _, err = run(t, append(common, "stat", "--top", "1")...)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !strings.Contains(out, "Num sentences 1, num triples 1") || !strings.Contains(out, "attacked") {
		t.Errorf("unexpected stat output %q", out)
	}
}

func TestNetworkMissingStore(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	dir := t.TempDir()
	if _, _, err := run(t, "--quiet", "--json_dir", dir, "--data_dir", dir, "network"); err == nil {
		t.Fatalf("expected error without group file and triple store")
	}
}
