package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/svograph/lexicon"
	"github.com/revelaction/svograph/metrics"
	"github.com/revelaction/svograph/network"
	"github.com/revelaction/svograph/render"
	"github.com/revelaction/svograph/storage/neo4j"
)

func networkCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "network",
		Usage: "build the node and edge tables from the triple store",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "neo4j", Usage: "also export the network to the configured Neo4j database"},
		},
		Action: func(c *cli.Context) error {
			return e.network(c.Bool("neo4j"))
		},
	}
}

func (e *env) network(export bool) error {
	groups, err := e.loadGroups()
	if err != nil {
		return err
	}

	records, err := render.ReadRecordsFile(e.cfg.JSONPath())
	if err != nil {
		return err
	}

	lex, err := e.networkLexicon()
	if err != nil {
		return err
	}

	b := network.NewBuilder(groups, lex)
	for i, r := range records {
		if err := b.Add(r.Triples); err != nil {
			return fmt.Errorf("record %d: %w", i+1, err)
		}
	}

	n := b.Network()
	if err := n.WriteCSV(e.cfg.SaveDir); err != nil {
		return err
	}

	if err := n.Check(); err != nil {
		return err
	}

	if e.cfg.MetricsFile != "" {
		if err := writeNetworkMetrics(n, e.cfg.MetricsFile); err != nil {
			return err
		}
	}

	if export {
		if err := e.exportNeo4j(n); err != nil {
			return err
		}
	}

	e.log.WithFields(logrus.Fields{
		"records": len(records),
		"triples": n.Triples,
	}).Debug("Network built")

	fmt.Fprintf(e.ui.Out, "Nodes: %d, in edges: %d, out edges: %d, triples: %d, written to %s\n",
		len(n.Nodes), len(n.In.Edges()), len(n.Out.Edges()), n.Triples, e.cfg.SaveDir)

	return nil
}

// networkLexicon builds the lexicon that names the verb nodes. Without a
// parsed-sentence store verbs keep their lowercase form.
func (e *env) networkLexicon() (*lexicon.Lexicon, error) {
	if _, err := os.Stat(e.cfg.DocPath); errors.Is(err, fs.ErrNotExist) {
		e.log.WithField("doc_path", e.cfg.DocPath).Warn("No parsed-sentence store, verb nodes are not lemmatized")
		return lexicon.New(), nil
	}

	repo, err := e.openStore()
	if err != nil {
		return nil, err
	}

	return buildLexicon(repo)
}

func writeNetworkMetrics(n *network.Network, path string) error {
	m := metrics.New()
	for _, node := range n.Nodes {
		m.GraphNodeCount.WithLabelValues(string(node.Type)).Inc()
	}
	m.GraphEdgeCount.WithLabelValues("in").Set(float64(len(n.In.Edges())))
	m.GraphEdgeCount.WithLabelValues("out").Set(float64(len(n.Out.Edges())))

	if err := m.WriteFile(path); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}

	return nil
}

func (e *env) exportNeo4j(n *network.Network) error {
	c := e.cfg.Neo4j
	if c.URI == "" {
		return errors.New("neo4j export needs neo4j.uri (SVOGRAPH_NEO4J_URI)")
	}

	exp, err := neo4j.NewExporter(c.URI, c.Username, c.Password, c.Corpus)
	if err != nil {
		return err
	}
	defer exp.Close()

	if err := exp.Export(n); err != nil {
		return fmt.Errorf("neo4j export: %w", err)
	}

	e.log.WithField("uri", c.URI).Info("Network exported to Neo4j")
	return nil
}
