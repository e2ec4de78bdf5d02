// Package neo4j exports a relation network into a Neo4j database.
package neo4j

import (
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v4/neo4j"

	"github.com/revelaction/svograph/network"
)

const (
	mergeNode = `
		MERGE (n:Node {corpus: $corpus, id: $id})
		SET n.name = $name, n.type = $type
	`

	mergeEdge = `
		MATCH (from:Node {corpus: $corpus, id: $source})
		MATCH (to:Node {corpus: $corpus, id: $target})
		MERGE (from)-[r:RELATES {table: $table}]->(to)
		SET r.weight = $weight
	`
)

// Runner runs a cypher statement. neo4j.Session and neo4j.Transaction
// satisfy it.
type Runner interface {
	Run(cypher string, params map[string]interface{}) (neo4j.Result, error)
}

// Exporter writes networks through a Neo4j driver.
type Exporter struct {
	driver neo4j.Driver

	// Corpus scopes the node ids, so several corpora can share a database
	Corpus string
}

func NewExporter(uri, username, password, corpus string) (*Exporter, error) {
	driver, err := neo4j.NewDriver(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create Neo4j driver: %w", err)
	}

	return &Exporter{driver: driver, Corpus: corpus}, nil
}

// Export writes the network in a single write transaction.
func (e *Exporter) Export(n *network.Network) error {
	session := e.driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	_, err := session.WriteTransaction(func(tx neo4j.Transaction) (interface{}, error) {
		return nil, Write(tx, e.Corpus, n)
	})

	return err
}

func (e *Exporter) Close() error {
	return e.driver.Close()
}

// Write merges the nodes and the weighted edges of the network. Edges keep
// the name of their table ("In" or "Out") in the table property.
func Write(r Runner, corpus string, n *network.Network) error {
	for _, node := range n.Nodes {
		params := map[string]interface{}{
			"corpus": corpus,
			"id":     node.Id,
			"name":   node.Name,
			"type":   string(node.Type),
		}

		if _, err := r.Run(mergeNode, params); err != nil {
			return fmt.Errorf("node %q: %w", node.Name, err)
		}
	}

	tables := []struct {
		name  string
		edges []network.Edge
	}{
		{"In", n.In.Edges()},
		{"Out", n.Out.Edges()},
	}

	for _, t := range tables {
		for _, edge := range t.edges {
			params := map[string]interface{}{
				"corpus": corpus,
				"source": edge.Source,
				"target": edge.Target,
				"table":  t.name,
				"weight": edge.Weight,
			}

			if _, err := r.Run(mergeEdge, params); err != nil {
				return fmt.Errorf("edge %d -> %d: %w", edge.Source, edge.Target, err)
			}
		}
	}

	return nil
}
