package network

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

const (
	NodesFile    = "nodes.csv"
	EdgesInFile  = "edges_In.csv"
	EdgesOutFile = "edges_Out.csv"
)

// WriteNodes writes the node table with header name,type,Id.
func WriteNodes(w io.Writer, nodes []Node) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"name", "type", "Id"}); err != nil {
		return err
	}

	for _, n := range nodes {
		if err := cw.Write([]string{n.Name, string(n.Type), strconv.Itoa(n.Id)}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteEdges writes an edge table with header source,target,weight.
func WriteEdges(w io.Writer, edges []Edge) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"source", "target", "weight"}); err != nil {
		return err
	}

	for _, e := range edges {
		row := []string{strconv.Itoa(e.Source), strconv.Itoa(e.Target), strconv.Itoa(e.Weight)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSV writes the three tables of the network into dir, creating it if
// needed.
func (n *Network) WriteCSV(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	files := []struct {
		name  string
		write func(io.Writer) error
	}{
		{NodesFile, func(w io.Writer) error { return WriteNodes(w, n.Nodes) }},
		{EdgesInFile, func(w io.Writer) error { return WriteEdges(w, n.In.edges) }},
		{EdgesOutFile, func(w io.Writer) error { return WriteEdges(w, n.Out.edges) }},
	}

	for _, f := range files {
		if err := writeFile(filepath.Join(dir, f.name), f.write); err != nil {
			return err
		}
	}

	return nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := write(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	return nil
}
