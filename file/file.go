// Package file names the files of a corpus: inputs in the data directory,
// triples and network tables in the save directory.
package file

import (
	"path/filepath"
	"strings"
)

const (
	DataDir = "./data/"
	SaveDir = "./save/"
	DocPath = "./data/parsed/"

	DataFile  = "NSM_corpus_cleaned"
	InOutFile = "NSM_ingroups_outgroups"
	JSONFile  = "SVOs"

	// RawFile is the paragraph file read by the prepare command
	RawFile = "ISIS_corpus"

	csvExt  = ".csv"
	jsonExt = ".json"
)

// CSV returns the path of the CSV file name in dir. The extension is added
// when missing.
func CSV(dir, name string) string {
	return withExt(dir, name, csvExt)
}

// JSON returns the path of the JSON lines file name in dir. The extension is
// added when missing.
func JSON(dir, name string) string {
	return withExt(dir, name, jsonExt)
}

// Prepared returns the name of the sentence file written by prepare for the
// raw file name.
func Prepared(name string) string {
	return strings.TrimSuffix(name, csvExt) + "_cleaned"
}

func withExt(dir, name, ext string) string {
	if !strings.HasSuffix(name, ext) {
		name += ext
	}

	return filepath.Join(dir, name)
}
