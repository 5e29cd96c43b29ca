package network

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/satria-nugraha/corridorsim/pkg/util"
)

type corridorFile struct {
	Name     string    `json:"name"`
	Segments []Segment `json:"segments"`
}

// LoadCorridor reads a corridor definition produced by the network import tooling.
// Files ending in .bz2 are decompressed transparently.
func LoadCorridor(path string) (*Corridor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "open corridor file %s", path)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".bz2") {
		bz, err := bzip2.NewReader(f, &bzip2.ReaderConfig{})
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrBadParamInput, "bzip2 reader for %s", path)
		}
		defer bz.Close()
		r = bz
	}

	var cf corridorFile
	if err := json.NewDecoder(r).Decode(&cf); err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "decode corridor file %s", path)
	}

	return NewCorridor(cf.Segments)
}
