package export

import (
	"encoding/json"
	"io"

	"github.com/threatforge/insider-synth/internal/domain/activity"
	"github.com/threatforge/insider-synth/internal/domain/errors"
)

// writeDatasetJSON emits the dataset as a single envelope carrying the run
// metadata alongside the records, so a JSON export round-trips losslessly.
func writeDatasetJSON(w io.Writer, dataset *activity.Dataset) error {
	enc := json.NewEncoder(w)
	return enc.Encode(dataset)
}

func readDatasetJSON(r io.Reader) (*activity.Dataset, error) {
	var dataset activity.Dataset
	if err := json.NewDecoder(r).Decode(&dataset); err != nil {
		return nil, errors.NewIOError("failed to decode dataset json").WithCause(err)
	}
	dataset.Sort()
	return &dataset, nil
}
