package checkpoint

import (
	"fmt"
	"strconv"
	"time"
)

// Action is the enrichment operation a checkpoint belongs to.
type Action string

const (
	ActionExplain  Action = "explain"
	ActionClassify Action = "classify"
)

// Split names the dataset partition.
type Split string

const (
	SplitTrain Split = "train"
	SplitTest  Split = "test"
)

// Key identifies one checkpoint record: a (model, target, action, split)
// tuple. One file is written per key.
type Key struct {
	ModelType string
	Target    string
	Action    Action
	Split     Split
}

// Filename returns the on-disk name for this key.
func (k Key) Filename() string {
	return fmt.Sprintf("checkpoint-%s-%s-%s-%s.json", k.ModelType, k.Target, k.Action, k.Split)
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s/%s/%s", k.ModelType, k.Target, k.Action, k.Split)
}

// Record is the durable ledger of completed batches for one key. Results are
// keyed by the decimal batch index, matching the JSON wire shape.
type Record struct {
	ProcessedBatches []int             `json:"processedBatches"`
	Results          map[string]string `json:"results"`
	Target           string            `json:"target"`
	Language         string            `json:"language"`
	Action           Action            `json:"action"`
	TotalBatches     int               `json:"totalBatches"`
	ModelType        string            `json:"modelType"`
	LastUpdated      time.Time         `json:"lastUpdated"`
}

// NewRecord creates an empty record for a key.
func NewRecord(key Key, language string, totalBatches int) *Record {
	return &Record{
		ProcessedBatches: []int{},
		Results:          make(map[string]string),
		Target:           key.Target,
		Language:         language,
		Action:           key.Action,
		TotalBatches:     totalBatches,
		ModelType:        key.ModelType,
		LastUpdated:      time.Now().UTC(),
	}
}

// IsProcessed reports whether batch index has a completed entry.
func (r *Record) IsProcessed(index int) bool {
	for _, i := range r.ProcessedBatches {
		if i == index {
			return true
		}
	}
	return false
}

// Result returns the stored raw text for a batch index.
func (r *Record) Result(index int) (string, bool) {
	raw, ok := r.Results[strconv.Itoa(index)]
	return raw, ok
}

// markProcessed adds index with its raw text. Re-marking an index replaces
// the stored text without duplicating the index entry.
func (r *Record) markProcessed(index int, raw string) {
	if !r.IsProcessed(index) {
		r.ProcessedBatches = append(r.ProcessedBatches, index)
	}
	if r.Results == nil {
		r.Results = make(map[string]string)
	}
	r.Results[strconv.Itoa(index)] = raw
	r.LastUpdated = time.Now().UTC()
}

// validate shape-checks a loaded record: every processed index must lie in
// [0, totalBatches) and carry a result entry.
func (r *Record) validate() error {
	if r.TotalBatches < 0 {
		return fmt.Errorf("negative totalBatches: %d", r.TotalBatches)
	}
	for _, i := range r.ProcessedBatches {
		if i < 0 || i >= r.TotalBatches {
			return fmt.Errorf("processed batch %d out of range [0,%d)", i, r.TotalBatches)
		}
		if _, ok := r.Result(i); !ok {
			return fmt.Errorf("processed batch %d has no stored result", i)
		}
	}
	return nil
}
