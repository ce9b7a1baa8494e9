package listeners

import (
	"encoding/json"
	"time"

	"go.etcd.io/bbolt"

	"github.com/codeforge/codemod/internal/transform"
)

var runsBucket = []byte("runs")

// LedgerListener persists one record per completed or aborted transformation
// into a bbolt database, keyed by run timestamp, so a later run can be
// compared against history. Grounded on Comcast-sheens's bolt-backed crew
// storage: one top-level bucket, JSON-marshaled values keyed by an ID.
type LedgerListener struct {
	db *bbolt.DB
}

// OpenLedger opens (creating if necessary) the bbolt database at path.
func OpenLedger(path string) (*LedgerListener, error) {
	db, err := bbolt.Open(path, 0o644, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(runsBucket)
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}
	return &LedgerListener{db: db}, nil
}

// Close releases the underlying database handle.
func (l *LedgerListener) Close() error {
	return l.db.Close()
}

type ledgerEntry struct {
	RunAt        string            `json:"run_at"`
	StagedDir    string            `json:"staged_dir"`
	Templates    []string          `json:"templates"`
	Results      map[string]string `json:"results"`
	Aborted      bool              `json:"aborted"`
	AbortMessage string            `json:"abort_message,omitempty"`
}

func (l *LedgerListener) PostTransformation(tx *transform.Transformation, contexts []transform.ContextView) {
	l.record(tx, contexts, "")
}

func (l *LedgerListener) PostTransformationAbort(tx *transform.Transformation, contexts []transform.ContextView, abortErr error) {
	message := ""
	if abortErr != nil {
		message = abortErr.Error()
	}
	l.record(tx, contexts, message)
}

func (l *LedgerListener) record(tx *transform.Transformation, contexts []transform.ContextView, abortMessage string) {
	entry := ledgerEntry{
		RunAt:        time.Now().Format(time.RFC3339Nano),
		StagedDir:    tx.StagedDirectory(),
		Results:      make(map[string]string),
		Aborted:      abortMessage != "",
		AbortMessage: abortMessage,
	}

	for _, view := range contexts {
		entry.Templates = append(entry.Templates, view.TemplateName())
		for _, name := range view.DispatchedNames() {
			result, _ := view.Result(name)
			entry.Results[view.TemplateName()+"/"+name] = string(result.Type)
		}
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_ = l.db.Update(func(btx *bbolt.Tx) error {
		b := btx.Bucket(runsBucket)
		return b.Put([]byte(entry.RunAt), payload)
	})
}
