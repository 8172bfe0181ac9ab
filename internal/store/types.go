package store

import "time"

// SnapshotRecord is the index entry for one saved version. The snapshot
// directory on disk stays authoritative for existence; the record carries
// what the directory name cannot: when and why the save happened, whether
// it is degraded, and where its metadata file came from.
type SnapshotRecord struct {
	Version   string
	CreatedAt time.Time
	Reason    string

	// Degraded marks a save whose pkg-config metadata file could not be
	// located. Headers and libraries are intact; metadata restore is not.
	Degraded bool

	// PCSource is the path the metadata file was copied from at save time.
	PCSource string

	LibFiles int
}

// Event is one journal entry: a save, a switch, an undo, or an external
// modification of the active installation noticed by the watch daemon.
type Event struct {
	ID          int64
	Action      string
	FromVersion string
	ToVersion   string
	Detail      string
	Timestamp   time.Time
}

// Event actions.
const (
	ActionSave           = "save"
	ActionSwitch         = "switch"
	ActionUndo           = "undo"
	ActionExternalChange = "external-change"
)
