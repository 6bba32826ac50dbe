//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"

	"lan-collab/domain"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// Notifier lets leaf services report back to the control plane without
// importing it. The file service posts an announcement once an upload
// has fully landed on disk.
type Notifier interface {
	FileAvailable(record domain.FileRecord)
}

// SessionCleaner tears a participant session down through the exact same
// path as an explicit logout. Implementations must be idempotent.
type SessionCleaner interface {
	Cleanup(uid domain.UID)
}

// ScreenShare is the control plane's handle on the screen-share relay.
type ScreenShare interface {
	Port() int
	// DropPresenter force-closes the current presenter connection, if any,
	// freeing the slot for the next taker.
	DropPresenter()
}

// FileLibrary exposes the file transfer surface the control plane hands
// out to clients: the two ports and the current catalog listing.
type FileLibrary interface {
	UploadPort() int
	DownloadPort() int
	List() []domain.FileRecord
}
