//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"

	"autocaption/domain"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

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

// CaptionSink delivers a finished caption, e.g. by editing the message or writing a sidecar file.
type CaptionSink interface {
	Consume(ctx context.Context, edit domain.CaptionEdit) error
}

// ICaptionService turns one media event into a caption edit.
// ok is false when the event must be skipped.
type ICaptionService interface {
	Caption(ctx context.Context, evt domain.MediaEvent) (edit domain.CaptionEdit, ok bool, err error)
}

type IOrchestrator interface {
	RegisterSinks(sink ...CaptionSink)
	Start(ctx context.Context) error
	Stop()
}
