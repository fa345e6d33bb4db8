package errors

import "fmt"

var (
	ErrWorkerPanic      = fmt.Errorf("worker panic")
	ErrTemplateNotFound = fmt.Errorf("no caption template for channel")
	ErrEmptyTemplate    = fmt.Errorf("caption template is empty")
	ErrInvalidEvent     = fmt.Errorf("invalid media event")
	ErrUnknownCommand   = fmt.Errorf("unknown command")
	ErrNoMedia          = fmt.Errorf("message carries no media")
)
