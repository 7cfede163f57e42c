package errors

import "fmt"

var (
	ErrWorkerPanic      = fmt.Errorf("worker panic")
	ErrNickNotFound     = fmt.Errorf("no group id exists for nick")
	ErrAlreadySingleton = fmt.Errorf("nick is the only member of its group")
	ErrInvalidCommand   = fmt.Errorf("invalid command syntax")
	ErrUnknownCommand   = fmt.Errorf("unknown command")
	ErrInvalidFieldSet  = fmt.Errorf("no stat or rate field configured")
	ErrCorruptedRecord  = fmt.Errorf("corrupted nick record")
	ErrValueOverflow    = fmt.Errorf("merged value overflows int64")
)
