package errors

import "fmt"

var (
	ErrWorkerPanic      = fmt.Errorf("worker panic")
	ErrNotLoggedIn      = fmt.Errorf("not logged in")
	ErrUsernameRequired = fmt.Errorf("username required")
	ErrUsernameTaken    = fmt.Errorf("username already taken")
	ErrUnknownUID       = fmt.Errorf("unknown uid")
	ErrTargetNotFound   = fmt.Errorf("target user not found")
	ErrEmptyContent     = fmt.Errorf("empty message")
	ErrPresenterBusy    = fmt.Errorf("someone else is already presenting")
	ErrNotPresenting    = fmt.Errorf("not currently presenting")
	ErrFrameTooLarge    = fmt.Errorf("frame exceeds maximum size")
	ErrShortPacket      = fmt.Errorf("packet shorter than header")
	ErrLengthMismatch   = fmt.Errorf("payload length mismatch")
	ErrFileTooLarge     = fmt.Errorf("file too large")
	ErrFileNotFound     = fmt.Errorf("file not found")
	ErrPartialUpload    = fmt.Errorf("upload ended before declared size")
)
