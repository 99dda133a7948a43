package service

import "context"

// Confirmer answers the yes/no question asked before a destructive action.
// The HTML UI asks with a confirmation page, the CLI on stdin, and tests
// inject a fixed answer.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a plain function to the Confirmer interface.
type ConfirmFunc func(ctx context.Context, prompt string) bool

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

var (
	// AlwaysConfirm accepts every prompt.
	AlwaysConfirm Confirmer = ConfirmFunc(func(context.Context, string) bool { return true })
	// NeverConfirm declines every prompt.
	NeverConfirm Confirmer = ConfirmFunc(func(context.Context, string) bool { return false })
)
