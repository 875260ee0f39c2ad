package snippets

import "context"

// Prompter asks the user to help locate a document that could not be found.
// Every method blocks until the user answers or ctx is done.
type Prompter interface {
	// ConfirmHasSnippets asks whether any snippets were ever created.
	ConfirmHasSnippets(ctx context.Context) (bool, error)

	// ExplainLocate tells the user a file chooser is about to open.
	ExplainLocate(ctx context.Context) error

	// ChooseFile returns the path of a user-selected JSON file. An empty
	// path with a nil error means the user cancelled.
	ChooseFile(ctx context.Context) (string, error)
}

// DeclinePrompter answers "no snippets" without involving anyone. It is used
// when no window is available to host dialogs.
type DeclinePrompter struct{}

func (DeclinePrompter) ConfirmHasSnippets(context.Context) (bool, error) { return false, nil }
func (DeclinePrompter) ExplainLocate(context.Context) error              { return nil }
func (DeclinePrompter) ChooseFile(context.Context) (string, error)       { return "", nil }
