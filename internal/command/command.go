// Package command defines the plain-data actions that input producers hand
// to the dispatch loop.
//
// A Command carries no references to the viewer or any other mutable state;
// the dispatch loop interprets it at dequeue time. Producers construct values
// with OpenDocument, TurnPage or Exit and never call the viewer directly.
package command

import "fmt"

// Kind identifies the variant of a Command.
type Kind int

const (
	KindOpenDocument Kind = iota + 1
	KindTurnPage
	KindExit
)

func (k Kind) String() string {
	switch k {
	case KindOpenDocument:
		return "open_document"
	case KindTurnPage:
		return "turn_page"
	case KindExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Command is a queued viewer action. Index is only meaningful for
// KindOpenDocument.
type Command struct {
	Kind  Kind
	Index int
}

// OpenDocument selects the manifest entry with the given index.
func OpenDocument(index int) Command {
	return Command{Kind: KindOpenDocument, Index: index}
}

// TurnPage advances the open document by one page.
func TurnPage() Command {
	return Command{Kind: KindTurnPage}
}

// Exit closes the viewer session and stops the dispatch loop.
func Exit() Command {
	return Command{Kind: KindExit}
}

func (c Command) String() string {
	if c.Kind == KindOpenDocument {
		return fmt.Sprintf("%s(%d)", c.Kind, c.Index)
	}
	return c.Kind.String()
}
