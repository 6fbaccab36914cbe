package dispatch

import (
	"context"

	"github.com/abcall/clients/internal/core/dependency"
)

// Kind separates the command and query halves of the registry.
type Kind string

const (
	KindCommand Kind = "command"
	KindQuery   Kind = "query"
)

// Command is an intent to change state. The name identifies its concrete type
// and must be unique among commands.
type Command interface {
	CommandName() string
}

// Query is an intent to read state. The name identifies its concrete type
// and must be unique among queries.
type Query interface {
	QueryName() string
}

// QueryResult wraps what a query found. A nil Result means nothing was found.
type QueryResult struct {
	Result any
}

// NewQueryResult wraps result.
func NewQueryResult(result any) QueryResult {
	return QueryResult{Result: result}
}

// IsEmpty reports whether the query found nothing.
func (r QueryResult) IsEmpty() bool {
	return r.Result == nil
}

// CommandHandler executes one command type. Commands return a plain value, or nil.
type CommandHandler[C Command] interface {
	Handle(ctx context.Context, cmd C) (any, error)
}

// QueryHandler executes one query type.
type QueryHandler[Q Query] interface {
	Handle(ctx context.Context, query Q) (QueryResult, error)
}

// CommandHandlerFactory builds a handler for a single dispatch.
type CommandHandlerFactory[C Command] func(resolver dependency.Resolver) CommandHandler[C]

// QueryHandlerFactory builds a handler for a single dispatch.
type QueryHandlerFactory[Q Query] func(resolver dependency.Resolver) QueryHandler[Q]

// CommandHandlerFunc adapts a function to CommandHandler.
type CommandHandlerFunc[C Command] func(ctx context.Context, cmd C) (any, error)

func (f CommandHandlerFunc[C]) Handle(ctx context.Context, cmd C) (any, error) {
	return f(ctx, cmd)
}

// QueryHandlerFunc adapts a function to QueryHandler.
type QueryHandlerFunc[Q Query] func(ctx context.Context, query Q) (QueryResult, error)

func (f QueryHandlerFunc[Q]) Handle(ctx context.Context, query Q) (QueryResult, error) {
	return f(ctx, query)
}
