package events

import "context"

type actorKey struct{}

// WithActor tags ctx with the user performing a mutation so stores can
// attribute the events they publish.
func WithActor(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, actorKey{}, actorID)
}

func ActorFrom(ctx context.Context) string {
	id, _ := ctx.Value(actorKey{}).(string)
	return id
}
