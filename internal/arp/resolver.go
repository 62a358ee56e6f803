package arp

import "context"

// Resolver is the method-set form of Resolve, for callers that take a
// MAC resolver as a collaborator.
type Resolver struct{}

func (Resolver) Resolve(ctx context.Context, host string) (string, error) {
	return Resolve(ctx, host)
}
