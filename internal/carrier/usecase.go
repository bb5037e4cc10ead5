package carrier

import "context"

// Provider supplies the carrier records quotes are computed against.
type Provider interface {
	Carriers(ctx context.Context) ([]Carrier, error)
	Carrier(ctx context.Context, id string) (Carrier, error)
}
