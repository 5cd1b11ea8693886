package ports

import "context"

// Minter reserves fresh registry identifiers from the external id
// service. Mint is called once per load run with the full count needed;
// a failed mint is fatal for the rows that still need identifiers.
type Minter interface {
	Mint(ctx context.Context, num int) ([]string, error)
}
