package mocks

import (
	"context"
	"fmt"
)

// Minter is a mock implementation of ports.Minter. It hands out
// sequential identifiers unless an error is configured.
type Minter struct {
	Prefix string
	Err    error

	// Call tracking
	MintCallCount int
	Minted        int
}

// Mint returns num sequential identifiers.
func (m *Minter) Mint(ctx context.Context, num int) ([]string, error) {
	m.MintCallCount++
	if m.Err != nil {
		return nil, m.Err
	}
	prefix := m.Prefix
	if prefix == "" {
		prefix = "88922/nr"
	}
	ids := make([]string, num)
	for i := range ids {
		m.Minted++
		ids[i] = fmt.Sprintf("%s%03d", prefix, m.Minted)
	}
	return ids, nil
}
