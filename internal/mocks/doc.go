// Package mocks provides hand-written test doubles for the store and auth
// interfaces.
//
// Each mock keeps an in-memory map so the default behavior is a working fake,
// and exposes one function field per method to override it:
//
//	users := mocks.NewMockUserStore()
//	users.GetByUsernameFn = func(ctx context.Context, username string) (*domain.User, error) {
//	    return nil, errors.New("connection refused")
//	}
//
// Mocks are safe for concurrent use so they can sit behind a real router in
// end-to-end tests.
package mocks
