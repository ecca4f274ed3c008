// Package mocks provides shared test doubles for the store and auth interfaces.
//
// The store mocks are built on testify/mock so tests can assert exactly which
// persistence calls happened:
//
//	users := new(mocks.TestifyMockUserStore)
//	users.On("GetByToken", mock.Anything, token).Return(user, nil)
//
// WithTx on every store mock returns the mock itself, so expectations apply
// unchanged inside a transaction.
package mocks
