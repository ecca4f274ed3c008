package auth

// NewTokenAuthorityWithRandom exposes the injectable random source to tests.
var NewTokenAuthorityWithRandom = newTokenAuthority
