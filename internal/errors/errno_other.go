//go:build !unix

package errors

func isResourceExhausted(error) bool { return false }
