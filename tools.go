//go:build tools
// +build tools

// Package tools declares tool dependencies for this module.
//
// These imports are not used at runtime. They keep mockgen, invoked through
// `go generate` on contract/contract.go and repositories/consultation.go,
// pinned in go.mod / go.sum.
package consult_lab

import (
	_ "go.uber.org/mock/mockgen"
)
