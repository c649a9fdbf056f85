// Package version reports build information for statewalker binaries.
//
// Values come from -ldflags when set and fall back to the module and VCS data
// the Go toolchain embeds:
//
//	go build -ldflags "-X github.com/statewalker/statewalker-utils/version.Version=1.2.0" ./cmd/agen-demo
package version
