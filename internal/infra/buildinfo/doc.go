// Package buildinfo reports the version, commit and build time of the
// quill binary.
//
// Release builds set them with ldflags:
//
//	go build -ldflags "-X github.com/yndnr/quill/internal/infra/buildinfo.Version=1.0.0"
//
// Otherwise Get falls back to the module version and VCS stamp recorded by
// the Go toolchain. The version is also what the console banner prints.
package buildinfo
