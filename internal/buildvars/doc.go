// Package buildvars turns a resolved version into named build variables
// and renders them for the native build: a CMake toolchain snippet, a
// dotenv file, or JSON, YAML and TOML documents.
package buildvars
