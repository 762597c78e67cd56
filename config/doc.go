// Package config provides configuration loading, merging, validation, and
// live-reload facilities for services built on the kit.
//
// Configuration is assembled from multiple sources in the following priority
// order (the first source to set a field wins):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON or YAML config file
//
// The main entry points are [Load] for the shared [Base] configuration,
// [ParseEnv] for service-specific structs that embed [Base], and [Watch]
// for reacting to config file changes at runtime.
package config
