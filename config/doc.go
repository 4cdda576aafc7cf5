// Package config locates and parses the application's YAML configuration.
//
// The file is chosen in this order: an explicit path, the CONFIG_PATH
// environment variable, then config/configuration.yaml under the base
// directory. Relative paths are anchored to the base directory rather than
// the working directory, so the result does not depend on where the process
// was started. Nothing is cached; each Load re-reads the file.
package config
