// Package config loads mahito configuration from local and global YAML files
// with precedence rules. It is internal; CLI code maps flags and files into
// cleaner options.
package config
