// Package configfile reads build configuration files into the raw option map
// consumed by config.Parser. HCL, YAML, TOML and JSON files are supported;
// the format is picked from the file extension.
package configfile
