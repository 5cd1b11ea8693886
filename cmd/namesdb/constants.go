package main

// Default limits for CLI commands.
const (
	DefaultDumpLimit = 0 // all records
	DefaultPostLimit = 0 // all records
)

// Valid import formats.
var validFormats = []string{"auto", "json", "csv"}

func contains(list []string, item string) bool {
	for _, v := range list {
		if v == item {
			return true
		}
	}
	return false
}
