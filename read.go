package st2110

import "os"

// ReadFile returns the contents of an SDP file as a string ready for Parse.
// Convenience for CLI drivers; the parser itself never touches the
// filesystem.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
