//go:build !unix

package fileutil

// Windows reports cross-volume renames as ERROR_NOT_SAME_DEVICE, which
// os.Rename already handles by copying for files.
func isCrossDevice(error) bool { return false }
