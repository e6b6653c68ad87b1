package textutil

import (
	"path/filepath"
	"strings"
)

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName replaces filesystem-unsafe characters in a filename.
// Slashes, backslashes, colons, and asterisks become dashes; other unsafe
// characters are removed. The result is trimmed of leading/trailing whitespace.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return strings.TrimSpace(fileNameReplacer.Replace(name))
}

// ComparisonFileStem builds a filename stem such as "alpha_vs_beta" from two
// source filenames, dropping their extensions.
func ComparisonFileStem(left, right string) string {
	return stem(left) + "_vs_" + stem(right)
}

func stem(name string) string {
	name = strings.TrimSuffix(filepath.Base(strings.TrimSpace(name)), filepath.Ext(name))
	name = strings.ReplaceAll(SanitizeFileName(name), " ", "-")
	name = strings.Trim(name, "-_.")
	if name == "" {
		return "unknown"
	}
	return name
}
