package utils

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

func EnsureDirectory(dirPath string) error {
	if dirPath == "" {
		return fmt.Errorf("directory path cannot be empty")
	}

	absPath, err := filepath.Abs(dirPath)
	if err != nil {
		return fmt.Errorf("cannot resolve absolute path for %s: %w", dirPath, err)
	}

	if err := os.MkdirAll(absPath, 0755); err != nil {
		return fmt.Errorf("cannot create directory %s: %w", absPath, err)
	}

	return nil
}

func FormatDuration(duration time.Duration) string {
	if duration < time.Second {
		return fmt.Sprintf("%d ms", duration.Milliseconds())
	}

	if duration < time.Minute {
		return fmt.Sprintf("%.1f sec", duration.Seconds())
	}

	if duration < time.Hour {
		return fmt.Sprintf("%.1f min", duration.Minutes())
	}

	return fmt.Sprintf("%.1f hrs", duration.Hours())
}

func FormatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	units := []string{"KB", "MB", "GB", "TB", "PB"}
	return fmt.Sprintf("%.1f %s", float64(size)/float64(div), units[exp])
}

func SanitizeFilename(filename string) string {
	filename = strings.TrimSpace(filename)
	filename = invalidFilenameChars.ReplaceAllString(filename, "_")

	if len(filename) > 255 {
		ext := filepath.Ext(filename)
		base := filename[:255-len(ext)]
		filename = base + ext
	}

	if filename == "" {
		filename = "unnamed"
	}

	return filename
}

func GenerateTimestamp() string {
	return time.Now().Format("2006-01-02_15-04-05")
}

func GenerateOutputFilename(baseName string, extension string) string {
	timestamp := GenerateTimestamp()
	sanitizedName := SanitizeFilename(baseName)

	if extension != "" && !strings.HasPrefix(extension, ".") {
		extension = "." + extension
	}

	return fmt.Sprintf("%s_%s%s", sanitizedName, timestamp, extension)
}

// TruncateMiddle shortens s to maxLength runes, keeping both ends.
func TruncateMiddle(s string, maxLength int) string {
	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}

	if maxLength <= 3 {
		return string(runes[:maxLength])
	}

	head := (maxLength - 3) / 2
	tail := maxLength - 3 - head
	return string(runes[:head]) + "..." + string(runes[len(runes)-tail:])
}

// ParseDroppedPaths splits the text a terminal pastes when files are dropped
// onto it. Paths are separated by whitespace and may be single or double
// quoted, backslash-escaped, or file:// URIs.
func ParseDroppedPaths(input string) []string {
	var result []string
	var current strings.Builder
	var quote rune
	escaped := false
	started := false

	flush := func() {
		if started {
			result = append(result, normalizeDroppedPath(current.String()))
			current.Reset()
			started = false
		}
	}

	for _, char := range input {
		switch {
		case escaped:
			current.WriteRune(char)
			escaped = false
		case char == '\\' && quote != '\'':
			escaped = true
			started = true
		case quote != 0:
			if char == quote {
				quote = 0
			} else {
				current.WriteRune(char)
			}
		case char == '\'' || char == '"':
			quote = char
			started = true
		case char == ' ' || char == '\t' || char == '\n' || char == '\r':
			flush()
		default:
			current.WriteRune(char)
			started = true
		}
	}
	flush()

	paths := result[:0]
	for _, p := range result {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

func normalizeDroppedPath(p string) string {
	if !strings.HasPrefix(p, "file://") {
		return p
	}

	u, err := url.Parse(p)
	if err != nil || u.Path == "" {
		return strings.TrimPrefix(p, "file://")
	}
	return filepath.FromSlash(u.Path)
}

// FormatCount pairs n with noun, pluralized with a trailing "s".
func FormatCount(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
