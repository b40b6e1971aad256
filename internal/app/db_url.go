package app

import (
	"net/url"
	"strings"
)

// normalizeDBURL appends disable_prepared_binary_result=yes when the
// config toggle asks for it and the DSN does not already pin a value.
// lib/pq only reads the flag from the connection string.
func normalizeDBURL(raw string, disablePreparedBinary bool) string {
	if !disablePreparedBinary {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	query := parsed.Query()
	if query.Has("disable_prepared_binary_result") {
		return raw
	}
	query.Set("disable_prepared_binary_result", "yes")
	parsed.RawQuery = query.Encode()

	return parsed.String()
}

// dbNameFromURL pulls the database name out of a URL-style or
// key=value-style DSN. Used for span attribution only; an empty result
// is fine.
func dbNameFromURL(raw string) string {
	raw = strings.TrimSpace(raw)

	if parsed, err := url.Parse(raw); err == nil && parsed.Scheme != "" {
		if name := strings.Trim(parsed.Path, "/"); name != "" {
			return name
		}
	}

	for _, field := range strings.Fields(raw) {
		key, value, ok := strings.Cut(field, "=")
		if !ok || key != "dbname" {
			continue
		}
		if name := strings.Trim(value, `"'`); name != "" {
			return name
		}
	}

	return ""
}
