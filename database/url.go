package database

import (
	"fmt"
	"strings"
)

// ConstructDatabaseURL joins a base connection URL with an optional
// database name. Supplying the name separately lets one DATABASE_URL
// serve several databases (dev, test). sslmode=disable is appended
// unless the URL already pins an sslmode.
func ConstructDatabaseURL(baseURL, databaseName string) string {
	if databaseName == "" {
		return baseURL
	}

	base, query, hasQuery := strings.Cut(strings.TrimRight(baseURL, "/"), "?")
	url := fmt.Sprintf("%s/%s", base, databaseName)
	if hasQuery {
		url = fmt.Sprintf("%s?%s", url, query)
	}

	if !strings.Contains(url, "sslmode=") {
		if strings.Contains(url, "?") {
			url += "&sslmode=disable"
		} else {
			url += "?sslmode=disable"
		}
	}

	return url
}
