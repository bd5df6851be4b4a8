package cache

import "time"

// Run is one successful build.
type Run struct {
	ID          string
	DatabaseID  string
	Output      string
	Count       int
	GeneratedAt time.Time
}

// StoredLink is a link as last seen by any run.
type StoredLink struct {
	ID        string
	Title     string
	URL       string
	Host      string
	Tags      string
	LastRunID string
	FirstSeen time.Time
	LastSeen  time.Time
}
