package common

// Storage keys under which the persisted session lives in the local
// metadata store. The values are fixed: existing databases are read
// back with the same keys on startup.
const (
	StorageKeyToken = "token"
	StorageKeyUser  = "user"
)

// DefaultSiteName is used when the website metadata endpoint cannot be
// reached.
const DefaultSiteName = "Tempest"
