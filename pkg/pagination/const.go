package pagination

// DefaultLimit is the page size used when the caller does not specify one
const DefaultLimit = 50

// MaxLimit is the maximum allowed page size
const MaxLimit = 200
