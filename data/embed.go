package data

import _ "embed"

// DefaultShelters is the shelter catalog shipped with the binary. It is used
// whenever no on-disk catalog is configured or the configured file is
// unreadable.
//
//go:embed shelters.json
var DefaultShelters []byte
