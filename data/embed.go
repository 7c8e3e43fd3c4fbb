// Package data bundles the static catalog shipped with the storefront.
package data

import _ "embed"

//go:embed products.json
var Products []byte

//go:embed categories.json
var Categories []byte
