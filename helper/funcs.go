package helper

import "html/template"

// FuncMap exposes the helpers to view templates.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"halton":         Halton,
		"haltonPoints":   HaltonPoints,
		"parameterize":   Parameterize,
		"randomString":   RandomString,
		"roundPlaces":    RoundValue,
		"roundToNearest": RoundToNearest,
		"floorToNearest": FloorToNearest,
		"queryParams":    ParseQueryString,
	}
}
