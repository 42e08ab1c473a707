package templates

import "embed"

// FS contains the application document templates, rooted at this directory.
//
//go:embed application/*.html
var FS embed.FS
