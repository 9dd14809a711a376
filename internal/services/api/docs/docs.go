// Package docs embeds the OpenAPI document served by swaggerkit
package docs

import _ "embed"

// OpenAPI is the robots API description, kept by hand next to the handlers
//
//go:embed openapi.json
var OpenAPI []byte
