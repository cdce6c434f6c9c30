// Package apidoc serves the OpenAPI description of the HTTP API.
package apidoc

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gin-gonic/gin"
)

//go:embed openapi.yaml
var specYAML []byte

// Load parses and validates the embedded document, stamping version into
// info.version when set.
func Load(ctx context.Context, version string) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(specYAML)
	if err != nil {
		return nil, fmt.Errorf("apidoc: load document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("apidoc: invalid document: %w", err)
	}
	if version != "" && doc.Info != nil {
		doc.Info.Version = version
	}
	return doc, nil
}

// Handler serves doc as JSON. The document is encoded once.
func Handler(doc *openapi3.T) (gin.HandlerFunc, error) {
	data, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("apidoc: encode: %w", err)
	}
	return func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", data)
	}, nil
}
