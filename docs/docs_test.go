package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestRegisteredDocIsValidSwagger(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var spec struct {
		Swagger string                    `json:"swagger"`
		Info    struct{ Title string }    `json:"info"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &spec), doc)
	assert.Equal(t, "2.0", spec.Swagger)
	assert.Equal(t, SwaggerInfo.Title, spec.Info.Title)
	assert.Contains(t, spec.Paths, "/rooms")
	assert.Contains(t, spec.Paths, "/rooms/{gameType}/{roomID}")
}
