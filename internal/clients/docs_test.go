package clients

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soft-m/softm-api/internal/apidocs"
)

func TestOperationsDescribeMountedRoutes(t *testing.T) {
	doc := apidocs.Build(apidocs.Config{Info: apidocs.Info{Title: "SOFT-M API", Version: "1.0"}}, Operations())

	post := (*doc.Paths["/clients"])["post"]
	require.NotNil(t, post)
	assert.Nil(t, post.Implemented)
	for _, code := range []string{"201", "400", "409"} {
		assert.Contains(t, post.Responses, code)
	}

	body := post.RequestBody.Content["application/json"].Schema
	assert.ElementsMatch(t,
		[]string{"clientType", "siret", "name", "address", "postalCode", "city", "email", "phone"},
		body.Required)
	assert.NotContains(t, body.Properties, "status")
	assert.Equal(t, enumStrings(ClientTypes()), body.Properties["clientType"].Enum)
	assert.Equal(t, `^[0-9]{14}$`, body.Properties["siret"].Pattern)

	created := post.Responses["201"].Content["application/json"].Schema
	assert.ElementsMatch(t, []string{"id", "name"}, created.Required)

	get := (*doc.Paths["/clients/{id}"])["get"]
	require.NotNil(t, get)
	for _, code := range []string{"200", "400", "404"} {
		assert.Contains(t, get.Responses, code)
	}
}

func TestOperationsDoNotCollideWithPlanned(t *testing.T) {
	planned := map[string]bool{}
	for _, op := range apidocs.PlannedOperations() {
		planned[op.Method+" "+op.Path] = true
	}
	for _, op := range Operations() {
		assert.False(t, planned[op.Method+" "+op.Path], op.Method+" "+op.Path)
		assert.True(t, op.Implemented)
	}
}
