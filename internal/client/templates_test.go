package client

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalhttp "github.com/fivetwenty-io/sonarqube-client/internal/http"
	"github.com/fivetwenty-io/sonarqube-client/pkg/sonarqube"
)

func TestEndpoint_Expand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		endpoint      endpoint
		vars          params
		expectedPath  string
		expectedQuery string
	}{
		{
			name:         "no variables",
			endpoint:     validateEndpoint,
			expectedPath: "/api/authentication/validate",
		},
		{
			name:         "empty values are omitted",
			endpoint:     webhookListEndpoint,
			vars:         params{"project": ""},
			expectedPath: "/api/webhooks/list",
		},
		{
			name:          "project scoped list",
			endpoint:      webhookListEndpoint,
			vars:          params{"project": "calendar.parent"},
			expectedPath:  "/api/webhooks/list",
			expectedQuery: "project=calendar.parent",
		},
		{
			name:     "reserved characters are encoded",
			endpoint: webhookCreateEndpoint,
			vars: params{
				"name":   "jenkins ci",
				"url":    "http://www.google.com/sonarqube-webhook?x=1&y=2",
				"secret": "",
			},
			expectedPath:  "/api/webhooks/create",
			expectedQuery: "name=jenkins+ci&url=http%3A%2F%2Fwww.google.com%2Fsonarqube-webhook%3Fx%3D1%26y%3D2",
		},
		{
			name:          "pagination",
			endpoint:      projectSearchEndpoint,
			vars:          params{"q": "cal", "p": "2", "ps": "50"},
			expectedPath:  "/api/projects/search",
			expectedQuery: "p=2&ps=50&q=cal",
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			req, err := testCase.endpoint.expand(testCase.vars)
			require.NoError(t, err)
			assert.Equal(t, testCase.endpoint.method, req.Method)
			assert.Equal(t, testCase.expectedPath, req.Path)
			assert.Equal(t, testCase.expectedQuery, req.Query.Encode())
		})
	}
}

func TestEndpoint_Methods(t *testing.T) {
	t.Parallel()

	assert.Equal(t, http.MethodPost, loginEndpoint.method)
	assert.Equal(t, http.MethodPost, webhookCreateEndpoint.method)
	assert.Equal(t, http.MethodPost, webhookDeleteEndpoint.method)
	assert.Equal(t, http.MethodGet, almSetBindingEndpoint.method)
	assert.Equal(t, http.MethodGet, projectSearchEndpoint.method)

	assert.True(t, almSetBindingEndpoint.mutating)
	assert.True(t, webhookCreateEndpoint.mutating)
	assert.True(t, webhookDeleteEndpoint.mutating)
	assert.False(t, almBindingEndpoint.mutating)
	assert.False(t, webhookListEndpoint.mutating)

	req, err := almSetBindingEndpoint.expand(params{"project": "calendar.parent"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.True(t, req.Mutating)
}

func TestParams_With(t *testing.T) {
	t.Parallel()

	base := params{"q": "cal"}
	next := base.with("p", "2")

	assert.Equal(t, params{"q": "cal"}, base)
	assert.Equal(t, params{"q": "cal", "p": "2"}, next)

	var empty params
	assert.Equal(t, params{"ps": "10"}, empty.with("ps", "10"))
}

func TestDecode(t *testing.T) {
	t.Parallel()

	t.Run("no content", func(t *testing.T) {
		t.Parallel()

		value, err := decode[sonarqube.Authentication](&internalhttp.Response{StatusCode: http.StatusNoContent})
		require.NoError(t, err)
		assert.Nil(t, value)
	})

	t.Run("valid body", func(t *testing.T) {
		t.Parallel()

		value, err := decode[sonarqube.Authentication](&internalhttp.Response{StatusCode: http.StatusOK, Body: []byte(`{"valid":true}`)})
		require.NoError(t, err)
		require.NotNil(t, value)
		assert.True(t, value.Valid)
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()

		value, err := decode[sonarqube.Authentication](&internalhttp.Response{StatusCode: http.StatusOK, Body: []byte(`<html>`)})
		require.Error(t, err)
		assert.Nil(t, value)

		deserializationErr := &sonarqube.DeserializationError{}
		assert.ErrorAs(t, err, &deserializationErr)
	})
}
