package config

import (
	"testing"

	"github.com/jack-barr3tt/trmnl-departures/src/common/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(Env{})
	require.NoError(t, err)

	assert.True(t, cfg.SkipSend)
	assert.Equal(t, DefaultDeparturesPerRoute, cfg.DeparturesPerRoute)
	assert.Equal(t, DefaultLDBEndpoint, cfg.LDBEndpoint)
	assert.Equal(t, DefaultPreviewAddr, cfg.PreviewAddr)
	assert.Empty(t, cfg.Routes)
	assert.Empty(t, cfg.RedisAddr)
}

func TestLoadFromEnviron(t *testing.T) {
	env := Environ([]string{
		"NETWORK_RAIL_ACCESS_TOKEN=0123456789abcdef",
		"TRMNL_WEBHOOK_URL=https://usetrmnl.com/api/custom_plugins/abc",
		"SKIP_SEND_TO_TRMNL=false",
		"DEPARTURES_PER_ROUTE=4",
		"LDB_ENDPOINT=http://localhost:8080/ldb",
		"REDIS_ADDR=localhost:6379",
		"PREVIEW_ADDR=:8081",
		`ROUTES=[{"from": "kgx", "to": "YRK"}, {"from": "YRK", "to": "KGX"}]`,
	})

	cfg, err := Load(env)
	require.NoError(t, err)

	assert.Equal(t, "0123456789abcdef", cfg.AccessToken)
	assert.Equal(t, "https://usetrmnl.com/api/custom_plugins/abc", cfg.WebhookURL)
	assert.False(t, cfg.SkipSend)
	assert.Equal(t, 4, cfg.DeparturesPerRoute)
	assert.Equal(t, "http://localhost:8080/ldb", cfg.LDBEndpoint)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, ":8081", cfg.PreviewAddr)
	assert.Equal(t, []types.Route{{From: "KGX", To: "YRK"}, {From: "YRK", To: "KGX"}}, cfg.Routes)
	assert.Empty(t, cfg.Validate())
}

func TestLoadYAMLRoutes(t *testing.T) {
	cfg, err := Load(Env{"ROUTES": "- from: PAD\n  to: RDG\n- {from: RDG, to: PAD}\n"})
	require.NoError(t, err)
	assert.Equal(t, []types.Route{{From: "PAD", To: "RDG"}, {From: "RDG", To: "PAD"}}, cfg.Routes)
}

func TestLoadIndexedRoutes(t *testing.T) {
	cfg, err := Load(Env{
		"Routes__10__From": "EUS",
		"Routes__10__To":   "MAN",
		"ROUTES__1__FROM":  "bri",
		"ROUTES__1__TO":    "pad",
		"Routes__0__From":  "KGX",
		"Routes__0__To":    "CBG",
	})
	require.NoError(t, err)
	assert.Equal(t, []types.Route{
		{From: "KGX", To: "CBG"},
		{From: "BRI", To: "PAD"},
		{From: "EUS", To: "MAN"},
	}, cfg.Routes)
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	cases := map[string]Env{
		"skip flag":        {"SKIP_SEND_TO_TRMNL": "maybe"},
		"departures":       {"DEPARTURES_PER_ROUTE": "three"},
		"zero departures":  {"DEPARTURES_PER_ROUTE": "0"},
		"routes syntax":    {"ROUTES": "[{from: KGX"},
		"half route":       {"ROUTES": `[{"from": "KGX"}]`},
		"half indexed one": {"Routes__0__From": "KGX"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(env)
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	assert.ElementsMatch(t, []error{ErrMissingWebhookURL, ErrMissingToken, ErrNoRoutes}, Config{}.Validate())

	cfg := Config{AccessToken: "token", WebhookURL: "https://example.com"}
	assert.Equal(t, []error{ErrNoRoutes}, cfg.Validate())

	cfg = Config{AccessToken: "token", Routes: []types.Route{{From: "KGX", To: "YRK"}}}
	assert.Empty(t, cfg.ValidateUpstream())
	assert.Equal(t, []error{ErrMissingWebhookURL}, cfg.Validate())
}

func TestMaskedToken(t *testing.T) {
	assert.Equal(t, "01234******", Config{AccessToken: "0123456789"}.MaskedToken())
	assert.Equal(t, "***", Config{AccessToken: "abc"}.MaskedToken())
	assert.Equal(t, "", Config{}.MaskedToken())
}
