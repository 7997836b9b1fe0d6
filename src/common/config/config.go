package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/jack-barr3tt/trmnl-departures/src/common/types"
	"gopkg.in/yaml.v3"
)

const (
	DefaultLDBEndpoint        = "https://lite.realtime.nationalrail.co.uk/OpenLDBWS/ldb11.asmx"
	DefaultDeparturesPerRoute = 3
	DefaultPreviewAddr        = ":3000"
)

var (
	ErrMissingToken      = errors.New("NETWORK_RAIL_ACCESS_TOKEN env var not set")
	ErrMissingWebhookURL = errors.New("TRMNL_WEBHOOK_URL env var not set. Please get webhook url from: https://docs.usetrmnl.com/go/private-plugins/create-a-screen#authorization")
	ErrNoRoutes          = errors.New("no routes added in env var")
)

// Config is read once at startup and handed to each component.
type Config struct {
	Routes             []types.Route
	AccessToken        string
	WebhookURL         string
	SkipSend           bool
	DeparturesPerRoute int
	LDBEndpoint        string
	RedisAddr          string
	PreviewAddr        string
}

// Env holds environment variables by name.
type Env map[string]string

// Environ builds an Env from KEY=value pairs such as os.Environ().
func Environ(pairs []string) Env {
	env := make(Env, len(pairs))
	for _, pair := range pairs {
		key, value, _ := strings.Cut(pair, "=")
		env[key] = value
	}
	return env
}

func (e Env) get(key string) string {
	return strings.TrimSpace(e[key])
}

func FromEnvironment() (Config, error) {
	return Load(Environ(os.Environ()))
}

// Load parses the configuration. Malformed values are returned as errors;
// missing required values are reported by Validate.
func Load(env Env) (Config, error) {
	cfg := Config{
		AccessToken:        env.get("NETWORK_RAIL_ACCESS_TOKEN"),
		WebhookURL:         env.get("TRMNL_WEBHOOK_URL"),
		SkipSend:           true,
		DeparturesPerRoute: DefaultDeparturesPerRoute,
		LDBEndpoint:        DefaultLDBEndpoint,
		RedisAddr:          env.get("REDIS_ADDR"),
		PreviewAddr:        DefaultPreviewAddr,
	}

	// sending stays off unless explicitly enabled, TRMNL rate limits webhooks to one per 5 minutes
	if raw, ok := env["SKIP_SEND_TO_TRMNL"]; ok {
		skip, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return Config{}, fmt.Errorf("SKIP_SEND_TO_TRMNL: %w", err)
		}
		cfg.SkipSend = skip
	}

	if raw := env.get("DEPARTURES_PER_ROUTE"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("DEPARTURES_PER_ROUTE: %w", err)
		}
		if n < 1 {
			return Config{}, fmt.Errorf("DEPARTURES_PER_ROUTE must be at least 1, got %d", n)
		}
		cfg.DeparturesPerRoute = n
	}

	if endpoint := env.get("LDB_ENDPOINT"); endpoint != "" {
		cfg.LDBEndpoint = endpoint
	}

	if addr := env.get("PREVIEW_ADDR"); addr != "" {
		cfg.PreviewAddr = addr
	}

	routes, err := loadRoutes(env)
	if err != nil {
		return Config{}, err
	}
	cfg.Routes = routes

	return cfg, nil
}

// ValidateUpstream reports what is missing to query departures.
func (c Config) ValidateUpstream() []error {
	var problems []error

	if len(c.Routes) == 0 {
		problems = append(problems, ErrNoRoutes)
	}
	if c.AccessToken == "" {
		problems = append(problems, ErrMissingToken)
	}

	return problems
}

// Validate reports what is missing to query departures and post them.
func (c Config) Validate() []error {
	var problems []error

	if c.WebhookURL == "" {
		problems = append(problems, ErrMissingWebhookURL)
	}

	return append(problems, c.ValidateUpstream()...)
}

// MaskedToken shows only the first five characters of the access token.
func (c Config) MaskedToken() string {
	if len(c.AccessToken) <= 5 {
		return strings.Repeat("*", len(c.AccessToken))
	}
	return c.AccessToken[:5] + "******"
}

func loadRoutes(env Env) ([]types.Route, error) {
	var routes []types.Route

	if raw := env.get("ROUTES"); raw != "" {
		if err := yaml.Unmarshal([]byte(raw), &routes); err != nil {
			return nil, fmt.Errorf("ROUTES: %w", err)
		}
	} else {
		indexed, err := indexedRoutes(env)
		if err != nil {
			return nil, err
		}
		routes = indexed
	}

	for i := range routes {
		routes[i].From = strings.ToUpper(strings.TrimSpace(routes[i].From))
		routes[i].To = strings.ToUpper(strings.TrimSpace(routes[i].To))

		if routes[i].From == "" || routes[i].To == "" {
			return nil, fmt.Errorf("route %d: both from and to station codes are required", i)
		}
	}

	return routes, nil
}

var indexedRouteKey = regexp.MustCompile(`(?i)^routes__(\d+)__(from|to)$`)

// indexedRoutes reads the Routes__0__From / Routes__0__To form.
func indexedRoutes(env Env) ([]types.Route, error) {
	byIndex := map[int]*types.Route{}

	for key, value := range env {
		match := indexedRouteKey.FindStringSubmatch(key)
		if match == nil {
			continue
		}

		index, err := strconv.Atoi(match[1])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}

		route, ok := byIndex[index]
		if !ok {
			route = &types.Route{}
			byIndex[index] = route
		}

		value = strings.TrimSpace(value)
		if strings.EqualFold(match[2], "from") {
			route.From = value
		} else {
			route.To = value
		}
	}

	indexes := make([]int, 0, len(byIndex))
	for index := range byIndex {
		indexes = append(indexes, index)
	}
	sort.Ints(indexes)

	routes := make([]types.Route, 0, len(indexes))
	for _, index := range indexes {
		routes = append(routes, *byIndex[index])
	}

	return routes, nil
}
