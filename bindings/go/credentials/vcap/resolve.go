package vcap

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	slogcontext "github.com/veqryn/slog-context"
)

const (
	// DefaultCatalogEnv is the environment variable holding the service catalog.
	DefaultCatalogEnv = "VCAP_SERVICES"
	// DefaultServiceNameEnv is the environment variable holding the service name.
	DefaultServiceNameEnv = "STREAMING_ANALYTICS_SERVICE_NAME"
	// DefaultServiceType is the catalog key listing the services that are searched.
	DefaultServiceType = "streaming-analytics"

	keyName = "name"
)

// Resolver resolves service entries. The zero value resolves against the process environment
// with the default variable names and service type.
type Resolver struct {
	// LookupEnv looks up environment variables. Defaults to os.LookupEnv.
	LookupEnv func(key string) (string, bool)
	// CatalogEnv is the variable consulted if no catalog is set in the properties. Defaults to DefaultCatalogEnv.
	CatalogEnv string
	// ServiceNameEnv is the variable consulted if no service name is set in the properties. Defaults to DefaultServiceNameEnv.
	ServiceNameEnv string
	// ServiceType is the catalog key whose entries are searched. Defaults to DefaultServiceType.
	ServiceType string
}

// ResolveService resolves the service entry for props against the process environment.
func ResolveService(ctx context.Context, props Properties) (map[string]any, error) {
	return (&Resolver{}).ResolveService(ctx, props)
}

// ResolveService returns the catalog entry of the service named by props.
// The entry is returned as is, including its credentials.
func (r *Resolver) ResolveService(ctx context.Context, props Properties) (map[string]any, error) {
	catalog, err := r.Catalog(ctx, props)
	if err != nil {
		return nil, err
	}

	serviceType := r.serviceType()
	raw, ok := catalog[serviceType]
	if !ok || raw == nil {
		return nil, fmt.Errorf("%w: no services of type %q defined in catalog", ErrServiceNotFound, serviceType)
	}
	services, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: services of type %q are %T, expected a list", ErrMalformedCatalog, serviceType, raw)
	}
	if len(services) == 0 {
		return nil, fmt.Errorf("%w: no services of type %q defined in catalog", ErrServiceNotFound, serviceType)
	}

	name, err := r.ServiceName(props)
	if err != nil {
		return nil, err
	}
	for i, entry := range services {
		service, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: service %d of type %q is %T, expected an object", ErrMalformedCatalog, i, serviceType, entry)
		}
		if serviceName, _ := service[keyName].(string); serviceName == name {
			logger(ctx).DebugContext(ctx, "resolved service", slog.String("type", serviceType), slog.String("name", name))
			return service, nil
		}
	}
	return nil, fmt.Errorf("%w: no service of type %q with name %q defined in catalog", ErrServiceNotFound, serviceType, name)
}

// Catalog returns the service catalog, taken from the first source that is set:
// Properties.Catalog, Properties.CatalogJSON, Properties.CatalogFile and finally the catalog environment variable.
func (r *Resolver) Catalog(ctx context.Context, props Properties) (map[string]any, error) {
	log := logger(ctx)
	switch {
	case props.Catalog != nil:
		log.DebugContext(ctx, "using service catalog from properties")
		return props.Catalog, nil
	case props.CatalogJSON != "":
		return parseCatalogString(ctx, props.CatalogJSON)
	case props.CatalogFile != "":
		return readCatalogFile(ctx, props.CatalogFile)
	}
	env := r.catalogEnv()
	value, ok := r.lookupEnv(env)
	if !ok || strings.TrimSpace(value) == "" {
		return nil, fmt.Errorf("%w: neither set in properties nor in environment variable %s", ErrMissingCatalog, env)
	}
	log.DebugContext(ctx, "using service catalog from environment", slog.String("variable", env))
	return parseCatalogString(ctx, value)
}

// ServiceName returns the trimmed service name from Properties.ServiceName or the service name environment variable.
func (r *Resolver) ServiceName(props Properties) (string, error) {
	if name := strings.TrimSpace(props.ServiceName); name != "" {
		return name, nil
	}
	env := r.serviceNameEnv()
	if value, ok := r.lookupEnv(env); ok {
		if name := strings.TrimSpace(value); name != "" {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: neither set in properties nor in environment variable %s", ErrMissingServiceName, env)
}

func (r *Resolver) lookupEnv(key string) (string, bool) {
	if r.LookupEnv != nil {
		return r.LookupEnv(key)
	}
	return os.LookupEnv(key)
}

func (r *Resolver) catalogEnv() string {
	if r.CatalogEnv != "" {
		return r.CatalogEnv
	}
	return DefaultCatalogEnv
}

func (r *Resolver) serviceNameEnv() string {
	if r.ServiceNameEnv != "" {
		return r.ServiceNameEnv
	}
	return DefaultServiceNameEnv
}

func (r *Resolver) serviceType() string {
	if r.ServiceType != "" {
		return r.ServiceType
	}
	return DefaultServiceType
}

// parseCatalogString parses value as catalog JSON if it is an object, and reads it as file path otherwise.
func parseCatalogString(ctx context.Context, value string) (map[string]any, error) {
	if trimmed := strings.TrimSpace(value); strings.HasPrefix(trimmed, "{") {
		logger(ctx).DebugContext(ctx, "using inline service catalog")
		return parseCatalog([]byte(trimmed))
	}
	return readCatalogFile(ctx, value)
}

func readCatalogFile(ctx context.Context, path string) (map[string]any, error) {
	expandedPath, err := expandPath(strings.TrimSpace(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedCatalog, err)
	}
	logger(ctx).DebugContext(ctx, "using service catalog from file", slog.String("path", expandedPath))
	data, err := os.ReadFile(expandedPath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read catalog file: %w", ErrMalformedCatalog, err)
	}
	return parseCatalog(data)
}

func parseCatalog(data []byte) (map[string]any, error) {
	var catalog map[string]any
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedCatalog, err)
	}
	if catalog == nil {
		return nil, fmt.Errorf("%w: catalog is not an object", ErrMalformedCatalog)
	}
	return catalog, nil
}

// expandPath handles shell expansion for the catalog file path.
// Currently supports home directory expansion of a leading ~.
func expandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		dirname, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		return dirname + path[1:], nil
	}
	return path, nil
}

func logger(ctx context.Context) *slog.Logger {
	return slogcontext.FromCtx(ctx).With(slog.String("realm", "vcap"))
}
