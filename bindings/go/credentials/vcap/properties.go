package vcap

import (
	"encoding/json"
	"fmt"
)

// Keys of deployment properties understood by PropertiesFromMap.
const (
	// PropertyCatalog holds the service catalog as object, JSON text or file path.
	PropertyCatalog = "topology.service.vcap"
	// PropertyServiceName holds the name of the service to resolve.
	PropertyServiceName = "topology.service.name"
)

// Properties are the deployment properties relevant for resolving a service.
// Empty fields are treated as not set.
type Properties struct {
	// Catalog is an already parsed service catalog.
	Catalog map[string]any
	// CatalogJSON is either the JSON text of the catalog or, if it does not start with '{', a path to a catalog file.
	CatalogJSON string
	// CatalogFile is the path to a file that holds the catalog.
	CatalogFile string
	// ServiceName is the name of the service entry to resolve.
	ServiceName string
}

// PropertiesFromMap extracts Properties from a deployment properties record.
// The catalog may be given as object, as string or as raw JSON bytes.
func PropertiesFromMap(properties map[string]any) (Properties, error) {
	var props Properties
	switch catalog := properties[PropertyCatalog].(type) {
	case nil:
	case map[string]any:
		props.Catalog = catalog
	case string:
		props.CatalogJSON = catalog
	case json.RawMessage:
		props.CatalogJSON = string(catalog)
	case []byte:
		props.CatalogJSON = string(catalog)
	default:
		return Properties{}, fmt.Errorf("%w: property %q has unsupported type %T", ErrMalformedCatalog, PropertyCatalog, catalog)
	}
	switch name := properties[PropertyServiceName].(type) {
	case nil:
	case string:
		props.ServiceName = name
	case fmt.Stringer:
		props.ServiceName = name.String()
	default:
		return Properties{}, fmt.Errorf("property %q has unsupported type %T", PropertyServiceName, name)
	}
	return props, nil
}
