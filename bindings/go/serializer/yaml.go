package serializer

import (
	"fmt"
	"io"

	"sigs.k8s.io/yaml"
)

// MediaTypeYAML is the media type of YAML output.
const MediaTypeYAML = "application/yaml"

// YAML serializes values as YAML. Values are marshalled through their JSON
// representation, so json struct tags apply.
var YAML Serializer = yamlSerializer{}

type yamlSerializer struct{}

func (yamlSerializer) Serialize(value any, w io.Writer) error {
	data, err := yaml.Marshal(value)
	if err != nil {
		return fmt.Errorf("could not marshal yaml: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func (yamlSerializer) MediaType() string {
	return MediaTypeYAML
}
