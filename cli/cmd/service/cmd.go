package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/yvchan/streamsx.topology/bindings/go/credentials/vcap"
	"github.com/yvchan/streamsx.topology/cli/internal/flags/enum"
)

const (
	FlagCatalog        = "catalog"
	FlagCatalogFile    = "catalog-file"
	FlagServiceType    = "service-type"
	FlagCatalogEnv     = "catalog-env"
	FlagServiceNameEnv = "service-name-env"
	FlagOutput         = "output"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "service [name]",
		Aliases: []string{"svc", "vcap"},
		Short:   "Resolve the catalog entry of a cloud service",
		Args:    cobra.MaximumNArgs(1),
		Long: fmt.Sprintf(`Resolve the catalog entry of a cloud service, including its credentials.

The service catalog is taken from the first source that is set:
  --%[1]s (JSON text, or a file path if it does not start with '{'),
  --%[2]s,
  the environment variable named by --%[3]s (default %[4]s).

The service name is taken from the first positional argument or the environment variable
named by --%[5]s (default %[6]s).
`, FlagCatalog, FlagCatalogFile, FlagCatalogEnv, vcap.DefaultCatalogEnv, FlagServiceNameEnv, vcap.DefaultServiceNameEnv),
		Example: strings.TrimSpace(`
Resolving a service from the environment:

VCAP_SERVICES=/path/to/vcap.json service my-streams-service

Resolving a database service from a catalog file as YAML:

service my-db --catalog-file vcap.json --service-type cloudantNoSQLDB -oyaml
`),
		RunE:              ResolveService,
		DisableAutoGenTag: true,
	}

	cmd.Flags().String(FlagCatalog, "", "service catalog as JSON text or file path")
	cmd.Flags().String(FlagCatalogFile, "", "path to the service catalog file")
	cmd.Flags().String(FlagServiceType, vcap.DefaultServiceType, "catalog key listing the services to search")
	cmd.Flags().String(FlagCatalogEnv, vcap.DefaultCatalogEnv, "environment variable holding the service catalog")
	cmd.Flags().String(FlagServiceNameEnv, vcap.DefaultServiceNameEnv, "environment variable holding the service name")
	enum.VarP(cmd.Flags(), FlagOutput, "o", []string{"json", "yaml"}, "output format of the service entry")

	return cmd
}

func ResolveService(cmd *cobra.Command, args []string) error {
	var props vcap.Properties
	var err error
	if props.CatalogJSON, err = cmd.Flags().GetString(FlagCatalog); err != nil {
		return fmt.Errorf("getting catalog flag failed: %w", err)
	}
	if props.CatalogFile, err = cmd.Flags().GetString(FlagCatalogFile); err != nil {
		return fmt.Errorf("getting catalog-file flag failed: %w", err)
	}
	if len(args) > 0 {
		props.ServiceName = args[0]
	}

	resolver := &vcap.Resolver{}
	if resolver.ServiceType, err = cmd.Flags().GetString(FlagServiceType); err != nil {
		return fmt.Errorf("getting service-type flag failed: %w", err)
	}
	if resolver.CatalogEnv, err = cmd.Flags().GetString(FlagCatalogEnv); err != nil {
		return fmt.Errorf("getting catalog-env flag failed: %w", err)
	}
	if resolver.ServiceNameEnv, err = cmd.Flags().GetString(FlagServiceNameEnv); err != nil {
		return fmt.Errorf("getting service-name-env flag failed: %w", err)
	}
	output, err := enum.Get(cmd.Flags(), FlagOutput)
	if err != nil {
		return fmt.Errorf("getting output flag failed: %w", err)
	}

	service, err := resolver.ResolveService(cmd.Context(), props)
	if err != nil {
		return fmt.Errorf("resolving service failed: %w", err)
	}

	var data []byte
	switch output {
	case "yaml":
		data, err = yaml.Marshal(service)
	default:
		data, err = json.MarshalIndent(service, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("encoding service entry failed: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
