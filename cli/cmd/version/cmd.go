package version

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/yvchan/streamsx.topology/cli/internal/flags/enum"
)

const (
	FlagFormat = "format"

	FormatJSON            = "json"
	FormatGoBuildInfo     = "gobuildinfo"
	FormatGoBuildInfoJSON = "gobuildinfojson"
)

// BuildVersion overrides the module version detected from the build info if set, e.g. with
//
//	-ldflags "-X github.com/yvchan/streamsx.topology/cli/cmd/version.BuildVersion=1.2.3"
var BuildVersion = "n/a"

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the build version of the streamsx CLI",
		Long: fmt.Sprintf(`Print the build version of the streamsx CLI.

%[1]q splits a semantic version into its parts, %[2]q prints the go build information
and %[3]q prints the go build information as JSON.`, FormatJSON, FormatGoBuildInfo, FormatGoBuildInfoJSON),
		Args:              cobra.NoArgs,
		RunE:              PrintVersion,
		DisableAutoGenTag: true,
	}

	enum.VarP(cmd.Flags(), FlagFormat, "f", []string{FormatJSON, FormatGoBuildInfo, FormatGoBuildInfoJSON}, "format of the version output")
	return cmd
}

func PrintVersion(cmd *cobra.Command, _ []string) error {
	format, err := enum.Get(cmd.Flags(), FlagFormat)
	if err != nil {
		return fmt.Errorf("getting format flag failed: %w", err)
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return fmt.Errorf("no build info available")
	}
	if BuildVersion != "n/a" {
		bi.Main.Version = BuildVersion
	}

	out := cmd.OutOrStdout()
	switch format {
	case FormatGoBuildInfo:
		_, err = io.WriteString(out, bi.String())
		return err
	case FormatGoBuildInfoJSON:
		return json.NewEncoder(out).Encode(bi)
	default:
		return json.NewEncoder(out).Encode(InfoFrom(bi))
	}
}
