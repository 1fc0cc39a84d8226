package blob

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"
	slogcontext "github.com/veqryn/slog-context"
	"golang.org/x/sync/errgroup"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/yvchan/streamsx.topology/bindings/go/blob/lazy"
	"github.com/yvchan/streamsx.topology/bindings/go/serializer"
	"github.com/yvchan/streamsx.topology/cli/internal/flags/enum"
)

const (
	FlagSerializer       = "serializer"
	FlagCompress         = "compress"
	FlagOutput           = "output"
	FlagConcurrencyLimit = "concurrency-limit"
	FlagCapacityHint     = "capacity-hint"
)

const (
	SerializerJSON      = "json"
	SerializerYAML      = "yaml"
	SerializerBigEndian = "bigendian"
	SerializerProtobuf  = "protobuf"
)

const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
	OutputRaw   = "raw"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "blob {value}...",
		Aliases: []string{"blobs", "serialize"},
		Short:   "Serialize values into blobs and describe them",
		Args:    cobra.MinimumNArgs(1),
		Long: fmt.Sprintf(`Serialize values into blobs and describe them.

Every value is parsed as JSON. Values that are not valid JSON are taken as plain strings.
The parsed values are then serialized with the selected serializer:

  %[1]s:      canonical JSON (RFC 8785)
  %[2]s:      YAML
  %[3]s: fixed-size big-endian encoding, integers are encoded as int32 if they fit and int64 otherwise,
             strings as their raw bytes
  %[4]s:  google.protobuf.Value messages
`, SerializerJSON, SerializerYAML, SerializerBigEndian, SerializerProtobuf),
		Example: strings.TrimSpace(`
Describing the big-endian encoding of an integer:

blob 42 --serializer bigendian

Writing the canonical JSON of a document to standard output:

blob '{"b": 1, "a": [true, null]}' --output raw
`),
		RunE:              SerializeBlobs,
		DisableAutoGenTag: true,
	}

	enum.Var(cmd.Flags(), FlagSerializer, []string{SerializerJSON, SerializerYAML, SerializerBigEndian, SerializerProtobuf}, "serializer used to encode the values")
	enum.VarP(cmd.Flags(), FlagOutput, "o", []string{OutputTable, OutputJSON, OutputYAML, OutputRaw}, "output format, raw writes the serialized bytes")
	cmd.Flags().Bool(FlagCompress, false, "compress the serialized values with gzip")
	cmd.Flags().Int(FlagConcurrencyLimit, 4, "maximum amount of values serialized in parallel, 0 or less means no limit")
	cmd.Flags().Int(FlagCapacityHint, 0, "initial buffer size in bytes for serializing a value, 0 uses the default")

	return cmd
}

func SerializeBlobs(cmd *cobra.Command, args []string) error {
	serializerName, err := enum.Get(cmd.Flags(), FlagSerializer)
	if err != nil {
		return fmt.Errorf("getting serializer flag failed: %w", err)
	}
	output, err := enum.Get(cmd.Flags(), FlagOutput)
	if err != nil {
		return fmt.Errorf("getting output flag failed: %w", err)
	}
	compress, err := cmd.Flags().GetBool(FlagCompress)
	if err != nil {
		return fmt.Errorf("getting compress flag failed: %w", err)
	}
	concurrencyLimit, err := cmd.Flags().GetInt(FlagConcurrencyLimit)
	if err != nil {
		return fmt.Errorf("getting concurrency-limit flag failed: %w", err)
	}
	capacityHint, err := cmd.Flags().GetInt(FlagCapacityHint)
	if err != nil {
		return fmt.Errorf("getting capacity-hint flag failed: %w", err)
	}

	s := serializerFor(serializerName)
	if compress {
		s = serializer.Compress(s)
	}

	logger := slogcontext.FromCtx(cmd.Context())
	blobs := make([]*lazy.Blob, len(args))
	for i, arg := range args {
		value, err := parseValue(serializerName, arg)
		if err != nil {
			return fmt.Errorf("parsing value %q failed: %w", arg, err)
		}
		blobs[i] = lazy.New(s, value, lazy.WithCapacityHint(capacityHint), lazy.WithLogger(logger))
	}

	eg, _ := errgroup.WithContext(cmd.Context())
	if concurrencyLimit <= 0 {
		concurrencyLimit = -1
	}
	eg.SetLimit(concurrencyLimit)
	for _, b := range blobs {
		eg.Go(b.Load)
	}
	if err := eg.Wait(); err != nil {
		return fmt.Errorf("serializing values failed: %w", err)
	}

	return render(cmd.OutOrStdout(), output, blobs)
}

func serializerFor(name string) serializer.Serializer {
	switch name {
	case SerializerYAML:
		return serializer.YAML
	case SerializerBigEndian:
		return serializer.BigEndian
	case SerializerProtobuf:
		return serializer.Proto
	default:
		return serializer.CanonicalJSON
	}
}

// parseValue parses arg as JSON, falling back to the plain string, and converts it into
// a value the named serializer can encode.
func parseValue(serializerName, arg string) (any, error) {
	var value any
	if err := json.Unmarshal([]byte(arg), &value); err != nil {
		value = arg
	}

	switch serializerName {
	case SerializerBigEndian:
		return fixedSize(value), nil
	case SerializerProtobuf:
		return structpb.NewValue(value)
	default:
		return value, nil
	}
}

// fixedSize converts JSON values into their fixed-size counterparts where one exists.
func fixedSize(value any) any {
	switch v := value.(type) {
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return v
		}
		if v >= math.MinInt32 && v <= math.MaxInt32 {
			return int32(v)
		}
		if v >= math.MinInt64 && v < math.MaxInt64 {
			return int64(v)
		}
		return v
	case string:
		return []byte(v)
	default:
		return v
	}
}
