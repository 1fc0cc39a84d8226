package cmd_test

import (
	"compress/gzip"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"sigs.k8s.io/yaml"

	"github.com/yvchan/streamsx.topology/bindings/go/credentials/vcap"
	"github.com/yvchan/streamsx.topology/bindings/go/serializer"
	"github.com/yvchan/streamsx.topology/cli/cmd/blob"
	"github.com/yvchan/streamsx.topology/cli/cmd/internal/test"
)

func Test_Blob_Raw(t *testing.T) {
	protoNumber, err := proto.MarshalOptions{Deterministic: true}.Marshal(structpb.NewNumberValue(42))
	require.NoError(t, err)

	tests := []struct {
		name     string
		args     []string
		expected []byte
	}{
		{
			name:     "canonical json",
			args:     []string{"blob", `{"b": 1, "a": [true, null]}`, "-o", "raw"},
			expected: []byte(`{"a":[true,null],"b":1}`),
		},
		{
			name:     "big-endian int32",
			args:     []string{"blob", "42", "--serializer", "bigendian", "-o", "raw"},
			expected: []byte{0x00, 0x00, 0x00, 0x2a},
		},
		{
			name:     "big-endian int64",
			args:     []string{"blob", "4294967296", "--serializer", "bigendian", "-o", "raw"},
			expected: []byte{0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00},
		},
		{
			name:     "big-endian string",
			args:     []string{"blob", "hi", "--serializer", "bigendian", "-o", "raw"},
			expected: []byte("hi"),
		},
		{
			name:     "multiple values are written in order",
			args:     []string{"blob", "1", "2", "3", "--serializer", "bigendian", "-o", "raw", "--concurrency-limit", "2"},
			expected: []byte{0, 0, 0, 1, 0, 0, 0, 2, 0, 0, 0, 3},
		},
		{
			name:     "concurrency limit 0 means no limit",
			args:     []string{"blob", "1", "2", "--serializer", "bigendian", "-o", "raw", "--concurrency-limit", "0"},
			expected: []byte{0, 0, 0, 1, 0, 0, 0, 2},
		},
		{
			name:     "negative concurrency limit means no limit",
			args:     []string{"blob", "1", "--serializer", "bigendian", "-o", "raw", "--concurrency-limit", "-3"},
			expected: []byte{0, 0, 0, 1},
		},
		{
			name:     "yaml",
			args:     []string{"blob", `{"name": "tuple"}`, "--serializer", "yaml", "-o", "raw"},
			expected: []byte("name: tuple\n"),
		},
		{
			name:     "protobuf",
			args:     []string{"blob", "42", "--serializer", "protobuf", "-o", "raw"},
			expected: protoNumber,
		},
		{
			name:     "small capacity hint",
			args:     []string{"blob", `"a longer string value"`, "-o", "raw", "--capacity-hint", "1"},
			expected: []byte(`"a longer string value"`),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := test.Run(t, test.WithArgs(tc.args...))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, res.Out.Bytes())
		})
	}
}

func Test_Blob_Compressed(t *testing.T) {
	r := require.New(t)
	res, err := test.Run(t, test.WithArgs("blob", `{"b": 1, "a": 2}`, "--compress", "-o", "raw"))
	r.NoError(err)

	gz, err := gzip.NewReader(&res.Out)
	r.NoError(err)
	data, err := io.ReadAll(gz)
	r.NoError(err)
	r.Equal(`{"a":2,"b":1}`, string(data))
}

func Test_Blob_Summary_Formats(t *testing.T) {
	canonical := []byte(`{"a":2,"b":1}`)
	expected := blob.Summary{
		Value:     "map[a:2 b:1]",
		MediaType: serializer.MediaTypeJSON,
		Size:      int64(len(canonical)),
		Digest:    digest.FromBytes(canonical).String(),
	}

	t.Run("json", func(t *testing.T) {
		r := require.New(t)
		res, err := test.Run(t, test.WithArgs("blob", `{"b": 1, "a": 2}`, "-o", "json"))
		r.NoError(err)

		var summaries []blob.Summary
		r.NoError(json.Unmarshal(res.Out.Bytes(), &summaries))
		r.Equal([]blob.Summary{expected}, summaries)
	})

	t.Run("yaml", func(t *testing.T) {
		r := require.New(t)
		res, err := test.Run(t, test.WithArgs("blob", `{"b": 1, "a": 2}`, "-o", "yaml"))
		r.NoError(err)

		var summaries []blob.Summary
		r.NoError(yaml.Unmarshal(res.Out.Bytes(), &summaries))
		r.Equal([]blob.Summary{expected}, summaries)
	})

	t.Run("table", func(t *testing.T) {
		r := require.New(t)
		res, err := test.Run(t, test.WithArgs("blob", `{"b": 1, "a": 2}`))
		r.NoError(err)

		table := res.Out.String()
		r.Contains(table, "VALUE")
		r.Contains(table, "MEDIA TYPE")
		r.Contains(table, expected.Digest)
		r.Contains(table, serializer.MediaTypeJSON)
	})

	t.Run("compressed media type", func(t *testing.T) {
		r := require.New(t)
		res, err := test.Run(t, test.WithArgs("blob", "1", "--compress", "-o", "json"))
		r.NoError(err)

		var summaries []blob.Summary
		r.NoError(json.Unmarshal(res.Out.Bytes(), &summaries))
		r.Len(summaries, 1)
		r.Equal(serializer.MediaTypeJSON+serializer.MediaTypeGzipSuffix, summaries[0].MediaType)
	})
}

func Test_Blob_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		is   error
	}{
		{
			name: "no values",
			args: []string{"blob"},
		},
		{
			name: "unknown serializer",
			args: []string{"blob", "1", "--serializer", "xml"},
		},
		{
			name: "unknown output",
			args: []string{"blob", "1", "-o", "csv"},
		},
		{
			name: "big-endian object is not fixed size",
			args: []string{"blob", `{"a": 1}`, "--serializer", "bigendian"},
			is:   serializer.ErrEncodingFailure,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := test.Run(t, test.WithArgs(tc.args...))
			require.Error(t, err)
			if tc.is != nil {
				require.ErrorIs(t, err, tc.is)
			}
		})
	}
}

func Test_Blob_Logs_Serialization(t *testing.T) {
	r := require.New(t)
	res, err := test.Run(t, test.WithArgs("blob", "42", "--serializer", "bigendian", "-o", "raw"))
	r.NoError(err)

	r.Equal([]string{"operation starting", "value serialized", "operation completed"}, res.Logs.Messages(t, "blob"))
	entries := res.Logs.Realm(t, "blob")
	r.Equal("serialize", entries[0].Attrs["operation"])
	r.Equal("serialize", entries[2].Attrs["operation"])
	r.Equal(map[string]any{
		"mediaType": serializer.DefaultMediaType,
		"size":      float64(4),
		"digest":    digest.FromBytes([]byte{0, 0, 0, 0x2a}).String(),
	}, entries[1].Attrs["content"])
	for _, entry := range entries {
		r.Equal("DEBUG", entry.Level)
	}
	r.Empty(res.Logs.Realm(t, "vcap"))
}

func Test_Blob_Logs_Failure(t *testing.T) {
	r := require.New(t)
	res, err := test.Run(t, test.WithArgs("blob", `{"a": 1}`, "--serializer", "bigendian"))
	r.ErrorIs(err, serializer.ErrEncodingFailure)

	entries := res.Logs.Realm(t, "blob")
	r.NotEmpty(entries)
	failed := entries[len(entries)-1]
	r.Equal("operation failed", failed.Msg)
	r.Equal("ERROR", failed.Level)
	r.Contains(failed.Attrs["error"], "map[a:1]")
}

func Test_Logs_Realm_Filter(t *testing.T) {
	r := require.New(t)
	res, err := test.Run(t, test.WithArgs("service", "streams-dev", "--catalog-file", "testdata/vcap.json", "--logrealm", "blob"))
	r.NoError(err)
	r.Empty(res.Logs.Realm(t, "vcap"))

	res, err = test.Run(t, test.WithArgs("service", "streams-dev", "--catalog-file", "testdata/vcap.json", "--logrealm", "vcap"))
	r.NoError(err)
	r.Equal([]string{"using service catalog from file", "resolved service"}, res.Logs.Messages(t, "vcap"))
}

func Test_Logs_Level(t *testing.T) {
	r := require.New(t)
	res, err := test.Run(t, test.WithArgs("blob", "42", "-o", "raw"), test.WithLogLevel("info"))
	r.NoError(err)
	r.Empty(res.Logs.Entries(t))
}

func Test_Service(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected map[string]any
	}{
		{
			name: "streaming analytics service from catalog file",
			args: []string{"service", "streams-dev", "--catalog-file", "testdata/vcap.json"},
			expected: map[string]any{
				"name": "streams-dev",
				"plan": "entry-container-hourly",
				"credentials": map[string]any{
					"apikey":      "dev-key",
					"v2_rest_url": "https://streams.example.com/v2/streaming_analytics/dev",
				},
			},
		},
		{
			name: "catalog flag as file path",
			args: []string{"service", "streams-dev", "--catalog", "testdata/vcap.json", "--service-type", "cloudantNoSQLDB"},
			expected: map[string]any{
				"name": "streams-dev",
				"credentials": map[string]any{
					"url": "https://db.example.com",
				},
			},
		},
		{
			name: "catalog flag as json",
			args: []string{"service", "inline", "--catalog", `{"streaming-analytics": [{"name": "inline", "credentials": {}}]}`},
			expected: map[string]any{
				"name":        "inline",
				"credentials": map[string]any{},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := require.New(t)
			res, err := test.Run(t, test.WithArgs(tc.args...))
			r.NoError(err)

			var service map[string]any
			r.NoError(json.Unmarshal(res.Out.Bytes(), &service))
			r.Equal(tc.expected, service)
		})
	}
}

func Test_Service_YAML(t *testing.T) {
	r := require.New(t)
	res, err := test.Run(t, test.WithArgs("service", "streams-dev", "--catalog-file", "testdata/vcap.json", "-o", "yaml"))
	r.NoError(err)
	r.True(strings.HasPrefix(res.Out.String(), "credentials:\n"), res.Out.String())
	r.Contains(res.Out.String(), "apikey: dev-key")
}

func Test_Service_Environment(t *testing.T) {
	t.Setenv("TEST_CATALOG", `{"streaming-analytics": [{"name": "from-env", "credentials": {"apikey": "env-key"}}]}`)
	t.Setenv("TEST_SERVICE_NAME", "from-env")

	r := require.New(t)
	res, err := test.Run(t, test.WithArgs("service", "--catalog-env", "TEST_CATALOG", "--service-name-env", "TEST_SERVICE_NAME"))
	r.NoError(err)

	var service map[string]any
	r.NoError(json.Unmarshal(res.Out.Bytes(), &service))
	r.Equal("from-env", service["name"])
}

func Test_Service_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		is   error
	}{
		{
			name: "unknown service",
			args: []string{"service", "unknown", "--catalog-file", "testdata/vcap.json"},
			is:   vcap.ErrServiceNotFound,
		},
		{
			name: "missing catalog",
			args: []string{"service", "streams-dev", "--catalog-env", "TEST_UNSET_CATALOG"},
			is:   vcap.ErrMissingCatalog,
		},
		{
			name: "missing service name",
			args: []string{"service", "--catalog-file", "testdata/vcap.json", "--service-name-env", "TEST_UNSET_SERVICE_NAME"},
			is:   vcap.ErrMissingServiceName,
		},
		{
			name: "malformed catalog",
			args: []string{"service", "streams-dev", "--catalog", "{not json"},
			is:   vcap.ErrMalformedCatalog,
		},
		{
			name: "missing catalog file",
			args: []string{"service", "streams-dev", "--catalog-file", "testdata/missing.json"},
			is:   vcap.ErrMalformedCatalog,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := test.Run(t, test.WithArgs(tc.args...))
			require.ErrorIs(t, err, tc.is)
		})
	}
}
