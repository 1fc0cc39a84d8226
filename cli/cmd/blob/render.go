package blob

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"sigs.k8s.io/yaml"

	"github.com/yvchan/streamsx.topology/bindings/go/blob"
	"github.com/yvchan/streamsx.topology/bindings/go/blob/lazy"
)

// Summary describes a serialized value.
type Summary struct {
	Value     string `json:"value"`
	MediaType string `json:"mediaType"`
	Size      int64  `json:"size"`
	Digest    string `json:"digest"`
}

func summarize(blobs []*lazy.Blob) []Summary {
	summaries := make([]Summary, 0, len(blobs))
	for _, b := range blobs {
		mediaType, _ := b.MediaType()
		dig, _ := b.Digest()
		summaries = append(summaries, Summary{
			Value:     b.String(),
			MediaType: mediaType,
			Size:      b.Size(),
			Digest:    dig,
		})
	}
	return summaries
}

func render(w io.Writer, output string, blobs []*lazy.Blob) error {
	switch output {
	case OutputRaw:
		for _, b := range blobs {
			if err := blob.Copy(w, b); err != nil {
				return fmt.Errorf("writing %s failed: %w", b, err)
			}
		}
		return nil
	case OutputJSON:
		data, err := json.MarshalIndent(summarize(blobs), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case OutputYAML:
		data, err := yaml.Marshal(summarize(blobs))
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		_, err := w.Write(encodeSummariesAsTable(summarize(blobs)))
		return err
	}
}

func encodeSummariesAsTable(summaries []Summary) []byte {
	var buf bytes.Buffer
	t := table.NewWriter()
	t.SetOutputMirror(&buf)
	t.AppendHeader(table.Row{"Value", "Media Type", "Size", "Digest"})
	for _, s := range summaries {
		t.AppendRow(table.Row{s.Value, s.MediaType, s.Size, s.Digest})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, AutoMerge: true},
	})
	style := table.StyleLight
	style.Options.DrawBorder = false
	t.SetStyle(style)
	t.Render()
	return buf.Bytes()
}
