package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/deploymenttheory/go-cfb/internal/config"
	"github.com/deploymenttheory/go-cfb/internal/directory"
	"github.com/deploymenttheory/go-cfb/internal/filetime"
	"github.com/deploymenttheory/go-cfb/internal/types"
)

// entryRow is the printable form of one directory entry record
type entryRow struct {
	Index       uint32 `json:"index" yaml:"index"`
	Name        string `json:"name" yaml:"name"`
	Kind        string `json:"kind" yaml:"kind"`
	Color       string `json:"color" yaml:"color"`
	Left        uint32 `json:"left" yaml:"left"`
	Right       uint32 `json:"right" yaml:"right"`
	Child       uint32 `json:"child" yaml:"child"`
	CLSID       string `json:"clsid" yaml:"clsid"`
	UserFlags   uint32 `json:"user_flags" yaml:"user_flags"`
	Created     string `json:"created" yaml:"created"`
	Modified    string `json:"modified" yaml:"modified"`
	StartSector uint32 `json:"start_sector" yaml:"start_sector"`
	Size        uint64 `json:"size" yaml:"size"`
}

func newEntryRow(e *directory.Entry) (entryRow, error) {
	rec, err := e.Record()
	if err != nil {
		return entryRow{}, err
	}
	index, ok := e.Index()
	if !ok {
		index = uint32(types.NoStream)
	}

	return entryRow{
		Index:       index,
		Name:        e.Name(),
		Kind:        directory.Kind(rec.DeObjectType).String(),
		Color:       directory.Color(rec.DeColorFlag).String(),
		Left:        uint32(rec.DeLeftSiblingID),
		Right:       uint32(rec.DeRightSiblingID),
		Child:       uint32(rec.DeChildID),
		CLSID:       e.ClassID().String(),
		UserFlags:   rec.DeStateBits,
		Created:     filetime.FromTicks(rec.DeCreationTime).String(),
		Modified:    filetime.FromTicks(rec.DeModifiedTime).String(),
		StartSector: uint32(rec.DeStartingSector),
		Size:        rec.DeStreamSize,
	}, nil
}

func streamID(id uint32) string {
	if types.StreamIDT(id).IsNull() {
		return "-"
	}
	return strconv.FormatUint(uint64(id), 10)
}

// renderRows writes rows in the requested format
func renderRows(out io.Writer, format string, rows []entryRow) error {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case config.OutputYAML:
		return encodeYAML(out, rows)
	case config.OutputTable:
		table := tablewriter.NewWriter(out)
		table.SetHeader([]string{"#", "Name", "Kind", "Color", "Left", "Right", "Child", "Start", "Size"})
		table.SetAutoFormatHeaders(false)
		for _, r := range rows {
			table.Append([]string{
				streamID(r.Index),
				r.Name,
				r.Kind,
				r.Color,
				streamID(r.Left),
				streamID(r.Right),
				streamID(r.Child),
				strconv.FormatUint(uint64(r.StartSector), 10),
				strconv.FormatUint(r.Size, 10),
			})
		}
		table.Render()
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func encodeYAML(out io.Writer, v any) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
