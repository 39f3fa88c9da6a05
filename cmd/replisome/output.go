//nolint:wrapcheck
package main

import (
	"os"

	"github.com/farcloser/primordium/format"
)

// printMeta renders one object through the shared format layer.
func printMeta(object string, meta map[string]any, formatName string) error {
	formatter, err := format.GetFormatter(formatName)
	if err != nil {
		return err
	}

	data := &format.Data{
		Object: object,
		Meta:   meta,
	}

	return formatter.PrintAll([]*format.Data{data}, os.Stdout)
}

// printAll renders one object per run, preserving run order.
func printAll(objects []string, metas []map[string]any, formatName string) error {
	formatter, err := format.GetFormatter(formatName)
	if err != nil {
		return err
	}

	data := make([]*format.Data, 0, len(objects))
	for i, object := range objects {
		data = append(data, &format.Data{
			Object: object,
			Meta:   metas[i],
		})
	}

	return formatter.PrintAll(data, os.Stdout)
}
