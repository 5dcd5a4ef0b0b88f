package drm2hosha

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/paulmach/orb/encoding/wkt"
	"github.com/pkg/errors"
)

func writeLinksCSV(w io.Writer, links []Link) error {
	writer := csv.NewWriter(w)
	writer.Comma = ';'

	err := writer.Write(linkColumns)
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}

	for _, link := range links {
		props := linkProperties(link)
		record := make([]string, 0, len(linkColumns))
		for i, prop := range props {
			if i == linkGeometryColumn {
				record = append(record, wkt.MarshalString(link.Geom))
			}
			record = append(record, formatValue(prop))
		}
		err = writer.Write(record)
		if err != nil {
			return errors.Wrap(err, "Can't write link")
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeNodesCSV(w io.Writer, nodes []Node) error {
	writer := csv.NewWriter(w)
	writer.Comma = ';'

	err := writer.Write(nodeColumns)
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}

	for _, node := range nodes {
		err = writer.Write([]string{
			node.ID,
			formatFloat(node.X()),
			formatFloat(node.Y()),
			node.NodeType.String(),
			wkt.MarshalString(node.Geom),
		})
		if err != nil {
			return errors.Wrap(err, "Can't write node")
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case float64:
		return formatFloat(v)
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
