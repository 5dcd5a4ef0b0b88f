package drm2hosha

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
)

var (
	linkColumns = []string{"link_id", "from_node_id", "to_node_id", "directed", "geometry", "dir_flag", "length", "facility_type", "lanes", "ped_facility", "jurisdiction", "row_width", "mode", "link_type", "movement", "movement_composite", "via_node_id", "parent_link_id"}
	nodeColumns = []string{"node_id", "x_coord", "y_coord", "node_type", "geometry"}
)

// Position of geometry in linkColumns
const linkGeometryColumn = 4

// linkProperties returns non-geometric attributes of the link in linkColumns order (geometry column skipped)
func linkProperties(link Link) []interface{} {
	return []interface{}{
		link.ID,
		link.FromNodeID,
		link.ToNodeID,
		link.Directed,
		dirFlagValue(link.DirFlag),
		link.LengthMeters,
		link.FacilityType.String(),
		link.Lanes,
		link.PedFacility,
		link.Jurisdiction.String(),
		link.RowWidth.String(),
		link.NetworkType.String(),
		link.LinkType.String(),
		link.MovementType.String(),
		link.MovementCompositeType.String(),
		link.ViaNodeID,
		link.ParentID,
	}
}

// linkPropertyNames returns linkColumns without geometry column
func linkPropertyNames() []string {
	names := make([]string, 0, len(linkColumns)-1)
	for _, column := range linkColumns {
		if column == "geometry" {
			continue
		}
		names = append(names, column)
	}
	return names
}

// artifact is an output file which is written only if every other artifact of the same batch succeeded
type artifact struct {
	path  string
	write func(w io.Writer) error
}

// writeArtifacts writes every artifact into temporary file next to its destination and renames all of them when each one succeeded.
// On failure none of destination files is touched and temporary files are removed.
func writeArtifacts(artifacts []artifact) error {
	temporaries := make([]string, 0, len(artifacts))
	cleanup := func() {
		for _, tmp := range temporaries {
			os.Remove(tmp)
		}
	}
	for _, a := range artifacts {
		tmp, err := writeTemporary(a)
		if tmp != "" {
			temporaries = append(temporaries, tmp)
		}
		if err != nil {
			cleanup()
			return errors.Wrapf(err, "Can't write '%s'", a.path)
		}
	}
	for i, a := range artifacts {
		if err := os.Rename(temporaries[i], a.path); err != nil {
			cleanup()
			return errors.Wrapf(err, "Can't move temporary file to '%s'", a.path)
		}
	}
	return nil
}

func writeTemporary(a artifact) (string, error) {
	file, err := os.CreateTemp(filepath.Dir(a.path), "."+filepath.Base(a.path)+".*.tmp")
	if err != nil {
		return "", errors.Wrap(err, "Can't create temporary file")
	}
	buf := bufio.NewWriter(file)
	if err := a.write(buf); err != nil {
		file.Close()
		return file.Name(), err
	}
	if err := buf.Flush(); err != nil {
		file.Close()
		return file.Name(), errors.Wrap(err, "Can't flush")
	}
	if err := file.Close(); err != nil {
		return file.Name(), errors.Wrap(err, "Can't close")
	}
	return file.Name(), nil
}

// networkArtifacts returns node and link files of the network: '<name>node<suffix>.<ext>' and '<name>link<suffix>.<ext>'
func networkArtifacts(net *Network, dir, name, suffix string, format ExportFormat) []artifact {
	ext := format.String()
	nodesPath := filepath.Join(dir, fmt.Sprintf("%snode%s.%s", name, suffix, ext))
	linksPath := filepath.Join(dir, fmt.Sprintf("%slink%s.%s", name, suffix, ext))
	switch format {
	case EXPORT_CSV:
		return []artifact{
			{path: nodesPath, write: func(w io.Writer) error { return writeNodesCSV(w, net.Nodes) }},
			{path: linksPath, write: func(w io.Writer) error { return writeLinksCSV(w, net.Links) }},
		}
	default:
		return []artifact{
			{path: nodesPath, write: func(w io.Writer) error { return writeNodesGeoJSON(w, net.Nodes) }},
			{path: linksPath, write: func(w io.Writer) error { return writeLinksGeoJSON(w, net.Links) }},
		}
	}
}

// dirFlagValue returns nil for impassable link
func dirFlagValue(flag DirFlag) interface{} {
	if !flag.IsDefined() {
		return nil
	}
	return int(flag)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
