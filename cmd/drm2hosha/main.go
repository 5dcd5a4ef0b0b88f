package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/LdDl/drm2hosha"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	linksFileName = flag.String("links", "drm_links.geojson", "Filename of GeoJSON file with DRM links")
	nodesFileName = flag.String("nodes", "drm_nodes.geojson", "Filename of GeoJSON file with DRM nodes")
	mappingFile   = flag.String("mapping", "", "YAML/TOML/JSON file which maps logical fields to DRM properties. Default names are used when empty")
	inputCRS      = flag.String("in-crs", drm2hosha.CRS_WGS84, "CRS of input data. Expected values: EPSG:4326 / EPSG:3857 / EPSG:6669..EPSG:6687")
	exportCRS     = flag.String("out-crs", drm2hosha.CRS_WGS84, "CRS of output data. Expected values: EPSG:4326 / EPSG:3857 / EPSG:6669..EPSG:6687")
	outputDir     = flag.String("out", "./output", "Output directory")
	exportName    = flag.String("name", "hosha_", "Prefix of output files. E.g.: if prefix is 'hosha_' then 'hosha_node.geojson' and 'hosha_link.geojson' will be produced")
	contract      = flag.String("contract", "none", "Contraction of pedestrian network. Expected values: none / partial / full")
	exportDisplay = flag.Bool("display", false, "Export display network additionally?")
	format        = flag.String("format", "geojson", "Format of output files. Expected values: geojson / csv")
	osmFileName   = flag.String("osm", "", "Filename of OSM XML file to export network into. Skipped when empty")
	chFileName    = flag.String("ch", "", "Filename of 'Comma-Separated Values' (CSV) formatted file with contraction hierarchies. E.g.: if file name is 'map.csv' then 3 files will be produced: 'map.csv' (edges), 'map_vertices.csv', 'map_shortcuts.csv'. Skipped when empty")
	verbose       = flag.Bool("verbose", true, "Print progress?")
)

func main() {
	flag.Parse()

	logger := zap.NewNop()
	if *verbose {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	}
	defer logger.Sync()

	if err := run(logger); err != nil {
		logger.Error("Can't develop hosha network", zap.Error(err))
		fmt.Println(err)
		os.Exit(1)
	}
}

func run(logger *zap.Logger) error {
	mapping := drm2hosha.DefaultFieldMapping()
	if *mappingFile != "" {
		var err error
		mapping, err = drm2hosha.LoadFieldMapping(*mappingFile)
		if err != nil {
			return err
		}
	}
	contractOption, err := parseContractOption(*contract)
	if err != nil {
		return err
	}
	exportFormat, err := parseExportFormat(*format)
	if err != nil {
		return err
	}
	cfg := drm2hosha.NewConfig(
		drm2hosha.WithInputCRS(*inputCRS),
		drm2hosha.WithExportCRS(*exportCRS),
		drm2hosha.WithOutputDir(*outputDir),
		drm2hosha.WithExportName(*exportName),
		drm2hosha.WithExportFormat(exportFormat),
		drm2hosha.WithContractOption(contractOption),
		drm2hosha.WithExportDisplay(*exportDisplay),
		drm2hosha.WithLogger(logger),
	)
	logger.Info("Configuration", zap.Stringer("config", cfg))

	rawLinks, rawNodes, err := drm2hosha.LoadDRMGeoJSON(*linksFileName, *nodesFileName, mapping)
	if err != nil {
		return errors.Wrap(err, "Can't load DRM data")
	}
	links, err := drm2hosha.ConvertLinks(rawLinks, cfg)
	if err != nil {
		return err
	}
	nodes, err := drm2hosha.ConvertNodes(rawNodes)
	if err != nil {
		return err
	}

	result, err := drm2hosha.DevelopInCRS(links, nodes, cfg)
	if err != nil {
		return err
	}
	err = drm2hosha.Export(result, cfg)
	if err != nil {
		return err
	}

	if *osmFileName != "" {
		err = exportOSM(result.Raw, *exportCRS, *osmFileName)
		if err != nil {
			return err
		}
	}
	if *chFileName != "" {
		err = drm2hosha.ExportCH(result.Raw, filepath.Clean(*chFileName), logger)
		if err != nil {
			return errors.Wrap(err, "Can't export contraction hierarchies")
		}
	}
	return nil
}

// exportOSM writes network into OSM XML file. OSM requires geographic coordinates.
func exportOSM(net *drm2hosha.Network, netCRS string, fname string) error {
	transformer, err := drm2hosha.NewTransformer(netCRS, drm2hosha.CRS_WGS84)
	if err != nil {
		return err
	}
	err = drm2hosha.ExportOSM(transformer.Network(net), fname)
	if err != nil {
		return errors.Wrap(err, "Can't export OSM")
	}
	return nil
}

func parseContractOption(value string) (drm2hosha.ContractOption, error) {
	switch strings.ToLower(value) {
	case "none", "":
		return drm2hosha.CONTRACT_NONE, nil
	case "partial":
		return drm2hosha.CONTRACT_PARTIAL, nil
	case "full":
		return drm2hosha.CONTRACT_FULL, nil
	default:
		return drm2hosha.CONTRACT_NONE, fmt.Errorf("unknown contraction option '%s'", value)
	}
}

func parseExportFormat(value string) (drm2hosha.ExportFormat, error) {
	switch strings.ToLower(value) {
	case "geojson", "":
		return drm2hosha.EXPORT_GEOJSON, nil
	case "csv":
		return drm2hosha.EXPORT_CSV, nil
	default:
		return drm2hosha.EXPORT_GEOJSON, fmt.Errorf("unknown export format '%s'", value)
	}
}
