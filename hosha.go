package drm2hosha

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Result is an output of the pipeline
type Result struct {
	// Final network
	Raw *Network
	// Same network with exaggerated offsets of auxiliary nodes. Nil unless requested
	Display *Network
}

// Develop builds combined pedestrian and vehicle network from translated DRM tables.
// Coordinates must be planar (meters). Input slices are not modified.
func Develop(links []Link, nodes []Node, cfg *Config) (*Result, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	cfg.logger.Info("Developing hosha network...", zap.Int("links", len(links)), zap.Int("nodes", len(nodes)))
	st := time.Now()

	nodes = withSourceRef(nodes)
	original := &Network{Nodes: nodes, Links: links}
	alloc := newIDAllocator(nodes, links)

	mergedLinks, mergedNodes, err := resolveVirtualNodes(links, nodes, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "Can't resolve virtual nodes")
	}
	modal := branchNetworkTypes(mergedLinks, mergedNodes, cfg)
	walk := buildPedestrianNetwork(modal.walk, cfg, alloc)
	auto := buildVehicleNetwork(modal.auto, cfg, alloc)
	integrated, err := integrateNetworks(walk, auto, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "Can't integrate networks")
	}
	finalized, err := finalizeNetwork(integrated, original, modal.impassable, cfg, alloc)
	if err != nil {
		return nil, errors.Wrap(err, "Can't finalize network")
	}
	split, err := splitLinks(finalized, cfg, alloc)
	if err != nil {
		return nil, errors.Wrap(err, "Can't split links")
	}
	result := Result{
		Raw: bidirectionalize(split, cfg, alloc),
	}
	if cfg.exportDisplay {
		result.Display = displayNetwork(result.Raw, nodePositions(nodes), cfg.displayScale, cfg)
	}

	cfg.logger.Info("Done", zap.Duration("elapsed", time.Since(st)), zap.Int("links", len(result.Raw.Links)), zap.Int("nodes", len(result.Raw.Nodes)))
	return &result, nil
}

// DevelopHoshaNetwork builds combined pedestrian and vehicle network and writes it into 'outputDir'.
// Raw network is always written, display network only when requested with WithExportDisplay.
// Nothing is written if any stage fails.
func DevelopHoshaNetwork(links []Link, nodes []Node, inputCRS, outputDir, exportCRS string, options ...Option) error {
	options = append(options, WithInputCRS(inputCRS), WithOutputDir(outputDir), WithExportCRS(exportCRS))
	cfg := NewConfig(options...)
	cfg.logger.Info("Configuration", zap.Stringer("config", cfg))

	result, err := DevelopInCRS(links, nodes, cfg)
	if err != nil {
		return err
	}
	return Export(result, cfg)
}

// DevelopInCRS reprojects input tables into planar working CRS, runs the pipeline and reprojects result into export CRS
func DevelopInCRS(links []Link, nodes []Node, cfg *Config) (*Result, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	working := workingCRS(cfg.inputCRS)
	toWorking, err := NewTransformer(cfg.inputCRS, working)
	if err != nil {
		return nil, errors.Wrap(err, "Can't prepare input transformation")
	}
	toExport, err := NewTransformer(working, cfg.exportCRS)
	if err != nil {
		return nil, errors.Wrap(err, "Can't prepare export transformation")
	}

	input := toWorking.Network(&Network{Nodes: nodes, Links: links})
	result, err := Develop(input.Links, input.Nodes, cfg)
	if err != nil {
		return nil, err
	}
	result.Raw = toExport.Network(result.Raw)
	if result.Display != nil {
		result.Display = toExport.Network(result.Display)
	}
	return result, nil
}

// Export writes raw network and (when present) display network as one batch
func Export(result *Result, cfg *Config) error {
	if cfg == nil {
		cfg = NewConfig()
	}
	cfg.logger.Info("Exporting network...", zap.String("output_dir", cfg.outputDir), zap.Stringer("format", cfg.exportFormat))
	st := time.Now()

	err := os.MkdirAll(cfg.outputDir, 0755)
	if err != nil {
		return errors.Wrap(err, "Can't create output directory")
	}
	artifacts := networkArtifacts(result.Raw, cfg.outputDir, cfg.exportName, "", cfg.exportFormat)
	if result.Display != nil {
		artifacts = append(artifacts, networkArtifacts(result.Display, cfg.outputDir, cfg.exportName, "_display", cfg.exportFormat)...)
	}
	err = writeArtifacts(artifacts)
	if err != nil {
		return errors.Wrap(err, "Can't export network")
	}

	cfg.logger.Info("Done", zap.Duration("elapsed", time.Since(st)), zap.Int("files", len(artifacts)))
	return nil
}
