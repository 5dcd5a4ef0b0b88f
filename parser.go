package drm2hosha

import (
	"fmt"

	"go.uber.org/zap"
)

// ContractOption is a pedestrian network contraction mode
type ContractOption uint16

const (
	CONTRACT_NONE = ContractOption(iota)
	CONTRACT_PARTIAL
	CONTRACT_FULL
)

func (iotaIdx ContractOption) String() string {
	return [...]string{"none", "partial", "full"}[iotaIdx]
}

// ExportFormat is a file format of exported network
type ExportFormat uint16

const (
	EXPORT_GEOJSON = ExportFormat(iota)
	EXPORT_CSV
)

func (iotaIdx ExportFormat) String() string {
	return [...]string{"geojson", "csv"}[iotaIdx]
}

const (
	defaultExportName    = "hosha_"
	defaultDisplayScale  = 10.0
	defaultCutLength     = 2.0
	defaultSnapTolerance = 0.01
)

// Config holds every parameter of the pipeline. It is passed explicitly into each stage.
type Config struct {
	inputCRS              string
	exportCRS             string
	outputDir             string
	exportName            string
	exportFormat          ExportFormat
	contract              ContractOption
	exportDisplay         bool
	displayScale          float64
	cutLength             float64
	snapTolerance         float64
	retainImpassable      bool
	symmetricMerge        bool
	pedestrianRoadClasses []int
	logger                *zap.Logger
}

func (cfg *Config) String() string {
	return fmt.Sprintf(`
Hosha network parameters:
	input_crs: '%s'
	export_crs: '%s'
	output_dir: '%s'
	export_name: '%s'
	export_format: '%s'
	contract: '%s'
	export_display: %t
	display_scale: %f
	cut_length: %f
	snap_tolerance: %f
	retain_impassable: %t
	symmetric_merge: %t
	pedestrian_road_classes: %v
	`,
		cfg.inputCRS,
		cfg.exportCRS,
		cfg.outputDir,
		cfg.exportName,
		cfg.exportFormat,
		cfg.contract,
		cfg.exportDisplay,
		cfg.displayScale,
		cfg.cutLength,
		cfg.snapTolerance,
		cfg.retainImpassable,
		cfg.symmetricMerge,
		cfg.pedestrianRoadClasses,
	)
}

type Option func(*Config)

func NewConfig(options ...Option) *Config {
	cfg := &Config{
		inputCRS:              CRS_WGS84,
		exportCRS:             CRS_WGS84,
		outputDir:             "./output",
		exportName:            defaultExportName,
		exportFormat:          EXPORT_GEOJSON,
		contract:              CONTRACT_NONE,
		exportDisplay:         false,
		displayScale:          defaultDisplayScale,
		cutLength:             defaultCutLength,
		snapTolerance:         defaultSnapTolerance,
		retainImpassable:      false,
		symmetricMerge:        false,
		pedestrianRoadClasses: defaultPedestrianRoadClasses,
		logger:                zap.NewNop(),
	}
	for _, option := range options {
		option(cfg)
	}
	return cfg
}

func WithInputCRS(crs string) Option {
	return func(cfg *Config) {
		cfg.inputCRS = crs
	}
}

func WithExportCRS(crs string) Option {
	return func(cfg *Config) {
		cfg.exportCRS = crs
	}
}

func WithOutputDir(dir string) Option {
	return func(cfg *Config) {
		cfg.outputDir = dir
	}
}

func WithExportName(name string) Option {
	return func(cfg *Config) {
		cfg.exportName = name
	}
}

func WithExportFormat(format ExportFormat) Option {
	return func(cfg *Config) {
		cfg.exportFormat = format
	}
}

// WithContract turns on partial contraction of pedestrian network
func WithContract(contract bool) Option {
	return func(cfg *Config) {
		if contract {
			cfg.contract = CONTRACT_PARTIAL
		} else {
			cfg.contract = CONTRACT_NONE
		}
	}
}

func WithContractOption(contract ContractOption) Option {
	return func(cfg *Config) {
		cfg.contract = contract
	}
}

func WithExportDisplay(exportDisplay bool) Option {
	return func(cfg *Config) {
		cfg.exportDisplay = exportDisplay
	}
}

func WithDisplayScale(scale float64) Option {
	return func(cfg *Config) {
		cfg.displayScale = scale
	}
}

// WithCutLength sets distance (meters) between junction and auxiliary nodes of incident links
func WithCutLength(cutLength float64) Option {
	return func(cfg *Config) {
		cfg.cutLength = cutLength
	}
}

// WithSnapTolerance sets distance (meters) under which two points are considered the same place
func WithSnapTolerance(tolerance float64) Option {
	return func(cfg *Config) {
		cfg.snapTolerance = tolerance
	}
}

func WithRetainImpassable(retain bool) Option {
	return func(cfg *Config) {
		cfg.retainImpassable = retain
	}
}

// WithSymmetricMerge enables merge of links whose target node is virtual
func WithSymmetricMerge(symmetric bool) Option {
	return func(cfg *Config) {
		cfg.symmetricMerge = symmetric
	}
}

func WithPedestrianRoadClasses(classes []int) Option {
	return func(cfg *Config) {
		cfg.pedestrianRoadClasses = classes
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(cfg *Config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}
