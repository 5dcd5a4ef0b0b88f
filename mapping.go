package drm2hosha

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// LinkFieldMapping maps logical link fields to property names of DRM link table
type LinkFieldMapping struct {
	LinkID       string `mapstructure:"link_id" validate:"required"`
	Mesh         string `mapstructure:"mesh" validate:"required"`
	FromNodeID   string `mapstructure:"from_node_id" validate:"required"`
	ToNodeID     string `mapstructure:"to_node_id" validate:"required"`
	Direction    string `mapstructure:"direction" validate:"required"`
	Length       string `mapstructure:"length" validate:"required"`
	FacilityType string `mapstructure:"facility_type" validate:"required"`
	Lanes        string `mapstructure:"lanes" validate:"required"`
	Jurisdiction string `mapstructure:"jurisdiction" validate:"required"`
	RowWidth     string `mapstructure:"row_width" validate:"required"`
}

// NodeFieldMapping maps logical node fields to property names of DRM node table
type NodeFieldMapping struct {
	NodeID string `mapstructure:"node_id" validate:"required"`
	// Optional: node identifiers are already global when empty
	Mesh       string `mapstructure:"mesh"`
	NodeType   string `mapstructure:"node_type" validate:"required"`
	NextMesh   string `mapstructure:"nextmesh" validate:"required"`
	NextNodeID string `mapstructure:"nextnode_id" validate:"required"`
}

// FieldMapping is a code-mapping configuration consumed by the loader
type FieldMapping struct {
	Links LinkFieldMapping `mapstructure:"drm_links" validate:"required"`
	Nodes NodeFieldMapping `mapstructure:"drm_nodes" validate:"required"`
}

// DefaultFieldMapping returns mapping where every property is named after its logical field
func DefaultFieldMapping() FieldMapping {
	return FieldMapping{
		Links: LinkFieldMapping{
			LinkID:       "link_id",
			Mesh:         "mesh",
			FromNodeID:   "from_node_id",
			ToNodeID:     "to_node_id",
			Direction:    "direction",
			Length:       "length",
			FacilityType: "facility_type",
			Lanes:        "lanes",
			Jurisdiction: "jurisdiction",
			RowWidth:     "row_width",
		},
		Nodes: NodeFieldMapping{
			NodeID:     "node_id",
			NodeType:   "node_type",
			NextMesh:   "nextmesh",
			NextNodeID: "nextnode_id",
		},
	}
}

var mappingValidator = validator.New()

// Validate checks that every required field has a property name
func (mapping FieldMapping) Validate() error {
	err := mappingValidator.Struct(mapping)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	missing := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		missing = append(missing, fieldErr.Namespace())
	}
	return errors.Errorf("field mapping is incomplete: %s", strings.Join(missing, ", "))
}

// LoadFieldMapping reads mapping from YAML, TOML or JSON file (format is detected by extension).
// Fields which are not present in the file keep default names.
func LoadFieldMapping(fname string) (FieldMapping, error) {
	v := viper.New()
	v.SetConfigFile(fname)
	defaults := DefaultFieldMapping()
	setMappingDefaults(v, defaults)
	err := v.ReadInConfig()
	if err != nil {
		return FieldMapping{}, errors.Wrap(err, "Can't read field mapping")
	}
	mapping := FieldMapping{}
	err = v.Unmarshal(&mapping)
	if err != nil {
		return FieldMapping{}, errors.Wrap(err, "Can't decode field mapping")
	}
	err = mapping.Validate()
	if err != nil {
		return FieldMapping{}, err
	}
	return mapping, nil
}

func setMappingDefaults(v *viper.Viper, mapping FieldMapping) {
	v.SetDefault("drm_links.link_id", mapping.Links.LinkID)
	v.SetDefault("drm_links.mesh", mapping.Links.Mesh)
	v.SetDefault("drm_links.from_node_id", mapping.Links.FromNodeID)
	v.SetDefault("drm_links.to_node_id", mapping.Links.ToNodeID)
	v.SetDefault("drm_links.direction", mapping.Links.Direction)
	v.SetDefault("drm_links.length", mapping.Links.Length)
	v.SetDefault("drm_links.facility_type", mapping.Links.FacilityType)
	v.SetDefault("drm_links.lanes", mapping.Links.Lanes)
	v.SetDefault("drm_links.jurisdiction", mapping.Links.Jurisdiction)
	v.SetDefault("drm_links.row_width", mapping.Links.RowWidth)
	v.SetDefault("drm_nodes.node_id", mapping.Nodes.NodeID)
	v.SetDefault("drm_nodes.mesh", mapping.Nodes.Mesh)
	v.SetDefault("drm_nodes.node_type", mapping.Nodes.NodeType)
	v.SetDefault("drm_nodes.nextmesh", mapping.Nodes.NextMesh)
	v.SetDefault("drm_nodes.nextnode_id", mapping.Nodes.NextNodeID)
}
