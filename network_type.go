package drm2hosha

// NetworkType is a travel mode of a link
type NetworkType uint16

const (
	NETWORK_AUTO = NetworkType(iota + 1)
	NETWORK_WALK
	NETWORK_UNDEFINED = NetworkType(0)
)

func (iotaIdx NetworkType) String() string {
	return [...]string{"undefined", "auto", "walk"}[iotaIdx]
}
