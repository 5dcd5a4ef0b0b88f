package drm2hosha

// LinkType distinguishes physical road links from synthetic turn links
type LinkType uint16

const (
	LINK_ROAD = LinkType(iota + 1)
	LINK_TURN

	LINK_UNDEFINED = LinkType(0)
)

func (iotaIdx LinkType) String() string {
	return [...]string{"undefined", "road", "turn"}[iotaIdx]
}
