package drm2hosha

import (
	"math"

	"github.com/paulmach/orb"
)

// movementBetweenLines returns movement information for given lines pair
//
// Note: panics if number of points in any line is less than 2
func movementBetweenLines(l1 orb.LineString, l2 orb.LineString) (MovementCompositeType, MovementType) {
	startL1, endL1 := l1[0], l1[len(l1)-1]
	endL2 := l2[len(l2)-1]

	var direction string

	angle1 := math.Atan2(endL1.Y()-startL1.Y(), endL1.X()-startL1.X())
	if -0.75*math.Pi <= angle1 && angle1 < -0.25*math.Pi {
		direction = "SB"
	} else if -0.25*math.Pi <= angle1 && angle1 < 0.25*math.Pi {
		direction = "EB"
	} else if 0.25*math.Pi <= angle1 && angle1 < 0.75*math.Pi {
		direction = "NB"
	} else {
		direction = "WB"
	}

	angle2 := math.Atan2(endL2.Y()-endL1.Y(), endL2.X()-endL1.X())

	angleDiff := normalizeAngle(angle2 - angle1)

	var movement string
	var movementType MovementType
	if -0.25*math.Pi <= angleDiff && angleDiff <= 0.25*math.Pi {
		movement = "T"
		movementType = MOVEMENT_THRU
	} else if angleDiff < -0.25*math.Pi {
		movement = "R"
		movementType = MOVEMENT_RIGHT
	} else if angleDiff <= 0.75*math.Pi {
		movement = "L"
		movementType = MOVEMENT_LEFT
	} else {
		movement = "U"
		movementType = MOVEMENT_U_TURN
	}

	return movementTxt[direction+movement], movementType
}

// normalizeAngle brings angle into [-Pi; Pi] range
func normalizeAngle(angle float64) float64 {
	if angle < -1*math.Pi {
		angle += 2 * math.Pi
	}
	if angle > math.Pi {
		angle -= 2 * math.Pi
	}
	return angle
}

type MovementType uint16

const (
	MOVEMENT_THRU = MovementType(iota + 1)
	MOVEMENT_RIGHT
	MOVEMENT_LEFT
	MOVEMENT_U_TURN

	MOVEMENT_UNDEFINED = MovementType(0)
)

func (iotaIdx MovementType) String() string {
	return [...]string{"", "thru", "right", "left", "uturn"}[iotaIdx]
}

type MovementCompositeType uint16

const (
	MOVEMENT_SBT = MovementCompositeType(iota + 1)
	MOVEMENT_SBR
	MOVEMENT_SBL
	MOVEMENT_SBU
	MOVEMENT_EBT
	MOVEMENT_EBR
	MOVEMENT_EBL
	MOVEMENT_EBU
	MOVEMENT_NBT
	MOVEMENT_NBR
	MOVEMENT_NBL
	MOVEMENT_NBU
	MOVEMENT_WBT
	MOVEMENT_WBR
	MOVEMENT_WBL
	MOVEMENT_WBU
	MOVEMENT_NONE = MovementCompositeType(0)
)

var (
	movementTxt = map[string]MovementCompositeType{
		"SBT": MOVEMENT_SBT,
		"SBR": MOVEMENT_SBR,
		"SBL": MOVEMENT_SBL,
		"SBU": MOVEMENT_SBU,
		"EBT": MOVEMENT_EBT,
		"EBR": MOVEMENT_EBR,
		"EBL": MOVEMENT_EBL,
		"EBU": MOVEMENT_EBU,
		"NBT": MOVEMENT_NBT,
		"NBR": MOVEMENT_NBR,
		"NBL": MOVEMENT_NBL,
		"NBU": MOVEMENT_NBU,
		"WBT": MOVEMENT_WBT,
		"WBR": MOVEMENT_WBR,
		"WBL": MOVEMENT_WBL,
		"WBU": MOVEMENT_WBU,
	}
)

func (iotaIdx MovementCompositeType) String() string {
	return [...]string{"", "SBT", "SBR", "SBL", "SBU", "EBT", "EBR", "EBL", "EBU", "NBT", "NBR", "NBL", "NBU", "WBT", "WBR", "WBL", "WBU"}[iotaIdx]
}
