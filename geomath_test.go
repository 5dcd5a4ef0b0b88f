package drm2hosha

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

func TestSubstring(t *testing.T) {
	line, err := wkt.UnmarshalLineString("LINESTRING(0 0,10 0,10 10)")
	if err != nil {
		t.Error(err)
		return
	}
	correctSubstrings := []struct {
		start, end float64
		wkt        string
	}{
		{5, 15, "LINESTRING(5 0,10 0,10 5)"},
		{0, 20, "LINESTRING(0 0,10 0,10 10)"},
		{2, 8, "LINESTRING(2 0,8 0)"},
		{-5, 100, "LINESTRING(0 0,10 0,10 10)"},
	}
	for _, correct := range correctSubstrings {
		sub := substring(line, correct.start, correct.end)
		if wkt.MarshalString(sub) != correct.wkt {
			t.Errorf("Substring [%f; %f] should be '%s', but got '%s'", correct.start, correct.end, correct.wkt, wkt.MarshalString(sub))
		}
	}
}

func TestJoinLines(t *testing.T) {
	first := orb.LineString{{0, 0}, {1, 0}}
	second := orb.LineString{{2, 0}, {1, 0}}
	correctLine := "LINESTRING(0 0,1 0,2 0)"
	joined := joinLines(first, second)
	if wkt.MarshalString(joined) != correctLine {
		t.Errorf("Joined line should be '%s', but got '%s'", correctLine, wkt.MarshalString(joined))
	}
	// First line is attached to the end of the second one when they meet there
	joined = joinLines(orb.LineString{{1, 0}, {2, 0}}, orb.LineString{{0, 0}, {1, 0}})
	if wkt.MarshalString(joined) != correctLine {
		t.Errorf("Joined line should be '%s', but got '%s'", correctLine, wkt.MarshalString(joined))
	}
}

func TestConcatLines(t *testing.T) {
	correctLine := "LINESTRING(0 0,1 0,1 1)"
	line := concatLines(orb.LineString{{0, 0}, {1, 0}}, orb.LineString{{1, 0}, {1, 1}})
	if wkt.MarshalString(line) != correctLine {
		t.Errorf("Concatenated line should be '%s', but got '%s'", correctLine, wkt.MarshalString(line))
	}
}

func TestSnapLine(t *testing.T) {
	line := orb.LineString{{0.1, 0}, {0.1, 0}, {5, 5}, {10.2, 0}}
	correctLine := "LINESTRING(0 0,5 5,10 0)"
	snapped := snapLine(line, orb.Point{0, 0}, orb.Point{10, 0})
	if wkt.MarshalString(snapped) != correctLine {
		t.Errorf("Snapped line should be '%s', but got '%s'", correctLine, wkt.MarshalString(snapped))
	}
	if !line[0].Equal(orb.Point{0.1, 0}) {
		t.Errorf("Source line must not be modified")
	}
}

func TestAngleBetweenLines(t *testing.T) {
	eastbound := orb.LineString{{0, 0}, {1, 0}}
	correctAngles := []struct {
		line  orb.LineString
		angle float64
	}{
		{orb.LineString{{1, 0}, {1, 1}}, math.Pi / 2},
		{orb.LineString{{1, 0}, {1, -1}}, -math.Pi / 2},
		{orb.LineString{{1, 0}, {2, 0}}, 0},
	}
	for _, correct := range correctAngles {
		angle := angleBetweenLines(eastbound, correct.line)
		if math.Abs(angle-correct.angle) > 1e-9 {
			t.Errorf("Angle should be %f, but got %f", correct.angle, angle)
		}
	}
}

func TestMovementBetweenLines(t *testing.T) {
	eastbound := orb.LineString{{0, 0}, {1, 0}}
	correctMovements := []struct {
		line      orb.LineString
		composite MovementCompositeType
		movement  MovementType
	}{
		{orb.LineString{{1, 0}, {1, 1}}, MOVEMENT_EBL, MOVEMENT_LEFT},
		{orb.LineString{{1, 0}, {1, -1}}, MOVEMENT_EBR, MOVEMENT_RIGHT},
		{orb.LineString{{1, 0}, {2, 0}}, MOVEMENT_EBT, MOVEMENT_THRU},
		{orb.LineString{{1, 0}, {0, 0}}, MOVEMENT_EBU, MOVEMENT_U_TURN},
	}
	for _, correct := range correctMovements {
		composite, movement := movementBetweenLines(eastbound, correct.line)
		if composite != correct.composite {
			t.Errorf("Composite movement should be '%s', but got '%s'", correct.composite, composite)
		}
		if movement != correct.movement {
			t.Errorf("Movement should be '%s', but got '%s'", correct.movement, movement)
		}
	}
}
