package osmparser

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lintang-b-s/navigatorx-hgv/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/geo"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/restriction"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/util"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"go.uber.org/zap"
)

type NodeType uint8

const (
	END_NODE NodeType = iota + 1
	BETWEEN_NODE
	JUNCTION_NODE
)

type node struct {
	id    int64
	coord nodeCoord
}

type nodeCoord struct {
	lat float64
	lon float64
}

/*
OsmParser bikin road segment (junction ke junction) dari way osm, lengkap dengan access flags per encoder
dan restriction kendaraan berat dari tag way nya. road ke-i punya restriction ke-i.
*/
type OsmParser struct {
	wayNodeMap      map[int64]NodeType
	acceptedNodeMap map[int64]nodeCoord
	barrierNodes    map[int64]bool
	nodeIDMap       map[int64]int32

	roads        []datastructure.EdgeCH
	restrictions []restriction.EdgeRestriction

	log *zap.Logger
}

func NewOSMParser(log *zap.Logger) *OsmParser {
	if log == nil {
		log = zap.NewNop()
	}
	return &OsmParser{
		wayNodeMap:      make(map[int64]NodeType),
		acceptedNodeMap: make(map[int64]nodeCoord),
		barrierNodes:    make(map[int64]bool),
		nodeIDMap:       make(map[int64]int32),
		log:             log,
	}
}

var (
	skipHighway = map[string]struct{}{
		"construction":           {},
		"cycleway":               {},
		"busway":                 {},
		"steps":                  {},
		"bridleway":              {},
		"corridor":               {},
		"street_lamp":            {},
		"bus_stop":               {},
		"crossing":               {},
		"cyclist_waiting_aid":    {},
		"elevator":               {},
		"emergency_bay":          {},
		"emergency_access_point": {},
		"give_way":               {},
		"phone":                  {},
		"ladder":                 {},
		"milestone":              {},
		"passing_place":          {},
		"platform":               {},
		"speed_camera":           {},
		"bus_guideway":           {},
		"speed_display":          {},
		"stop":                   {},
		"toll_gantry":            {},
		"traffic_mirror":         {},
		"traffic_signals":        {},
		"trailhead":              {},
	}

	// jalan yang cuma boleh buat kendaraan bermotor
	motorOnlyHighway = map[string]struct{}{
		"motorway":      {},
		"motorway_link": {},
		"trunk":         {},
		"trunk_link":    {},
	}

	// jalan yang tidak boleh buat kendaraan bermotor
	nonMotorHighway = map[string]struct{}{
		"footway":    {},
		"path":       {},
		"pedestrian": {},
		"track":      {},
	}
)

type ParseResult struct {
	Nodes        []datastructure.CHNode
	Roads        []datastructure.EdgeCH
	Restrictions *restriction.Store
}

// Parse baca file osm pbf dua kali: pass pertama nandain junction node, pass kedua bikin road segment
func (p *OsmParser) Parse(ctx context.Context, mapFile string) (ParseResult, error) {
	f, err := os.Open(mapFile)
	if err != nil {
		return ParseResult{}, err
	}
	defer f.Close()

	scanner := osmpbf.New(ctx, f, 0)
	countWays := 0
	for scanner.Scan() {
		way, ok := scanner.Object().(*osm.Way)
		if !ok {
			continue
		}
		if p.RegisterWay(way) {
			countWays++
			if countWays%50000 == 0 {
				p.log.Sugar().Infof("reading openstreetmap ways: %d...", countWays)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return ParseResult{}, fmt.Errorf("scan %s: %w", mapFile, err)
	}
	scanner.Close()

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return ParseResult{}, err
	}

	// node di file pbf selalu sebelum way
	scanner = osmpbf.New(ctx, f, 0)
	defer scanner.Close()
	countWays = 0
	for scanner.Scan() {
		switch o := scanner.Object().(type) {
		case *osm.Node:
			p.ProcessNode(o)
		case *osm.Way:
			if p.ProcessWay(o) {
				countWays++
				if countWays%50000 == 0 {
					p.log.Sugar().Infof("processing openstreetmap ways: %d...", countWays)
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return ParseResult{}, fmt.Errorf("scan %s: %w", mapFile, err)
	}

	return p.Result()
}

// RegisterWay pass pertama. node yang muncul di lebih dari satu way (atau dua kali di way yang sama) jadi junction.
func (p *OsmParser) RegisterWay(way *osm.Way) bool {
	if len(way.Nodes) < 2 || !acceptOsmWay(way) {
		return false
	}
	for i, n := range way.Nodes {
		id := int64(n.ID)
		if _, ok := p.wayNodeMap[id]; ok {
			p.wayNodeMap[id] = JUNCTION_NODE
			continue
		}
		if i == 0 || i == len(way.Nodes)-1 {
			p.wayNodeMap[id] = END_NODE
		} else {
			p.wayNodeMap[id] = BETWEEN_NODE
		}
	}
	return true
}

func (p *OsmParser) ProcessNode(n *osm.Node) {
	id := int64(n.ID)
	if _, ok := p.wayNodeMap[id]; !ok {
		return
	}
	p.acceptedNodeMap[id] = nodeCoord{lat: n.Lat, lon: n.Lon}
	if n.Tags.Find("barrier") != "" || n.Tags.Find("ford") != "" {
		p.barrierNodes[id] = true
	}
}

// ProcessWay pass kedua. way dipotong di setiap junction & end node, satu road per potongan.
func (p *OsmParser) ProcessWay(way *osm.Way) bool {
	if len(way.Nodes) < 2 || !acceptOsmWay(way) {
		return false
	}

	access := wayAccess(way)
	if access == 0 {
		return false
	}
	speed := waySpeed(way)
	restr := restriction.FromWay(way)

	segment := make([]node, 0, len(way.Nodes))
	for i, wn := range way.Nodes {
		id := int64(wn.ID)
		coord, ok := p.acceptedNodeMap[id]
		if !ok {
			// node di luar extract
			segment = segment[:0]
			continue
		}
		segment = append(segment, node{id: id, coord: coord})

		last := i == len(way.Nodes)-1
		if len(segment) > 1 && (last || p.isSplitNode(id)) {
			p.addSegment(segment, access, speed, restr)
			segment = []node{segment[len(segment)-1]}
		}
	}
	return true
}

func (p *OsmParser) isSplitNode(nodeID int64) bool {
	return p.wayNodeMap[nodeID] == JUNCTION_NODE || p.barrierNodes[nodeID]
}

func (p *OsmParser) addSegment(segment []node, access int32, speed float64, restr restriction.EdgeRestriction) {
	from, to := segment[0], segment[len(segment)-1]
	if from.id == to.id {
		if len(segment) < 3 {
			return
		}
		// loop, dipecah dua supaya from != to
		mid := len(segment) / 2
		p.addSegment(segment[:mid+1], access, speed, restr)
		p.addSegment(segment[mid:], access, speed, restr)
		return
	}

	distance := 0.0 // km
	for i := 1; i < len(segment); i++ {
		distance += geo.CalculateHaversineDistance(segment[i-1].coord.lat, segment[i-1].coord.lon,
			segment[i].coord.lat, segment[i].coord.lon)
	}
	distanceInMeter := distance * 1000
	etaWeight := distanceInMeter / (speed * 1000 / 60) // in minutes

	fromID := p.nodeIndex(from.id)
	toID := p.nodeIndex(to.id)
	roadID := int32(len(p.roads))
	p.roads = append(p.roads, datastructure.NewEdgeCH(roadID, roadID, etaWeight, distanceInMeter, toID, fromID, access))
	p.restrictions = append(p.restrictions, restr)
}

func (p *OsmParser) nodeIndex(osmID int64) int32 {
	idx, ok := p.nodeIDMap[osmID]
	if !ok {
		idx = int32(len(p.nodeIDMap))
		p.nodeIDMap[osmID] = idx
	}
	return idx
}

// Result node, road & restriction store hasil parsing
func (p *OsmParser) Result() (ParseResult, error) {
	nodes := make([]datastructure.CHNode, len(p.nodeIDMap))
	for osmID, idx := range p.nodeIDMap {
		coord := p.acceptedNodeMap[osmID]
		nodes[idx] = datastructure.NewCHNode(coord.lat, coord.lon, idx)
	}

	store := restriction.NewStore(len(p.restrictions))
	restricted := 0
	for i, r := range p.restrictions {
		if r.IsZero() {
			continue
		}
		restricted++
		if err := store.SetEdgeRestriction(int32(i), r); err != nil {
			return ParseResult{}, err
		}
	}

	p.log.Info("openstreetmap parsed",
		zap.Int("nodes", len(nodes)),
		zap.Int("roads", len(p.roads)),
		zap.Int("restricted_roads", restricted))

	return ParseResult{Nodes: nodes, Roads: p.roads, Restrictions: store}, nil
}

func isRestricted(value string) bool {
	switch value {
	case "no", "restricted", "military", "emergency", "private", "permit":
		return true
	}
	return false
}

// wayDirection oneway & arah nya. forward false berarti cuma bisa dilewati dari node terakhir ke node pertama.
func wayDirection(way *osm.Way) (oneWay bool, forward bool) {
	vehicleForward := isRestricted(way.Tags.Find("vehicle:forward")) || isRestricted(way.Tags.Find("motor_vehicle:forward"))
	vehicleBackward := isRestricted(way.Tags.Find("vehicle:backward")) || isRestricted(way.Tags.Find("motor_vehicle:backward"))

	switch oneway := way.Tags.Find("oneway"); {
	case oneway == "-1" || vehicleForward:
		return true, false
	case oneway == "yes" || oneway == "true" || oneway == "1" || vehicleBackward:
		return true, true
	}

	junction := way.Tags.Find("junction")
	if junction == "roundabout" || junction == "circular" {
		return true, true
	}
	highway := way.Tags.Find("highway")
	if highway == "motorway" || highway == "motorway_link" {
		return true, true
	}
	return false, true
}

// wayAccess access flags semua encoder. foot & wheelchair tidak kena oneway.
func wayAccess(way *osm.Way) int32 {
	if isRestricted(way.Tags.Find("access")) {
		return 0
	}
	highway := way.Tags.Find("highway")
	oneWay, forward := wayDirection(way)

	access := int32(0)
	for _, enc := range datastructure.FlagEncoders() {
		if !encoderAllowed(enc, highway, way.Tags) {
			continue
		}
		fwd, bwd := true, true
		if oneWay && enc != datastructure.FootEncoder && enc != datastructure.WheelchairEncoder {
			fwd, bwd = forward, !forward
		}
		access = datastructure.SetAccess(access, enc, fwd, bwd)
	}
	return access
}

func encoderAllowed(enc datastructure.FlagEncoder, highway string, tags osm.Tags) bool {
	_, motorOnly := motorOnlyHighway[highway]
	_, nonMotor := nonMotorHighway[highway]

	switch enc {
	case datastructure.CarEncoder, datastructure.HgvEncoder:
		return !nonMotor && !isRestricted(tags.Find("motor_vehicle"))
	case datastructure.BikeEncoder:
		return !motorOnly && !isRestricted(tags.Find("bicycle"))
	case datastructure.FootEncoder:
		return !motorOnly && !isRestricted(tags.Find("foot"))
	case datastructure.WheelchairEncoder:
		return !motorOnly && !isRestricted(tags.Find("foot")) && tags.Find("wheelchair") != "no"
	}
	return false
}

// waySpeed km/h dari maxspeed, kalau tidak ada pakai default per highway type
func waySpeed(way *osm.Way) float64 {
	if v := way.Tags.Find("maxspeed"); v != "" {
		factor := 1.0
		switch {
		case strings.Contains(v, "mph"):
			factor = 1.60934
		case strings.Contains(v, "knots"):
			factor = 1.852
		}
		if speed, ok := util.ParseLeadingFloat(v); ok && speed > 0 {
			return speed * factor
		}
	}
	return RoadTypeMaxSpeed(way.Tags.Find("highway"))
}

func RoadTypeMaxSpeed(roadType string) float64 {
	switch roadType {
	case "motorway":
		return 100
	case "trunk":
		return 70
	case "primary":
		return 65
	case "secondary":
		return 60
	case "tertiary":
		return 50
	case "unclassified":
		return 30
	case "residential":
		return 30
	case "service":
		return 20
	case "motorway_link":
		return 70
	case "trunk_link":
		return 65
	case "primary_link":
		return 60
	case "secondary_link":
		return 50
	case "tertiary_link":
		return 40
	case "living_street":
		return 10
	case "road":
		return 20
	case "track":
		return 15
	case "footway", "path", "pedestrian":
		return 5
	default:
		return 40
	}
}

func acceptOsmWay(way *osm.Way) bool {
	highway := way.Tags.Find("highway")
	if highway != "" {
		_, skip := skipHighway[highway]
		return !skip
	}
	return way.Tags.Find("route") == "road" || way.Tags.Find("junction") != ""
}
