package crs

import (
	"fmt"
	"github.com/sfomuseum/go-media-points"
	"regexp"
	"strconv"
	"strings"
)

// The EPSG code for geographic WGS84 (longitude, latitude).
const WGS84 int = 4326

// The definition string for geographic WGS84.
const WGS84Definition string = "EPSG:4326"

var re_odm_utm = regexp.MustCompile(`^WGS\s*84\s+UTM\s+(\d{1,2})\s*([NS])$`)

// Resolve maps a CRS definition to an EPSG code. Supported definitions are "EPSG:<code>",
// the "WGS84" alias, "WGS84 UTM <zone><N|S>" and a subset of PROJ strings (longlat, utm
// on the WGS84 datum, +init=epsg:<code>).
func Resolve(definition string) (int, error) {

	def := strings.TrimSpace(definition)
	upper := strings.ToUpper(def)

	switch {
	case upper == "":
		return 0, fmt.Errorf("Empty CRS definition, %w", points.ErrUnknownCRS)
	case upper == "WGS84":
		return WGS84, nil
	case strings.HasPrefix(upper, "EPSG:"):
		return parseCode(upper[len("EPSG:"):])
	case strings.HasPrefix(upper, "+PROJ=") || strings.HasPrefix(upper, "+INIT="):
		return resolveProj(def)
	}

	m := re_odm_utm.FindStringSubmatch(upper)

	if m != nil {
		return utmCode(m[1], m[2] == "S")
	}

	return 0, fmt.Errorf("Unsupported CRS definition '%s', %w", def, points.ErrUnknownCRS)
}

func parseCode(str_code string) (int, error) {

	code, err := strconv.Atoi(strings.TrimSpace(str_code))

	if err != nil || code <= 0 {
		return 0, fmt.Errorf("Invalid EPSG code '%s', %w", str_code, points.ErrUnknownCRS)
	}

	return code, nil
}

func utmCode(str_zone string, south bool) (int, error) {

	zone, err := strconv.Atoi(str_zone)

	if err != nil || zone < 1 || zone > 60 {
		return 0, fmt.Errorf("Invalid UTM zone '%s', %w", str_zone, points.ErrUnknownCRS)
	}

	if south {
		return 32700 + zone, nil
	}

	return 32600 + zone, nil
}

// resolveProj handles the PROJ strings that map onto a single EPSG code. Anything
// requiring a custom datum or projection parameters is reported as unknown.
func resolveProj(def string) (int, error) {

	params := make(map[string]string)

	for _, tok := range strings.Fields(def) {

		tok = strings.TrimPrefix(tok, "+")
		k, v, _ := strings.Cut(tok, "=")

		params[strings.ToLower(k)] = v
	}

	init, ok := params["init"]

	if ok {

		auth, code, found := strings.Cut(strings.ToUpper(init), ":")

		if !found || auth != "EPSG" {
			return 0, fmt.Errorf("Unsupported +init value '%s', %w", init, points.ErrUnknownCRS)
		}

		return parseCode(code)
	}

	for _, k := range []string{"datum", "ellps"} {

		v, ok := params[k]

		if ok && strings.ToUpper(v) != "WGS84" {
			return 0, fmt.Errorf("Unsupported %s '%s', %w", k, v, points.ErrUnknownCRS)
		}
	}

	switch strings.ToLower(params["proj"]) {
	case "longlat", "latlong", "lonlat", "latlon":
		return WGS84, nil
	case "utm":

		zone, ok := params["zone"]

		if !ok {
			return 0, fmt.Errorf("Missing UTM zone in '%s', %w", def, points.ErrUnknownCRS)
		}

		_, south := params["south"]
		return utmCode(zone, south)

	default:
		return 0, fmt.Errorf("Unsupported projection in '%s', %w", def, points.ErrUnknownCRS)
	}
}
