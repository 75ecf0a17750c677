package forecast

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"
)

// ERA5 variable names.
const (
	era5Swell = "swh"
	era5U10   = "u10"
	era5V10   = "v10"
)

const msToKmh = 3.6

var errNoHours = errors.New("era5: file has no hours for the requested date")

// ERA5 reads significant wave height and 10 m wind from a reanalysis NetCDF
// file at the grid point nearest the location. ERA5 has no tides, so those
// come from another Service.
type ERA5 struct {
	path      string
	latitude  float64
	longitude float64
	tides     Service
}

var _ Service = (*ERA5)(nil)

func NewERA5(path string, latitude, longitude float64, tides Service) *ERA5 {
	return &ERA5{path: path, latitude: latitude, longitude: longitude, tides: tides}
}

// Fetch builds a payload from the 24 hours starting at midnight of date in
// date's location, the same clock the tide source reports on. The file's time
// axis is UTC; entries are stamped in local time.
func (e *ERA5) Fetch(ctx context.Context, date time.Time) (*Payload, error) {
	nc, err := netcdf.Open(e.path)
	if err != nil {
		return nil, fmt.Errorf("era5: open %s: %w", e.path, err)
	}
	defer nc.Close()

	la, err := variableValues(nc, "latitude")
	if err != nil {
		return nil, err
	}
	lo, err := variableValues(nc, "longitude")
	if err != nil {
		return nil, err
	}
	times, err := timeAxis(nc)
	if err != nil {
		return nil, err
	}
	i, j := nearest(la, e.latitude), nearest(lo, wrapLongitude(e.longitude, lo))

	loc := date.Location()
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	first := -1
	for k, ts := range times {
		if !ts.Before(start) {
			first = k
			break
		}
	}
	if first < 0 || first+24 > len(times) || !times[first].Equal(start) {
		return nil, errNoHours
	}

	swh, err := readPoint(nc, era5Swell, first, i, j)
	if err != nil {
		return nil, err
	}
	u10, err := readPoint(nc, era5U10, first, i, j)
	if err != nil {
		return nil, err
	}
	v10, err := readPoint(nc, era5V10, first, i, j)
	if err != nil {
		return nil, err
	}

	swell := make([]SwellEntry, 24)
	wind := make([]WindEntry, 24)
	for h := 0; h < 24; h++ {
		stamp := times[first+h].In(loc).Format(TimeLayout)
		swell[h] = SwellEntry{DateTime: stamp, Height: swh[h]}
		speed, dir := windFromComponents(u10[h], v10[h])
		wind[h] = WindEntry{DateTime: stamp, Speed: speed * msToKmh, Direction: dir}
	}

	p := &Payload{
		Location: Location{Latitude: la[i], Longitude: lo[j]},
		Forecasts: Forecasts{
			Swell: &Forecast[SwellEntry]{Days: []ForecastDay[SwellEntry]{{DateTime: start.Format(TimeLayout), Entries: swell}}},
			Wind:  &Forecast[WindEntry]{Days: []ForecastDay[WindEntry]{{DateTime: start.Format(TimeLayout), Entries: wind}}},
		},
	}

	if e.tides != nil {
		tp, err := e.tides.Fetch(ctx, date)
		if err != nil {
			return nil, fmt.Errorf("era5: tides: %w", err)
		}
		p.Forecasts.Tides = tp.Forecasts.Tides
		p.Location.ID, p.Location.Name = tp.Location.ID, tp.Location.Name
	}
	return p, nil
}

// windFromComponents returns the speed and the meteorological direction the
// wind blows from, in degrees clockwise from north.
func windFromComponents(u, v float64) (speed, direction float64) {
	speed = math.Hypot(u, v)
	direction = math.Mod(math.Atan2(-u, -v)*180/math.Pi+360, 360)
	return speed, direction
}

func nearest(axis []float64, x float64) int {
	best := 0
	for k, a := range axis {
		if math.Abs(a-x) < math.Abs(axis[best]-x) {
			best = k
		}
	}
	return best
}

// wrapLongitude moves lon onto a 0..360 axis when the file uses one.
func wrapLongitude(lon float64, axis []float64) float64 {
	if lon < 0 && len(axis) > 0 && axis[len(axis)-1] > 180 {
		return lon + 360
	}
	return lon
}

func variableValues(nc api.Group, name string) ([]float64, error) {
	vg, err := nc.GetVarGetter(name)
	if err != nil {
		return nil, fmt.Errorf("era5: %s: %w", name, err)
	}
	v, err := vg.Values()
	if err != nil {
		return nil, fmt.Errorf("era5: %s: %w", name, err)
	}
	out, err := toFloats(v)
	if err != nil {
		return nil, fmt.Errorf("era5: %s: %w", name, err)
	}
	return out, nil
}

// timeAxis decodes the CF time coordinate, "time" in older downloads and
// "valid_time" in newer ones.
func timeAxis(nc api.Group) ([]time.Time, error) {
	name := "time"
	vg, err := nc.GetVarGetter(name)
	if err != nil {
		name = "valid_time"
		if vg, err = nc.GetVarGetter(name); err != nil {
			return nil, fmt.Errorf("era5: no time coordinate: %w", err)
		}
	}
	units, _ := vg.Attributes().Get("units")
	s, _ := units.(string)
	step, epoch, err := parseTimeUnits(s)
	if err != nil {
		return nil, fmt.Errorf("era5: %s: %w", name, err)
	}

	raw, err := variableValues(nc, name)
	if err != nil {
		return nil, err
	}
	out := make([]time.Time, len(raw))
	for k, r := range raw {
		out[k] = epoch.Add(time.Duration(r * float64(step)))
	}
	return out, nil
}

func parseTimeUnits(units string) (time.Duration, time.Time, error) {
	unit, since, ok := strings.Cut(units, " since ")
	if !ok {
		return 0, time.Time{}, fmt.Errorf("unsupported time units %q", units)
	}

	var step time.Duration
	switch strings.TrimSpace(unit) {
	case "seconds":
		step = time.Second
	case "minutes":
		step = time.Minute
	case "hours":
		step = time.Hour
	case "days":
		step = 24 * time.Hour
	default:
		return 0, time.Time{}, fmt.Errorf("unsupported time step %q", unit)
	}

	since = strings.TrimSpace(since)
	for _, layout := range []string{"2006-01-02 15:04:05.0", "2006-01-02 15:04:05", "2006-01-02T15:04:05", "2006-01-02"} {
		if epoch, err := time.Parse(layout, since); err == nil {
			return step, epoch, nil
		}
	}
	return 0, time.Time{}, fmt.Errorf("unsupported time origin %q", since)
}

// readPoint reads 24 consecutive hours of a (time, latitude, longitude)
// variable at one grid point, applying the packing attributes.
func readPoint(nc api.Group, name string, first, i, j int) ([]float64, error) {
	vg, err := nc.GetVarGetter(name)
	if err != nil {
		return nil, fmt.Errorf("era5: %s: %w", name, err)
	}
	scale, offset := 1.0, 0.0
	if v, ok := vg.Attributes().Get("scale_factor"); ok {
		scale = attrFloat(v, 1)
	}
	if v, ok := vg.Attributes().Get("add_offset"); ok {
		offset = attrFloat(v, 0)
	}

	raw, err := vg.GetSlice(int64(first), int64(first+24))
	if err != nil {
		return nil, fmt.Errorf("era5: %s: %w", name, err)
	}

	out := make([]float64, 24)
	switch grid := raw.(type) {
	case [][][]int16:
		for h := range out {
			out[h] = float64(grid[h][i][j])*scale + offset
		}
	case [][][]float32:
		for h := range out {
			out[h] = float64(grid[h][i][j])*scale + offset
		}
	case [][][]float64:
		for h := range out {
			out[h] = grid[h][i][j]*scale + offset
		}
	default:
		return nil, fmt.Errorf("era5: %s: unsupported layout %T", name, raw)
	}
	return out, nil
}

func attrFloat(v interface{}, fallback float64) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case float32:
		return float64(x)
	case []float64:
		if len(x) > 0 {
			return x[0]
		}
	case []float32:
		if len(x) > 0 {
			return float64(x[0])
		}
	}
	return fallback
}

func toFloats(v interface{}) ([]float64, error) {
	switch x := v.(type) {
	case []float64:
		return x, nil
	case []float32:
		return convert(x), nil
	case []int64:
		return convert(x), nil
	case []int32:
		return convert(x), nil
	case []int16:
		return convert(x), nil
	}
	return nil, fmt.Errorf("unsupported values %T", v)
}

func convert[T float32 | int64 | int32 | int16](in []T) []float64 {
	out := make([]float64, len(in))
	for k, x := range in {
		out[k] = float64(x)
	}
	return out
}
