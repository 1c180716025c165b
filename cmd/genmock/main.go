// Command genmock writes a synthetic NOAA LCD hourly export for exercising
// the cleaner. The generated file carries the quirks seen in real station
// exports: "*" sentinels, trace precipitation, dual-decimal tokens,
// out-of-range visibility, unparseable suffixed readings, sub-hourly
// special observations and hours with no report. It runs the domain
// normalizer over the result and prints per-column missing counts.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock/jfk_weather_mock.csv -hours 168 -seed 7
//	go run ./cmd/genmock -out data/mock/jfk_weather_mock.csv.gz -gzip
package main

import (
	"bufio"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/weather-clean-etl/internal/domain"
	"github.com/klauspost/compress/gzip"
)

var header = []string{
	"STATION", "STATION_NAME", domain.ColDate, "REPORTTPYE",
	domain.ColVisibility,
	domain.ColDryBulbTempF,
	domain.ColWetBulbTempF,
	domain.ColDewPointTempF,
	domain.ColRelativeHumidity,
	domain.ColWindSpeed,
	domain.ColWindDirection,
	domain.ColStationPressure,
	domain.ColPressureTendency,
	domain.ColSeaLevelPressure,
	domain.ColPrecip,
	domain.ColAltimeterSetting,
}

const (
	station     = "WBAN:94789"
	stationName = "JFK INTERNATIONAL AIRPORT, NY US"
	dateLayout  = "2006-01-02 15:04"
)

// Probabilities of each injected quirk.
const (
	pSentinel    = 0.02
	pSkipHour    = 0.04
	pSpecial     = 0.25
	pVisOutRange = 0.03
	pTrace       = 0.08
	pDualDecimal = 0.02
	pSuffix      = 0.01
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "data/mock/jfk_weather_mock.csv", "output path for the synthetic LCD CSV")
	hours := flag.Int("hours", 72, "number of hours to generate")
	seed := flag.Uint64("seed", 1, "random seed")
	start := flag.String("start", "2020-01-01", "first day, YYYY-MM-DD")
	gz := flag.Bool("gzip", false, "gzip the output (appends .gz if missing)")
	flag.Parse()

	if *hours < 1 {
		flag.Usage()
		return fmt.Errorf("-hours must be positive, got %d", *hours)
	}
	first, err := time.Parse("2006-01-02", *start)
	if err != nil {
		return fmt.Errorf("parse -start: %w", err)
	}

	path := *out
	if *gz && !strings.HasSuffix(path, ".gz") {
		path += ".gz"
	}

	g := &generator{rng: rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))}
	rows := g.rows(first, *hours)

	if err := writeCSV(path, *gz, rows); err != nil {
		return fmt.Errorf("writing fixture: %w", err)
	}
	log.Printf("wrote %d rows covering %d hours: %s", len(rows), *hours, path)

	return printStats(rows)
}

type generator struct {
	rng *rand.Rand
}

func (g *generator) chance(p float64) bool { return g.rng.Float64() < p }

func (g *generator) rows(first time.Time, hours int) [][]string {
	var rows [][]string
	for h := range hours {
		hour := first.Add(time.Duration(h) * time.Hour)
		if g.chance(pSkipHour) {
			continue
		}
		if g.chance(pSpecial) {
			minute := 5 + g.rng.IntN(40)
			rows = append(rows, g.observation(hour.Add(time.Duration(minute)*time.Minute), "FM-16", false))
		}
		synoptic := hour.Hour()%3 == 0
		rows = append(rows, g.observation(hour.Add(51*time.Minute), "FM-15", synoptic))
	}
	return rows
}

func (g *generator) observation(ts time.Time, reportType string, synoptic bool) []string {
	diurnal := math.Sin(2 * math.Pi * float64(ts.Hour()-9) / 24)
	dry := 38 + 12*diurnal + g.rng.NormFloat64()
	dew := dry - 4 - 6*g.rng.Float64()
	wet := dew + (dry-dew)*0.6
	rh := 100 * math.Exp(17.625*fToC(dew)/(243.04+fToC(dew))) / math.Exp(17.625*fToC(dry)/(243.04+fToC(dry)))
	pressure := 29.9 + 0.3*g.rng.NormFloat64()

	tendency := ""
	if synoptic {
		tendency = strconv.Itoa(g.rng.IntN(9))
	}

	row := []string{
		station, stationName, ts.Format(dateLayout), reportType,
		g.visibility(),
		strconv.Itoa(int(math.Round(dry))),
		strconv.Itoa(int(math.Round(wet))),
		strconv.Itoa(int(math.Round(dew))),
		strconv.Itoa(int(math.Round(math.Min(rh, 100)))),
		strconv.Itoa(g.rng.IntN(25)),
		fmt.Sprintf("%03d", 10*g.rng.IntN(37)),
		fmt.Sprintf("%.2f", pressure),
		tendency,
		fmt.Sprintf("%.2f", pressure+0.12),
		g.precip(),
		fmt.Sprintf("%.2f", pressure+0.1),
	}

	for i := 4; i < len(row); i++ {
		switch {
		case g.chance(pSentinel):
			row[i] = domain.SentinelMissing
		case row[i] != "" && g.chance(pSuffix):
			row[i] += "s"
		}
	}
	return row
}

func (g *generator) visibility() string {
	switch {
	case g.chance(pVisOutRange):
		if g.chance(0.5) {
			return "-1.00"
		}
		return fmt.Sprintf("%.2f", 10+90*g.rng.Float64())
	case g.chance(0.7):
		return "10.00"
	default:
		return fmt.Sprintf("%.2f", 0.25*float64(1+g.rng.IntN(39)))
	}
}

func (g *generator) precip() string {
	switch {
	case g.chance(pTrace):
		return domain.TracePrecip
	case g.chance(pDualDecimal):
		return fmt.Sprintf("0.%02d.%02d", g.rng.IntN(10), g.rng.IntN(100))
	case g.chance(0.8):
		return "0.00"
	default:
		return fmt.Sprintf("%.2f", 0.01*float64(1+g.rng.IntN(30)))
	}
}

func fToC(f float64) float64 { return (f - 32) * 5 / 9 }

func writeCSV(path string, compress bool, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(f)
	var w io.Writer = bw
	var zw *gzip.Writer
	if compress {
		zw, err = gzip.NewWriterLevel(bw, gzip.BestSpeed)
		if err != nil {
			f.Close()
			return err
		}
		w = zw
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		f.Close()
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		f.Close()
		return err
	}
	if zw != nil {
		if err := zw.Close(); err != nil {
			f.Close()
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// printStats runs the generated rows through the domain normalizer so the
// counts match what the cleaner will see.
func printStats(rows [][]string) error {
	raw, err := domain.BuildRawTable(header, rows, domain.ImportColumns)
	if err != nil {
		return fmt.Errorf("ingest generated rows: %w", err)
	}
	tbl, stats := domain.Normalize(raw)
	nulled := domain.NullOutOfRange(tbl)

	fmt.Println("\n=== Injected data quality issues ===")
	fmt.Printf("Rows: %d\n", raw.Len())
	for _, c := range raw.Columns {
		fmt.Printf("  %-24s missing=%d\n", c, stats.Missing[c])
	}
	fmt.Printf("Visibility out of range: %d\n", nulled)
	return nil
}
