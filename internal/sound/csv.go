package sound

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/specialistvlad/triadgrid/internal/pitch"
)

var (
	soundsHeader = []string{"ix", "section", "instrument", "articulation", "short_name"}
	rangesHeader = []string{"short_name", "low", "high"}
)

// ReadFiles loads the catalogue from a sounds file and a ranges file.
func ReadFiles(soundsPath, rangesPath string) ([]*Sound, error) {
	sf, err := os.Open(soundsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sounds file: %w", err)
	}
	defer sf.Close()

	rf, err := os.Open(rangesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open ranges file: %w", err)
	}
	defer rf.Close()

	sounds, err := Read(sf, rf)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalogue %s: %w", soundsPath, err)
	}
	return sounds, nil
}

type span struct{ low, high pitch.Pitch }

// Read decodes the catalogue. Both inputs start with a header row that is
// skipped. Every sound must have a row in the ranges table.
func Read(soundsCSV, rangesCSV io.Reader) ([]*Sound, error) {
	ranges, err := readRanges(rangesCSV)
	if err != nil {
		return nil, err
	}

	rows, err := readRows(soundsCSV, len(soundsHeader))
	if err != nil {
		return nil, fmt.Errorf("sounds: %w", err)
	}

	sounds := make([]*Sound, 0, len(rows))
	for i, row := range rows {
		section, instrument, articulation, short := row[1], row[2], row[3], row[4]
		snd := &Sound{
			LongName:  fmt.Sprintf("%s - %s - %s", section, instrument, articulation),
			ShortName: short,
		}
		if snd.Section, err = ParseSection(section); err != nil {
			return nil, fmt.Errorf("sounds row %d: %w", i+2, err)
		}
		if snd.Instrument, err = ParseInstrument(instrument); err != nil {
			return nil, fmt.Errorf("sounds row %d: %w", i+2, err)
		}
		if snd.Articulation, err = ParseArticulation(articulation); err != nil {
			return nil, fmt.Errorf("sounds row %d: %w", i+2, err)
		}
		r, ok := ranges[short]
		if !ok {
			return nil, fmt.Errorf("sounds row %d: no range for %q", i+2, short)
		}
		snd.Low, snd.High = r.low, r.high
		sounds = append(sounds, snd)
	}
	return sounds, nil
}

func readRanges(r io.Reader) (map[string]span, error) {
	rows, err := readRows(r, len(rangesHeader))
	if err != nil {
		return nil, fmt.Errorf("ranges: %w", err)
	}
	ranges := make(map[string]span, len(rows))
	for i, row := range rows {
		low, err := pitch.Parse(row[1])
		if err != nil {
			return nil, fmt.Errorf("ranges row %d: %w", i+2, err)
		}
		high, err := pitch.Parse(row[2])
		if err != nil {
			return nil, fmt.Errorf("ranges row %d: %w", i+2, err)
		}
		if low > high {
			return nil, fmt.Errorf("ranges row %d: low %s above high %s", i+2, low, high)
		}
		ranges[row[0]] = span{low: low, high: high}
	}
	return ranges, nil
}

// readRows returns every row after the header, each with exactly fields columns.
func readRows(r io.Reader, fields int) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = fields
	cr.TrimLeadingSpace = true

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("missing header row")
		}
		return nil, err
	}
	return cr.ReadAll()
}

// Write encodes sounds in the format Read accepts.
func Write(sounds []*Sound, soundsCSV, rangesCSV io.Writer) error {
	sw := csv.NewWriter(soundsCSV)
	rw := csv.NewWriter(rangesCSV)
	if err := sw.Write(soundsHeader); err != nil {
		return err
	}
	if err := rw.Write(rangesHeader); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(sounds))
	for i, s := range sounds {
		row := []string{strconv.Itoa(i), string(s.Section), string(s.Instrument), string(s.Articulation), s.ShortName}
		if err := sw.Write(row); err != nil {
			return err
		}
		if _, ok := seen[s.ShortName]; ok {
			continue
		}
		seen[s.ShortName] = struct{}{}
		if err := rw.Write([]string{s.ShortName, s.Low.String(), s.High.String()}); err != nil {
			return err
		}
	}

	sw.Flush()
	rw.Flush()
	if err := sw.Error(); err != nil {
		return err
	}
	return rw.Error()
}
