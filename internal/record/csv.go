package record

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/rotsim/internal/dynamo"
)

var csvHeader = []string{
	"tick", "time",
	"qw", "qx", "qy", "qz",
	"wx", "wy", "wz",
	"hx", "hy", "hz",
	"hix", "hiy", "hiz",
	"tx", "ty", "tz",
	"kinetic", "potential", "correction",
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func WriteCSV(w io.Writer, samples []dynamo.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	row := make([]string, 0, len(csvHeader))
	for _, s := range samples {
		row = row[:0]
		row = append(row, strconv.Itoa(s.Tick), formatFloat(s.Time))
		for _, v := range s.QuatWXYZ() {
			row = append(row, formatFloat(v))
		}
		for _, vec := range []mgl64.Vec3{s.Omega, s.H, s.HInertial, s.Torque} {
			for _, v := range vec {
				row = append(row, formatFloat(v))
			}
		}
		row = append(row, formatFloat(s.Kinetic), formatFloat(s.Potential), s.Correction)
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a trace written by WriteCSV.
func ReadCSV(r io.Reader) ([]dynamo.Sample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}
	for i, h := range csvHeader {
		if header[i] != h {
			return nil, fmt.Errorf("csv column %d is %q, want %q", i, header[i], h)
		}
	}

	var samples []dynamo.Sample
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			return samples, nil
		}
		if err != nil {
			return nil, err
		}
		s, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		samples = append(samples, s)
	}
}

func parseRow(rec []string) (dynamo.Sample, error) {
	var s dynamo.Sample
	tick, err := strconv.Atoi(rec[0])
	if err != nil {
		return s, err
	}
	s.Tick = tick

	vals := make([]float64, len(rec)-2)
	for i := 1; i < len(rec)-1; i++ {
		v, err := strconv.ParseFloat(rec[i], 64)
		if err != nil {
			return s, fmt.Errorf("column %s: %w", csvHeader[i], err)
		}
		vals[i-1] = v
	}

	s.Time = vals[0]
	s.Quat = mgl64.Quat{W: vals[1], V: mgl64.Vec3{vals[2], vals[3], vals[4]}}
	s.Omega = mgl64.Vec3{vals[5], vals[6], vals[7]}
	s.H = mgl64.Vec3{vals[8], vals[9], vals[10]}
	s.HInertial = mgl64.Vec3{vals[11], vals[12], vals[13]}
	s.Torque = mgl64.Vec3{vals[14], vals[15], vals[16]}
	s.Kinetic = vals[17]
	s.Potential = vals[18]
	s.Correction = rec[len(rec)-1]
	return s, nil
}
