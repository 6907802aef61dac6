package output

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"strconv"
)

// GameResult is one analyzed game's summary row.
type GameResult struct {
	White     string `json:"white"`
	Black     string `json:"black"`
	ECO       string `json:"eco,omitempty"`
	Opening   string `json:"opening,omitempty"`
	Moves     int    `json:"moves"`
	WhiteACPL int    `json:"white_acpl"`
	BlackACPL int    `json:"black_acpl"`
	Outcome   string `json:"result"`
	Link      string `json:"link,omitempty"`
}

// CSVWriter writes result rows to a CSV file, flushing after every row so a
// killed batch still leaves the completed games behind.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates the file, overwriting any previous run, and writes the
// header row.
func NewCSVWriter(path string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(f)
	header := []string{
		"white", "black", "eco", "opening", "moves",
		"white_acpl", "black_acpl", "result", "link",
	}
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, err
	}
	w.Flush()
	return &CSVWriter{file: f, writer: w}, nil
}

// Write appends one result row.
func (cw *CSVWriter) Write(r GameResult) error {
	record := []string{
		r.White,
		r.Black,
		r.ECO,
		r.Opening,
		strconv.Itoa(r.Moves),
		strconv.Itoa(r.WhiteACPL),
		strconv.Itoa(r.BlackACPL),
		r.Outcome,
		r.Link,
	}
	if err := cw.writer.Write(record); err != nil {
		return err
	}
	cw.writer.Flush()
	return cw.writer.Error()
}

// Close flushes and closes the file.
func (cw *CSVWriter) Close() error {
	cw.writer.Flush()
	return cw.file.Close()
}

// JSONWriter writes result rows as JSON lines.
type JSONWriter struct {
	file    *os.File
	encoder *json.Encoder
}

// NewJSONWriter creates the file, overwriting any previous run.
func NewJSONWriter(path string) (*JSONWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &JSONWriter{file: f, encoder: json.NewEncoder(f)}, nil
}

// Write appends one result as a JSON line.
func (jw *JSONWriter) Write(r GameResult) error {
	return jw.encoder.Encode(r)
}

// Close closes the file.
func (jw *JSONWriter) Close() error {
	return jw.file.Close()
}
