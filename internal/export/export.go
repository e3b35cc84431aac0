package export

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"
)

// Format selects the download encoding of a full-collection export.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ErrNoData is returned when an export is requested over an empty snapshot.
var ErrNoData = errors.New("no data to export")

// ContentType is the MIME type browsers expect for the given format.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Filename builds the conventional download name: <entity>_<yyyy-mm-dd>.<ext>.
func Filename(entity string, f Format) string {
	return fmt.Sprintf("%s_%s.%s", entity, time.Now().Format("2006-01-02"), f)
}

// CSV serializes the projection rows with their csv-tagged column names.
func CSV[T any](rows []T) ([]byte, error) {
	if len(rows) == 0 {
		return nil, ErrNoData
	}
	return gocsv.MarshalBytes(&rows)
}

// XLSX writes the projection rows to one worksheet, header row first.
// Column names come from the same csv tags the CSV path uses, so the two
// formats always agree on the column set.
func XLSX[T any](sheetName string, rows []T) ([]byte, error) {
	if len(rows) == 0 {
		return nil, ErrNoData
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if sheetName != "" {
		if err := f.SetSheetName(sheet, sheetName); err != nil {
			return nil, err
		}
		sheet = sheetName
	}

	headers := columnNames[T]()
	headerRow := make([]interface{}, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return nil, err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := rowValues(row)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, err
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode picks the serializer for the requested format.
func Encode[T any](f Format, sheetName string, rows []T) ([]byte, error) {
	if f == FormatXLSX {
		return XLSX(sheetName, rows)
	}
	return CSV(rows)
}

func columnNames[T any]() []string {
	var zero T
	t := reflect.TypeOf(zero)
	names := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name := field.Tag.Get("csv")
		if name == "" || name == "-" {
			name = field.Name
		}
		names = append(names, name)
	}
	return names
}

func rowValues[T any](row T) []interface{} {
	v := reflect.ValueOf(row)
	values := make([]interface{}, v.NumField())
	for i := 0; i < v.NumField(); i++ {
		values[i] = v.Field(i).Interface()
	}
	return values
}
