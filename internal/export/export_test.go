package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"go-pos-client/internal/models"
)

func sampleCustomers() []models.Customer {
	return []models.Customer{
		{ClientID: 1, ClientFirstName: "Jane", ClientLastName: "Doe", Address: "Colombo", ContactNumber: "0711111111", Email: "jane@example.com"},
		{ClientID: 2, ClientFirstName: "John", ClientLastName: "Smith", Address: "Kandy", ContactNumber: "0722222222", Email: "john@example.com"},
	}
}

func TestCSVHasHeaderAndRows(t *testing.T) {
	data, err := CSV(CustomerRows(sampleCustomers()))
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want header plus 2 rows", len(lines))
	}
	if lines[0] != "First Name,Last Name,Address,Contact Number,Email" {
		t.Fatalf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "Jane") || !strings.Contains(lines[2], "Smith") {
		t.Fatalf("rows = %v", lines[1:])
	}
}

func TestXLSXRoundTrip(t *testing.T) {
	data, err := XLSX("Customers", CustomerRows(sampleCustomers()))
	if err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows("Customers")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("sheet rows = %d, want 3", len(rows))
	}
	if rows[0][0] != "First Name" || rows[0][4] != "Email" {
		t.Fatalf("header row = %v", rows[0])
	}
	if rows[1][0] != "Jane" || rows[2][1] != "Smith" {
		t.Fatalf("data rows = %v", rows[1:])
	}
}

func TestEmptyExportRejected(t *testing.T) {
	if _, err := CSV([]CustomerRow{}); !errors.Is(err, ErrNoData) {
		t.Fatalf("CSV err = %v, want ErrNoData", err)
	}
	if _, err := XLSX("Sheet1", []CustomerRow{}); !errors.Is(err, ErrNoData) {
		t.Fatalf("XLSX err = %v, want ErrNoData", err)
	}
}

func TestProductRowDefaults(t *testing.T) {
	qty := 3
	rows := ProductRows([]models.Product{{
		ProductID:   1,
		ProductName: "Widget",
		ProductQty:  &qty,
	}})
	if len(rows) != 1 {
		t.Fatalf("rows = %d", len(rows))
	}
	row := rows[0]
	if row.Brand != "Not specified" || row.Category != "Not specified" {
		t.Fatalf("defaults = %q / %q", row.Brand, row.Category)
	}
	if row.Type != "unit" {
		t.Fatalf("type = %q, want unit", row.Type)
	}
	if row.Quantity != 3 {
		t.Fatalf("quantity = %d", row.Quantity)
	}
}

func TestFilename(t *testing.T) {
	name := Filename("customers", FormatXLSX)
	if !strings.HasPrefix(name, "customers_") || !strings.HasSuffix(name, ".xlsx") {
		t.Fatalf("filename = %q", name)
	}
}
