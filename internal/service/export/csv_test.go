package export_test

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mekedron/swiggy-audit/internal/domain"
	"github.com/mekedron/swiggy-audit/internal/service/export"
)

func TestMenuSheetColumns(t *testing.T) {
	final := 120.0
	group := "Size"
	name := "Large"
	priceAdd := 40000.0
	isDefault := true
	sheet := export.MenuSheet("Acme", []domain.FlatRow{
		{
			ResID:      "1234",
			Restaurant: "Test Diner",
			Subzone:    "Andheri East",
			Category:   "Mains",
			Name:       "Burger",
			BasePrice:  150,
			FinalPrice: &final,
			FlashSale:  true,
			InStock:    true,
		},
		{
			ResID:            "1234",
			Restaurant:       "Test Diner",
			Name:             "Pizza",
			BasePrice:        250,
			VariantGroup:     &group,
			VariantName:      &name,
			VariantPriceAdd:  &priceAdd,
			VariantIsDefault: &isDefault,
		},
	})

	if sheet.Name != "Acme_Menu" {
		t.Fatalf("expected sheet name Acme_Menu, got %q", sheet.Name)
	}
	if len(sheet.Header) != 16 || sheet.Header[0] != "res_id" || sheet.Header[15] != "variant_isDefault" {
		t.Fatalf("unexpected header: %v", sheet.Header)
	}
	if sheet.Header[8] != "flashSale" || sheet.Header[9] != "inStock" {
		t.Fatalf("unexpected flag columns: %v", sheet.Header)
	}
	if len(sheet.Rows) != 2 {
		t.Fatalf("expected two rows, got %d", len(sheet.Rows))
	}
	first := sheet.Rows[0]
	if first[6] != "150.00" || first[7] != "120.00" || first[8] != "true" {
		t.Fatalf("unexpected price cells: %v", first)
	}
	if first[11] != "" || first[14] != "" {
		t.Fatalf("expected empty variant cells for plain dish, got %v", first)
	}
	second := sheet.Rows[1]
	if second[7] != "" {
		t.Fatalf("expected empty final price cell, got %q", second[7])
	}
	if second[11] != "Size" || second[12] != "Large" || second[13] != "40000.00" || second[15] != "true" {
		t.Fatalf("unexpected variant cells: %v", second)
	}
	if second[14] != "" {
		t.Fatalf("expected empty cell for unknown variant stock, got %q", second[14])
	}
}

func TestOfferSheetDefaultsClientName(t *testing.T) {
	sheet := export.OfferSheet("  ", []domain.Offer{
		{ResID: "Test Diner", Restaurant: "Test Diner", Title: "50% OFF", Code: "HALF"},
	})
	if sheet.Name != "Client_Offers" {
		t.Fatalf("expected fallback client name, got %q", sheet.Name)
	}
	if len(sheet.Rows) != 1 || sheet.Rows[0][3] != "50% OFF" || sheet.Rows[0][4] != "HALF" {
		t.Fatalf("unexpected rows: %v", sheet.Rows)
	}
}

func TestEncodeCSVWritesBOMAndRecords(t *testing.T) {
	buf := &bytes.Buffer{}
	sheet := export.Sheet{
		Name:   "Acme_Offers",
		Header: []string{"title", "code"},
		Rows:   [][]string{{"50% OFF", "HALF"}, {"Combo, Deal", "COMBO"}},
	}
	if err := export.EncodeCSV(buf, sheet); err != nil {
		t.Fatalf("encode returned error: %v", err)
	}

	raw := buf.Bytes()
	if !bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatal("expected BOM prefix")
	}
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF})))
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header plus two rows, got %d", len(records))
	}
	if records[2][0] != "Combo, Deal" {
		t.Fatalf("expected comma-containing cell preserved, got %q", records[2][0])
	}
}

func TestWriteFiles(t *testing.T) {
	dir := t.TempDir()
	sheets := []export.Sheet{
		{Name: "Acme_Menu", Header: []string{"dish_name"}, Rows: [][]string{{"Burger"}}},
		{Name: "Acme_Offers", Header: []string{"title"}, Rows: [][]string{{"50% OFF"}}},
	}

	paths, err := export.WriteFiles(dir, "Test_Diner_2024-01-02_10-30-00", sheets)
	if err != nil {
		t.Fatalf("write files returned error: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected two files, got %d", len(paths))
	}
	want := filepath.Join(dir, "Test_Diner_2024-01-02_10-30-00_Acme_Menu.csv")
	if paths[0] != want {
		t.Fatalf("expected %q, got %q", want, paths[0])
	}
	raw, err := os.ReadFile(paths[0])
	if err != nil {
		t.Fatalf("read written file: %v", err)
	}
	if !strings.Contains(string(raw), "Burger") {
		t.Fatalf("expected row content in file, got %q", raw)
	}
}

func TestArchive(t *testing.T) {
	buf := &bytes.Buffer{}
	sheets := []export.Sheet{
		{Name: "Acme_Menu", Header: []string{"dish_name"}, Rows: [][]string{{"Burger"}}},
		{Name: "Acme_Offers", Header: []string{"title"}, Rows: [][]string{{"50% OFF"}}},
	}
	if err := export.Archive(buf, sheets); err != nil {
		t.Fatalf("archive returned error: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	if len(zr.File) != 2 {
		t.Fatalf("expected two entries, got %d", len(zr.File))
	}
	if zr.File[0].Name != "Acme_Menu.csv" || zr.File[1].Name != "Acme_Offers.csv" {
		t.Fatalf("unexpected entry names: %s, %s", zr.File[0].Name, zr.File[1].Name)
	}
}

func TestFilename(t *testing.T) {
	at := time.Date(2024, 1, 2, 10, 30, 0, 0, time.UTC)

	got := export.Filename([]string{"Test Diner", "Pizza Palace"}, at)
	if got != "Test_Diner_Pizza_Palace_2024-01-02_10-30-00" {
		t.Fatalf("unexpected filename: %q", got)
	}

	long := export.Filename([]string{strings.Repeat("A", 80)}, at)
	if !strings.HasPrefix(long, strings.Repeat("A", 50)+"_2024") {
		t.Fatalf("expected name part capped at 50, got %q", long)
	}

	empty := export.Filename(nil, at)
	if empty != "2024-01-02_10-30-00" {
		t.Fatalf("expected bare timestamp, got %q", empty)
	}
}

func TestRestaurantNames(t *testing.T) {
	rows := []domain.FlatRow{
		{Restaurant: "Test Diner"},
		{Restaurant: "Test Diner"},
		{Restaurant: " "},
		{Restaurant: "Pizza Palace"},
	}
	names := export.RestaurantNames(rows)
	if len(names) != 2 || names[0] != "Test Diner" || names[1] != "Pizza Palace" {
		t.Fatalf("unexpected names: %v", names)
	}
}
