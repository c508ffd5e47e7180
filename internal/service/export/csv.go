// Package export renders flattened menu and offer rows as CSV sheets, either
// as standalone files or bundled into one zip workbook for download.
package export

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mekedron/swiggy-audit/internal/domain"
)

const maxFilenameNamePart = 50

// utf8BOM makes spreadsheet tools detect the encoding on open.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Sheet is one named tabular file inside a workbook.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]string
}

var menuHeader = []string{
	"res_id",
	"restaurant",
	"subzone",
	"category",
	"dish_name",
	"description",
	"base_price",
	"final_price",
	"flashSale",
	"inStock",
	"image",
	"variant_group",
	"variant_name",
	"variant_price_add",
	"variant_inStock",
	"variant_isDefault",
}

var offerHeader = []string{
	"res_id",
	"restaurant",
	"subzone",
	"title",
	"code",
	"description",
	"discount",
	"image",
}

// MenuSheet builds the per-client menu sheet from flattened rows.
func MenuSheet(client string, rows []domain.FlatRow) Sheet {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{
			row.ResID,
			row.Restaurant,
			row.Subzone,
			row.Category,
			row.Name,
			row.Description,
			domain.FormatPrice(row.BasePrice),
			optionalPrice(row.FinalPrice),
			strconv.FormatBool(row.FlashSale),
			strconv.FormatBool(row.InStock),
			row.Image,
			optionalString(row.VariantGroup),
			optionalString(row.VariantName),
			optionalPrice(row.VariantPriceAdd),
			optionalBool(row.VariantInStock),
			optionalBool(row.VariantIsDefault),
		})
	}
	return Sheet{Name: sheetName(client, "Menu"), Header: menuHeader, Rows: records}
}

// OfferSheet builds the per-client offer sheet.
func OfferSheet(client string, offers []domain.Offer) Sheet {
	records := make([][]string, 0, len(offers))
	for _, offer := range offers {
		records = append(records, []string{
			offer.ResID,
			offer.Restaurant,
			offer.Subzone,
			offer.Title,
			offer.Code,
			offer.Description,
			offer.Discount,
			offer.Image,
		})
	}
	return Sheet{Name: sheetName(client, "Offers"), Header: offerHeader, Rows: records}
}

func sheetName(client, kind string) string {
	client = strings.TrimSpace(client)
	if client == "" {
		client = "Client"
	}
	return client + "_" + kind
}

func optionalString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func optionalPrice(v *float64) string {
	if v == nil {
		return ""
	}
	return domain.FormatPrice(*v)
}

func optionalBool(v *bool) string {
	if v == nil {
		return ""
	}
	return strconv.FormatBool(*v)
}

// EncodeCSV writes one sheet as BOM-prefixed CSV.
func EncodeCSV(w io.Writer, sheet Sheet) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(sheet.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range sheet.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFiles stores each sheet as <dir>/<base>_<sheet>.csv and returns the
// written paths in sheet order.
func WriteFiles(dir, base string, sheets []Sheet) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	paths := make([]string, 0, len(sheets))
	for _, sheet := range sheets {
		path := filepath.Join(dir, base+"_"+sheet.Name+".csv")
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", path, err)
		}
		if err := EncodeCSV(f, sheet); err != nil {
			_ = f.Close()
			return nil, err
		}
		if err := f.Close(); err != nil {
			return nil, fmt.Errorf("close %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// Archive bundles sheets into one zip workbook with <sheet>.csv entries.
func Archive(w io.Writer, sheets []Sheet) error {
	zw := zip.NewWriter(w)
	for _, sheet := range sheets {
		entry, err := zw.Create(sheet.Name + ".csv")
		if err != nil {
			return fmt.Errorf("create zip entry: %w", err)
		}
		if err := EncodeCSV(entry, sheet); err != nil {
			return err
		}
	}
	return zw.Close()
}

// Filename derives the workbook base name from scraped restaurant names plus
// a sortable timestamp. The name part is capped at 50 characters.
func Filename(restaurants []string, at time.Time) string {
	parts := make([]string, 0, len(restaurants))
	for _, name := range restaurants {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		parts = append(parts, strings.ReplaceAll(name, " ", "_"))
	}
	namePart := strings.Join(parts, "_")
	if len(namePart) > maxFilenameNamePart {
		namePart = namePart[:maxFilenameNamePart]
	}
	timestamp := at.Format("2006-01-02_15-04-05")
	if namePart == "" {
		return timestamp
	}
	return namePart + "_" + timestamp
}

// RestaurantNames collects distinct restaurant names from flattened rows in
// first-seen order.
func RestaurantNames(rows []domain.FlatRow) []string {
	names := make([]string, 0)
	seen := map[string]struct{}{}
	for _, row := range rows {
		name := strings.TrimSpace(row.Restaurant)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}
