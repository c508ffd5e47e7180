// Package reference loads offer tables supplied by clients for comparison
// against scraped data.
package reference

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/mekedron/swiggy-audit/internal/domain"
)

// ErrInvalidFormat reports a reference file that could not be decoded as a
// CSV or TSV offer table with title and code columns.
var ErrInvalidFormat = errors.New("invalid reference file format")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// LoadOffers decodes a reference-offer table. Comma and tab delimiters are
// tried in that order; the header row must name at least title and code,
// extra columns are ignored.
func LoadOffers(r io.Reader) ([]domain.Offer, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, ErrInvalidFormat
	}

	for _, delimiter := range []rune{',', '\t'} {
		offers, ok := decodeTable(raw, delimiter)
		if ok {
			return offers, nil
		}
	}
	return nil, ErrInvalidFormat
}

func decodeTable(raw []byte, delimiter rune) ([]domain.Offer, bool) {
	cr := csv.NewReader(bytes.NewReader(raw))
	cr.Comma = delimiter
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, false
	}
	columns := map[string]int{}
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	titleIdx, hasTitle := columns["title"]
	codeIdx, hasCode := columns["code"]
	if !hasTitle || !hasCode {
		return nil, false
	}

	offers := []domain.Offer{}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, false
		}
		offer := domain.Offer{
			Title: cell(record, titleIdx),
			Code:  cell(record, codeIdx),
		}
		if i, ok := columns["res_id"]; ok {
			offer.ResID = cell(record, i)
		}
		if i, ok := columns["restaurant"]; ok {
			offer.Restaurant = cell(record, i)
		}
		if i, ok := columns["subzone"]; ok {
			offer.Subzone = cell(record, i)
		}
		if i, ok := columns["description"]; ok {
			offer.Description = cell(record, i)
		}
		if i, ok := columns["discount"]; ok {
			offer.Discount = cell(record, i)
		}
		if i, ok := columns["image"]; ok {
			offer.Image = cell(record, i)
		}
		offers = append(offers, offer)
	}
	return offers, true
}

func cell(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}
