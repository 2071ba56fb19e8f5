package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rogerio-castellano/stocksync/internal/inventory"
	"github.com/rogerio-castellano/stocksync/internal/models"
)

// csvRow holds one data row of an import, unparsed.
type csvRow struct {
	Name      string
	SKU       string
	Stock     string
	Threshold string
}

var requiredColumns = []string{"name", "sku", "stock", "minstockthreshold"}

// parseCSV reads a header row with the required columns, in any order and
// case, followed by data rows.
func parseCSV(src io.Reader) ([]csvRow, error) {
	cr := csv.NewReader(src)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, errors.New("invalid CSV header")
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("CSV header is missing column %q", name)
		}
	}

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("CSV read error: %w", err)
	}
	rows := make([]csvRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, csvRow{
			Name:      rec[col["name"]],
			SKU:       rec[col["sku"]],
			Stock:     rec[col["stock"]],
			Threshold: rec[col["minstockthreshold"]],
		})
	}
	return rows, nil
}

func rowError(rowNum int, err error) FieldValidationError {
	var field string
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		field = verr.Field
	}
	return FieldValidationError{Field: field, Description: fmt.Sprintf("row %d: %v", rowNum, err)}
}

// importer applies CSV rows for one tenant. Rows are matched to stored
// products by SKU.
type importer struct {
	tenant string
	update bool
	bySKU  map[string]string
}

// apply stores one row and reports whether it landed. An update whose alert
// failed still counts as applied and returns the alert error.
func (im *importer) apply(r *http.Request, rec csvRow) (bool, error) {
	sku := strings.TrimSpace(rec.SKU)
	id, exists := im.bySKU[sku]
	if exists && sku != "" {
		if !im.update {
			return false, models.NewValidationError("sku", fmt.Sprintf("product with SKU '%s' already exists", sku))
		}
		name := rec.Name
		res, err := stockService.UpdateProduct(r.Context(), im.tenant, id, inventory.ProductPatch{
			Name:              &name,
			Stock:             rec.Stock,
			MinStockThreshold: rec.Threshold,
		})
		return res.Product.ID != "", err
	}

	id, err := ledger.Create(r.Context(), im.tenant, inventory.ProductInput{
		Name:              rec.Name,
		SKU:               sku,
		Stock:             rec.Stock,
		MinStockThreshold: rec.Threshold,
	})
	if err != nil {
		return false, err
	}
	im.bySKU[sku] = id
	return true, nil
}

// ImportProductsHandler godoc
// @Summary Import products via CSV
// @Description Columns: name, sku, stock, minStockThreshold. Rows are matched to existing products by SKU.
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "CSV file"
// @Param mode query string false "Import mode (skip|update)"
// @Success 200 {object} ImportProductsResult
// @Failure 400 {string} string "Invalid file"
// @Failure 500 {string} string "Internal error"
// @Router /products/import [post]
func ImportProductsHandler(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	records, err := parseCSV(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tenant := tenantOf(r)
	existing, err := ledger.List(r.Context(), tenant)
	if err != nil {
		writeError(w, err, "could not fetch products")
		return
	}
	im := &importer{
		tenant: tenant,
		update: strings.EqualFold(r.URL.Query().Get("mode"), "update"),
		bySKU:  make(map[string]string, len(existing)),
	}
	for _, p := range existing {
		im.bySKU[p.SKU] = p.ID
	}

	result := ImportProductsResult{Errors: []FieldValidationError{}}
	for i, rec := range records {
		applied, err := im.apply(r, rec)
		if applied {
			result.ImportedProductsCount++
		}
		if err != nil {
			result.Errors = append(result.Errors, rowError(i+2, err)) // header is row 1
		}
	}
	respond(w, http.StatusOK, result)
}
