package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chainsync/chainsync-lite/internal/application/ledger"
	"github.com/chainsync/chainsync-lite/internal/domain"
	"github.com/chainsync/chainsync-lite/internal/domain/repository"
)

// csvHeader cabecera canónica del export; el import acepta la misma con
// mayúsculas/minúsculas indistintas.
var csvHeader = []string{"Item Name", "Quantity", "Category", "Location"}

// ExportCSV serializa el inventario completo del dueño a CSV.
func (uc *ReportUseCase) ExportCSV(ctx context.Context, ownerID string) ([]byte, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	items, err := uc.items.ListByOwner(ctx, ownerID, repository.ItemFilter{})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("escribiendo cabecera csv: %w", err)
	}
	for _, it := range items {
		row := []string{it.Name, strconv.FormatInt(it.Quantity, 10), it.Category, it.Location}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("escribiendo fila csv: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("serializando csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseCSV lee un CSV de import y lo convierte en filas para BulkImport.
// Filas con nombre vacío o cantidad inválida se devuelven como omitidas,
// no abortan el import completo.
func ParseCSV(r io.Reader) (rows []ledger.ImportRow, skipped int, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // filas cortas completan con defaults
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, 0, fmt.Errorf("%w: csv vacío", domain.ErrInvalidInput)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if len(header) == 0 || !strings.EqualFold(strings.TrimSpace(header[0]), csvHeader[0]) {
		return nil, 0, fmt.Errorf("%w: cabecera csv inesperada", domain.ErrInvalidInput)
	}

	for {
		record, rerr := cr.Read()
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return nil, 0, fmt.Errorf("%w: %v", domain.ErrInvalidInput, rerr)
		}

		get := func(i int) string {
			if i < len(record) {
				return strings.TrimSpace(record[i])
			}
			return ""
		}
		name := get(0)
		qty, qerr := strconv.ParseInt(get(1), 10, 64)
		if name == "" || qerr != nil || qty < 1 {
			skipped++
			continue
		}
		rows = append(rows, ledger.ImportRow{
			Name:     name,
			Quantity: qty,
			Category: get(2),
			Location: get(3),
		})
	}
	if len(rows) == 0 {
		return nil, skipped, fmt.Errorf("%w: csv sin filas válidas", domain.ErrInvalidInput)
	}
	return rows, skipped, nil
}
