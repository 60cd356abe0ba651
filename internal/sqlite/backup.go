package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/shipmgr/pkg/types"
)

// backupTables maps each table to its backup file and the columns carried in
// each record, in load order.
var backupTables = []struct {
	table   string
	columns []string
}{
	{types.UsersTable, []string{"id", "username", "password_hash", "role", "created_at"}},
	{types.FarmersTable, strings.Split(farmerColumns, ", ")},
	{types.ProductsTable, strings.Split(productColumns, ", ")},
	{types.ShipmentsTable, strings.Split(shipmentColumns, ", ")},
	{types.SalesTable, strings.Split(saleColumns, ", ")},
	{types.TransfersTable, strings.Split(transferColumns, ", ")},
	{types.ReturnsTable, strings.Split(returnColumns, ", ")},
}

// BackupFile returns the JSONL file name used for table.
func BackupFile(table string) string {
	return table + ".jsonl"
}

// Export writes every table to <dir>/<table>.jsonl, creating dir if needed.
// Each file is replaced atomically. Returns the number of records written per
// table.
func (b *Backend) Export(dir string) (map[string]int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating backup dir: %w", err)
	}
	counts := make(map[string]int, len(backupTables))
	err := b.read(func(db *sql.DB) error {
		for _, bt := range backupTables {
			records, err := dumpTable(db, bt.table, bt.columns)
			if err != nil {
				return err
			}
			if err := writeJSONL(filepath.Join(dir, BackupFile(bt.table)), records); err != nil {
				return fmt.Errorf("writing %s: %w", BackupFile(bt.table), err)
			}
			counts[bt.table] = len(records)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	b.logger.Debug("exported backup", "dir", dir)
	return counts, nil
}

// Import loads the backup files in dir in one transaction. Missing files are
// skipped, as are malformed lines and records that violate a constraint,
// such as an ID that already exists. Returns the number of records inserted
// per table.
func (b *Backend) Import(dir string) (map[string]int, error) {
	counts := make(map[string]int, len(backupTables))
	err := b.write(func(db *sql.DB) error {
		tx, err := db.Begin()
		if err != nil {
			return unavailable("beginning import transaction", err)
		}
		defer tx.Rollback()

		for _, bt := range backupTables {
			records, err := readJSONL(filepath.Join(dir, BackupFile(bt.table)))
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return err
			}
			n, err := insertRecords(tx, bt.table, bt.columns, records)
			if err != nil {
				return fmt.Errorf("loading %s: %w", BackupFile(bt.table), err)
			}
			counts[bt.table] = n
		}

		if err := tx.Commit(); err != nil {
			return unavailable("committing import transaction", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	b.logger.Debug("imported backup", "dir", dir)
	return counts, nil
}

// dumpTable reads every row of table as a JSON object keyed by column name.
func dumpTable(db *sql.DB, table string, columns []string) ([]json.RawMessage, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY created_at, id", strings.Join(columns, ", "), table)
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", table, err)
	}
	defer rows.Close()

	records := []json.RawMessage{}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", table, err)
		}
		obj := make(map[string]any, len(columns))
		for i, col := range columns {
			if v, ok := values[i].([]byte); ok {
				obj[col] = string(v)
				continue
			}
			obj[col] = values[i]
		}
		data, err := json.Marshal(obj)
		if err != nil {
			return nil, fmt.Errorf("marshaling %s record: %w", table, err)
		}
		records = append(records, data)
	}
	return records, rows.Err()
}

// insertRecords inserts parsed JSONL records into table and returns how many
// were inserted. Fields not listed in columns are ignored; absent fields are
// inserted as NULL. Records failing checkRecord or a table constraint are
// skipped.
func insertRecords(tx *sql.Tx, table string, columns []string, records []json.RawMessage) (int, error) {
	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	insertSQL := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)

	stmt, err := tx.Prepare(insertSQL)
	if err != nil {
		return 0, fmt.Errorf("preparing insert for %s: %w", table, err)
	}
	defer stmt.Close()

	inserted := 0
	for _, rec := range records {
		var obj map[string]any
		if err := json.Unmarshal(rec, &obj); err != nil {
			continue
		}
		if checkRecord(obj, columns) != nil {
			continue
		}
		args := make([]any, len(columns))
		for i, col := range columns {
			args[i] = obj[col]
		}
		if _, err := stmt.Exec(args...); err != nil {
			continue
		}
		inserted++
	}
	return inserted, nil
}

// numericColumns are the REAL columns across all tables.
var numericColumns = map[string]bool{
	"quantity":      true,
	"unit_price":    true,
	"total_paid":    true,
	"refund_amount": true,
}

// checkRecord verifies that a backup record reads back through the table
// scanners: timestamps and dates parse, numbers are JSON numbers and the
// remaining columns are strings. Absent fields are left to the schema.
func checkRecord(obj map[string]any, columns []string) error {
	for _, col := range columns {
		v, ok := obj[col]
		if !ok || v == nil {
			continue
		}
		if numericColumns[col] {
			if _, ok := v.(float64); !ok {
				return fmt.Errorf("%s: not a number", col)
			}
			continue
		}
		str, ok := v.(string)
		if !ok {
			return fmt.Errorf("%s: not a string", col)
		}
		switch col {
		case "created_at":
			if _, err := parseTime(str); err != nil {
				return err
			}
		case "date":
			if _, err := parseDate(str); err != nil {
				return err
			}
		}
	}
	return nil
}
