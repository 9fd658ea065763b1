package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// FromParquet infers a table schema from a real parquet file, so the
// simulated catalog can mirror actual data sets. The table is named
// after the file (base name without extension) unless tableName is
// non-empty.
//
// Parquet kinds map onto the three teaching types: integer kinds to
// INTEGER, floating kinds to FLOAT, byte arrays to STRING. Nested
// leaf fields become columns with dot-notation names (for example
// "address.street"). Kinds with no teaching equivalent (boolean,
// int96 timestamps) are an error rather than a silent guess.
func FromParquet(path, tableName string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pqFile, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	var columns []Column
	for _, field := range pqFile.Schema().Fields() {
		cols, err := fieldColumns(field, "")
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		columns = append(columns, cols...)
	}

	if tableName == "" {
		base := filepath.Base(path)
		tableName = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return NewTable(tableName, columns)
}

// fieldColumns flattens a parquet field into catalog columns,
// recursing into groups with dot-notation names.
func fieldColumns(field parquet.Field, prefix string) ([]Column, error) {
	name := field.Name()
	if prefix != "" {
		name = prefix + "." + name
	}

	if children := field.Fields(); len(children) > 0 {
		var out []Column
		for _, child := range children {
			cols, err := fieldColumns(child, name)
			if err != nil {
				return nil, err
			}
			out = append(out, cols...)
		}
		return out, nil
	}

	typ, size, err := fieldType(field)
	if err != nil {
		return nil, fmt.Errorf("column %s: %w", name, err)
	}
	return []Column{{Name: name, Type: typ, Size: size}}, nil
}

// fieldType maps a leaf parquet field onto a teaching type.
func fieldType(field parquet.Field) (Type, int, error) {
	if field.Type() == nil {
		return 0, 0, fmt.Errorf("field has no type")
	}

	if lt := field.Type().LogicalType(); lt != nil {
		switch lt.String() {
		case "STRING", "UTF8", "ENUM", "UUID", "JSON":
			return TypeString, 0, nil
		case "DECIMAL":
			return TypeFloat, 0, nil
		}
	}

	switch field.Type().Kind() {
	case parquet.Int32:
		return TypeInteger, 4, nil
	case parquet.Int64:
		return TypeInteger, 8, nil
	case parquet.Float:
		return TypeFloat, 4, nil
	case parquet.Double:
		return TypeFloat, 8, nil
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return TypeString, 0, nil
	}
	return 0, 0, fmt.Errorf("unsupported parquet kind %s", field.Type().Kind())
}
