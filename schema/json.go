package schema

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// JSON schema description, the host-supplied declarative format:
//
//	{
//	  "tables": [
//	    {
//	      "name": "students",
//	      "columns": [
//	        {"name": "id", "type": "INTEGER", "size": 4},
//	        {"name": "name", "type": "TEXT", "size": 120}
//	      ]
//	    }
//	  ]
//	}
//
// Tables and columns are arrays so declaration order survives the
// round trip; column order is part of the catalog contract.
type jsonSchema struct {
	Tables []jsonTable `json:"tables"`
}

type jsonTable struct {
	Name    string       `json:"name"`
	Columns []jsonColumn `json:"columns"`
}

type jsonColumn struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int    `json:"size"`
}

// ParseJSON reads a registry from a JSON schema description.
func ParseJSON(r io.Reader) (*Registry, error) {
	var doc jsonSchema
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid schema document: %w", err)
	}
	if len(doc.Tables) == 0 {
		return nil, fmt.Errorf("schema document declares no tables")
	}

	reg := NewRegistry()
	for _, jt := range doc.Tables {
		columns := make([]Column, 0, len(jt.Columns))
		for _, jc := range jt.Columns {
			typ, err := ParseType(jc.Type)
			if err != nil {
				return nil, fmt.Errorf("table %s, column %s: %w", jt.Name, jc.Name, err)
			}
			columns = append(columns, Column{Name: jc.Name, Type: typ, Size: jc.Size})
		}
		table, err := NewTable(jt.Name, columns)
		if err != nil {
			return nil, err
		}
		if err := reg.Add(table); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// LoadJSON reads a registry from a JSON schema file.
func LoadJSON(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open schema file: %w", err)
	}
	defer func() { _ = f.Close() }()
	reg, err := ParseJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return reg, nil
}
