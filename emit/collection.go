package emit

import (
	"bytes"
	"fmt"
	"strings"
)

// CollectionType selects the shape of an exported collection.
type CollectionType string

const (
	CollectionMap            CollectionType = "map"
	CollectionObject         CollectionType = "object"
	CollectionReadonlyMap    CollectionType = "readonly_map"
	CollectionReadonlyObject CollectionType = "readonly_object"
)

// Entry is one key of a collection with its value expression.
type Entry struct {
	Key   string
	Value string
}

// Module describes a generated file exporting one collection.
type Module struct {
	// Header is written at the top of the file, followed by a blank line.
	Header string

	ExportedName string
	Collection   CollectionType

	// ValueType is the TypeScript type of the values (default: "unknown").
	ValueType string

	Entries []Entry
}

// Module renders m as the source of a TypeScript module.
func (e *Emitter) Module(m *Module) ([]byte, error) {
	if !IsBindingName(m.ExportedName) {
		return nil, fmt.Errorf("exported name %q is not a valid identifier", m.ExportedName)
	}
	valueType := m.ValueType
	if valueType == "" {
		valueType = "unknown"
	}
	indent := e.Indent
	if indent == "" {
		indent = "\t"
	}

	var buf bytes.Buffer
	if h := strings.TrimRight(m.Header, "\n"); h != "" {
		buf.WriteString(h)
		buf.WriteString("\n\n")
	}

	fmt.Fprintf(&buf, "export const %s: ", m.ExportedName)
	switch m.Collection {
	case CollectionObject, CollectionReadonlyObject:
		if m.Collection == CollectionReadonlyObject {
			fmt.Fprintf(&buf, "{readonly [k: string]: %s}", valueType)
		} else {
			fmt.Fprintf(&buf, "{[k: string]: %s}", valueType)
		}
		buf.WriteString(" = {")
		for _, entry := range m.Entries {
			fmt.Fprintf(&buf, "\n%s%s: %s,", indent, quote(entry.Key), entry.Value)
		}
		if len(m.Entries) > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString("};\n")

	case CollectionMap, CollectionReadonlyMap:
		if m.Collection == CollectionReadonlyMap {
			fmt.Fprintf(&buf, "ReadonlyMap<string, %s>", valueType)
		} else {
			fmt.Fprintf(&buf, "Map<string, %s>", valueType)
		}
		buf.WriteString(" = new Map([")
		for _, entry := range m.Entries {
			fmt.Fprintf(&buf, "\n%s[%s, %s],", indent, quote(entry.Key), entry.Value)
		}
		if len(m.Entries) > 0 {
			buf.WriteByte('\n')
		}
		fmt.Fprintf(&buf, "] as [string, %s][]);\n", valueType)

	default:
		return nil, fmt.Errorf("unknown collection type %q", m.Collection)
	}
	return buf.Bytes(), nil
}
