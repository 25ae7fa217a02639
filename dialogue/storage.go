package dialogue

import (
	"sort"
	"strings"
)

// VariableStorage stores dialogue variables. Numbers are float64, as in the
// dialogue language.
type VariableStorage interface {
	Clear()
	GetValue(name string) (value any, ok bool)
	SetValue(name string, value any)
}

// MemoryVariableStorage implements VariableStorage in memory.
type MemoryVariableStorage struct {
	values map[string]any
}

func NewMemoryVariableStorage() *MemoryVariableStorage {
	return &MemoryVariableStorage{values: make(map[string]any)}
}

func (m *MemoryVariableStorage) Clear() {
	clear(m.values)
}

func (m *MemoryVariableStorage) GetValue(name string) (any, bool) {
	v, ok := m.values[VariableName(name)]
	return v, ok
}

func (m *MemoryVariableStorage) SetValue(name string, value any) {
	if m.values == nil {
		m.values = make(map[string]any)
	}
	m.values[VariableName(name)] = normalizeValue(value)
}

// TryGetNumber returns the variable as a number, or 0 when it is unset or not
// numeric.
func (m *MemoryVariableStorage) TryGetNumber(name string) (float64, bool) {
	v, ok := m.GetValue(name)
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}

// Names returns the stored variable names in sorted order.
func (m *MemoryVariableStorage) Names() []string {
	names := make([]string, 0, len(m.values))
	for name := range m.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// VariableName returns name with the "$" sigil the dialogue language uses.
func VariableName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || strings.HasPrefix(name, "$") {
		return name
	}
	return "$" + name
}

func normalizeValue(v any) any {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case float32:
		return float64(n)
	}
	return v
}
