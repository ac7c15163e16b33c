package secretsfile

// Document is the in-memory form of one secrets file: an ordered mapping of
// secret name to value. Values are plain YAML trees (string, int, float,
// bool, nil, map[string]interface{}, []interface{}).
type Document struct {
	names  []string
	values map[string]interface{}
}

// NewDocument creates an empty document
func NewDocument() *Document {
	return &Document{
		values: make(map[string]interface{}),
	}
}

// Set adds or replaces an entry. First insertion fixes the entry's position
// in iteration order.
func (d *Document) Set(name string, value interface{}) {
	if _, exists := d.values[name]; !exists {
		d.names = append(d.names, name)
	}
	d.values[name] = value
}

// Get returns the value for a name
func (d *Document) Get(name string) (interface{}, bool) {
	v, ok := d.values[name]
	return v, ok
}

// Names returns the entry names in insertion order
func (d *Document) Names() []string {
	names := make([]string, len(d.names))
	copy(names, d.names)
	return names
}

// Len returns the number of entries
func (d *Document) Len() int {
	return len(d.names)
}
