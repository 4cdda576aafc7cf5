package config

// Section returns the nested mapping under key, or nil when key is absent or
// not a mapping.
func (d Document) Section(key string) Document {
	switch v := d[key].(type) {
	case map[string]any:
		return Document(v)
	case Document:
		return v
	default:
		return nil
	}
}

// Str returns the value under key when it is a string.
func (d Document) Str(key string) (string, bool) {
	s, ok := d[key].(string)
	return s, ok
}
