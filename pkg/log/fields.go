package log

// Field is a single structured logging field.
type Field struct {
	Key   string
	Value interface{}
}

const (
	componentFieldKey = "component"
	errorFieldKey     = "error"
)

// Str builds a string field.
func Str(key, value string) Field { return Field{Key: key, Value: value} }

// Int builds an int field.
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Int64 builds an int64 field.
func Int64(key string, value int64) Field { return Field{Key: key, Value: value} }

// Uint64 builds a uint64 field.
func Uint64(key string, value uint64) Field { return Field{Key: key, Value: value} }

// Bool builds a bool field.
func Bool(key string, value bool) Field { return Field{Key: key, Value: value} }

// Any builds a field with an arbitrary value.
func Any(key string, value interface{}) Field { return Field{Key: key, Value: value} }

// Err builds the conventional error field.
func Err(err error) Field { return Field{Key: errorFieldKey, Value: err} }

// Component tags logs with a component name.
func Component(name string) Field { return Field{Key: componentFieldKey, Value: name} }
